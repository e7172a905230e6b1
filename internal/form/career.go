package form

import (
	"strings"
	"unicode"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
)

// CareerSchema is the editable projection of a Career.
type CareerSchema struct {
	Name string `json:"name" validate:"required,min=2"`
}

// CareerDefaults computes the form defaults for a career, or the new-record
// defaults when nil.
func CareerDefaults(career *models.Career) CareerSchema {
	if career == nil {
		return CareerSchema{}
	}
	return CareerSchema{Name: career.Name}
}

// CareerPatch returns the changed fields of values relative to defaults.
func CareerPatch(values, defaults CareerSchema) map[string]interface{} {
	return diffFields(values.fields(), defaults.fields())
}

func (c CareerSchema) fields() map[string]interface{} {
	return map[string]interface{}{"name": c.Name}
}

// NormalizeCareerName applies the career name input rules: capitalize the
// first letter, collapse runs of inner whitespace, and trim once a leading
// space appears.
func NormalizeCareerName(raw string) string {
	runes := []rune(raw)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	collapsed := strings.Join(strings.Fields(string(runes)), " ")
	if strings.HasPrefix(string(runes), " ") {
		return collapsed
	}
	// strings.Fields drops trailing whitespace too; keep a single trailing
	// space so the user can keep typing multi-word names.
	if strings.HasSuffix(string(runes), " ") && collapsed != "" {
		return collapsed + " "
	}
	return collapsed
}
