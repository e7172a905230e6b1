// Package form implements the editable projections of the domain entities:
// creation defaults, the trim-aware change diff that gates and shapes PATCH
// requests, and the declarative validation schemas.
package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
)

// diffFields returns only the keys whose current value differs from the
// default. Comparison is by stringified equality, except strings are trimmed
// on both sides first so whitespace-only edits never count as a change. The
// patch carries the raw current values.
func diffFields(current, defaults map[string]interface{}) map[string]interface{} {
	patch := map[string]interface{}{}
	for key, value := range current {
		if !sameField(value, defaults[key]) {
			patch[key] = value
		}
	}
	return patch
}

func sameField(a, b interface{}) bool {
	as, aIsString := a.(string)
	bs, bIsString := b.(string)
	if aIsString && bIsString {
		return strings.TrimSpace(as) == strings.TrimSpace(bs)
	}
	return stringifyField(a) == stringifyField(b)
}

func stringifyField(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case models.Status:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}
