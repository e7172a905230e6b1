package form

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
)

// Field error messages, matching what the admin expects to read.
const (
	msgRequired       = "Requerido."
	msgInvalidEmail   = "Correo inválido."
	msgPhoneTooLong   = "Máximo 20 caracteres."
	msgNameTooShort   = "Al menos 2 caracteres."
	msgInvalidStatus  = "Estado inválido."
	msgDateOutOfRange = "Fecha fuera de rango."
)

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// StudentValidator evaluates the student schema rules. The date window and
// status set are fixed at construction.
type StudentValidator struct {
	validate *validator.Validate
	window   DateWindow
	statuses []models.Status
}

// NewStudentValidator builds the validator around the given date window.
func NewStudentValidator(window DateWindow) *StudentValidator {
	return &StudentValidator{
		validate: newValidate(),
		window:   window,
		statuses: models.Statuses(),
	}
}

// Validate returns error messages keyed by wire field name. An empty map
// means the schema is valid.
func (v *StudentValidator) Validate(s StudentSchema) map[string]string {
	errs := map[string]string{}

	if err := v.validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs[fe.Field()] = studentMessage(fe)
			}
		}
	}

	if s.Status != "" && !containsStatus(v.statuses, s.Status) {
		errs["status"] = msgInvalidStatus
	}

	if !s.BirthDate.IsZero() && (s.BirthDate.Before(v.window.Min) || s.BirthDate.After(v.window.Max)) {
		errs["birthDate"] = msgDateOutOfRange
	}

	return errs
}

func studentMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return msgInvalidEmail
	case "max":
		return msgPhoneTooLong
	default:
		return msgRequired
	}
}

func containsStatus(statuses []models.Status, status models.Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// CareerValidator evaluates the career schema rules.
type CareerValidator struct {
	validate *validator.Validate
}

// NewCareerValidator builds the career validator.
func NewCareerValidator() *CareerValidator {
	return &CareerValidator{validate: newValidate()}
}

// Validate returns error messages keyed by wire field name.
func (v *CareerValidator) Validate(c CareerSchema) map[string]string {
	errs := map[string]string{}

	if err := v.validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				switch fe.Tag() {
				case "min":
					errs[fe.Field()] = msgNameTooShort
				default:
					errs[fe.Field()] = msgRequired
				}
			}
		}
	}

	return errs
}

// Tracker gates error visibility: a field's error only shows once the field
// has been blurred or the form submitted at least once.
type Tracker struct {
	mu          sync.Mutex
	touched     map[string]bool
	submitCount int
}

// NewTracker starts with nothing touched and no submissions.
func NewTracker() *Tracker {
	return &Tracker{touched: map[string]bool{}}
}

// Blur marks a field as touched.
func (t *Tracker) Blur(field string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched[field] = true
}

// Submit records a submit attempt.
func (t *Tracker) Submit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.submitCount++
}

// SubmitCount returns the number of submit attempts since the last reset.
func (t *Tracker) SubmitCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitCount
}

// ShowError returns the field's message and whether it should be visible.
func (t *Tracker) ShowError(field string, errs map[string]string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if (t.touched[field] || t.submitCount >= 1) && errs[field] != "" {
		return errs[field], true
	}
	return "", false
}

// Reset clears touched state and the submit counter, for form
// resynchronization.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched = map[string]bool{}
	t.submitCount = 0
}
