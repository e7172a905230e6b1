package form

import (
	"time"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
)

// Age window for student birth dates, fixed at schema construction.
const (
	minYears = 18
	maxYears = 35
)

// DateWindow bounds the accepted birth dates: between minYears and maxYears
// back from the reference date.
type DateWindow struct {
	Min time.Time
	Max time.Time
}

// NewDateWindow computes the window from the given reference date, usually
// time.Now() once at startup.
func NewDateWindow(now time.Time) DateWindow {
	return DateWindow{
		Min: now.AddDate(-maxYears, 0, 0),
		Max: now.AddDate(-minYears, 0, 0),
	}
}

// StudentSchema is the editable, form-bound projection of a Student. The
// birth date stays a real time value, bound to a date picker rather than a
// string field.
type StudentSchema struct {
	Name       string        `json:"name" validate:"required"`
	SecondName string        `json:"secondName" validate:"required"`
	Status     models.Status `json:"status" validate:"required"`
	Career     string        `json:"career" validate:"required"`
	BirthDate  time.Time     `json:"birthDate" validate:"required"`
	Email      string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string        `json:"phone,omitempty" validate:"omitempty,max=20"`
	Direction  string        `json:"direction,omitempty"`
}

// StudentDefaults computes the form's default values. With no student it
// returns the new-record defaults; with one, the student's fields coerced for
// form binding. The career reference only resolves once the careers
// collection has loaded; until then it stays a safe placeholder.
func StudentDefaults(student *models.Student, careers []models.Career, window DateWindow) StudentSchema {
	defaults := StudentSchema{BirthDate: window.Max}
	if student == nil {
		return defaults
	}
	defaults.Name = student.Name
	defaults.SecondName = student.SecondName
	defaults.Status = student.Status
	defaults.BirthDate = student.BirthDate
	defaults.Email = student.Email
	defaults.Phone = student.Phone
	defaults.Direction = student.Direction
	if careers != nil {
		defaults.Career = student.Career
	}
	return defaults
}

// StudentPatch returns the changed fields of values relative to defaults,
// keyed by wire name. An empty patch means the save affordance stays
// disabled and no request is sent.
func StudentPatch(values, defaults StudentSchema) map[string]interface{} {
	return diffFields(values.fields(), defaults.fields())
}

func (s StudentSchema) fields() map[string]interface{} {
	return map[string]interface{}{
		"name":       s.Name,
		"secondName": s.SecondName,
		"status":     s.Status,
		"career":     s.Career,
		"birthDate":  s.BirthDate,
		"email":      s.Email,
		"phone":      s.Phone,
		"direction":  s.Direction,
	}
}
