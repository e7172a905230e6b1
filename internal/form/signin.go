package form

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
)

// SignInSchema is the credential form.
type SignInSchema struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignInDefaults prefills the form from the current session, so a signed-in
// admin revisiting the view sees their credentials.
func SignInDefaults(admin *models.Admin) SignInSchema {
	if admin == nil {
		return SignInSchema{}
	}
	return SignInSchema{Username: admin.Username, Password: admin.Password}
}

// SignInValidator evaluates the credential form rules.
type SignInValidator struct {
	validate *validator.Validate
}

// NewSignInValidator builds the sign-in validator.
func NewSignInValidator() *SignInValidator {
	return &SignInValidator{validate: newValidate()}
}

// Validate returns error messages keyed by field name.
func (v *SignInValidator) Validate(s SignInSchema) map[string]string {
	errs := map[string]string{}
	if err := v.validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs[fe.Field()] = msgRequired
			}
		}
	}
	return errs
}
