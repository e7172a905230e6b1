package flow

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/dialog"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/form"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/nav"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/session"
	apperrors "github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/pkg/errors"
)

const msgWrongCredentials = "Usuario o contraseña equivocada"

// SignInFormDeps wires the sign-in form to the shared services.
type SignInFormDeps struct {
	Client      *api.Client
	Session     *session.Store
	ErrorDialog *dialog.ErrorDialog
	Logger      *zap.Logger
}

// SignInForm drives the credential check against the root endpoint and, on
// success, establishes the session.
type SignInForm struct {
	deps      SignInFormDeps
	validator *form.SignInValidator
	tracker   *form.Tracker

	mu        sync.Mutex
	values    form.SignInSchema
	busy      bool
	formError string
}

// NewSignInForm builds the form, prefilled from the current session.
func NewSignInForm(deps SignInFormDeps) *SignInForm {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &SignInForm{
		deps:      deps,
		validator: form.NewSignInValidator(),
		tracker:   form.NewTracker(),
		values:    form.SignInDefaults(deps.Session.Admin()),
	}
}

// Values returns the live form values.
func (f *SignInForm) Values() form.SignInSchema {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// SetValues replaces the live form values.
func (f *SignInForm) SetValues(values form.SignInSchema) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
}

// Blur marks a field as touched for error visibility.
func (f *SignInForm) Blur(field string) { f.tracker.Blur(field) }

// FieldError returns the visible error for a field.
func (f *SignInForm) FieldError(field string) (string, bool) {
	return f.tracker.ShowError(field, f.validator.Validate(f.Values()))
}

// FormError returns the inline form-level error, if any.
func (f *SignInForm) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formError
}

// Busy reports an in-flight credential check.
func (f *SignInForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Submit checks the credentials against the root endpoint with explicit
// query parameters: the check happens before a session exists, so the
// decorator leaves it alone. A wrong pair surfaces inline; anything
// structurally unexpected goes to the error dialog.
func (f *SignInForm) Submit(ctx context.Context) bool {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return false
	}
	f.busy = true
	f.formError = ""
	values := f.values
	f.mu.Unlock()
	defer f.setBusy(false)

	f.tracker.Submit()
	if errs := f.validator.Validate(values); len(errs) > 0 {
		return false
	}

	params := url.Values{}
	params.Set("username", values.Username)
	params.Set("password", values.Password)

	if _, err := f.deps.Client.Get(ctx, nav.RouteHome, params); err != nil {
		classified := apperrors.Classify(err)
		switch classified.Kind {
		case apperrors.Unauthenticated:
			f.setFormError(msgWrongCredentials)
		case apperrors.ValidationRejected:
			f.setFormError(classified.Description)
		default:
			f.deps.ErrorDialog.ShowError(err)
		}
		return false
	}

	f.deps.Session.SignIn(models.Admin{Username: values.Username, Password: values.Password})
	return true
}

func (f *SignInForm) setBusy(busy bool) {
	f.mu.Lock()
	f.busy = busy
	f.mu.Unlock()
}

func (f *SignInForm) setFormError(message string) {
	f.mu.Lock()
	f.formError = message
	f.mu.Unlock()
}
