// Package flow implements the submit behavior behind each view: busy-flag
// serialized submissions, diff-gated PATCH bodies, post-mutation reloads and
// uniform failure routing.
package flow

import (
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/dialog"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/nav"
	apperrors "github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/pkg/errors"
)

// Success dialog titles.
const (
	titleSaved      = "Guardado exitosamente"
	titleRegistered = "Registrado exitosamente"
	titleDeleted    = "Eliminado exitosamente"
)

func strPtr(s string) *string { return &s }

// routeFailure applies the single error-classification policy every mutation
// site shares: unauthenticated redirects to sign-in, structured validation
// errors surface inline, anything else goes to the generic error dialog.
func routeFailure(err error, navigator nav.Navigator, setFormError func(string), errorDialog *dialog.ErrorDialog) {
	classified := apperrors.Classify(err)
	switch classified.Kind {
	case apperrors.Unauthenticated:
		if navigator.Current() != nav.RouteSignIn {
			navigator.Navigate(nav.RouteSignIn)
		}
	case apperrors.ValidationRejected:
		setFormError(classified.Description)
	default:
		errorDialog.ShowError(err)
	}
}
