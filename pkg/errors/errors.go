package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
)

// Kind is the outcome of classifying a failed request. Every mutation site
// routes its failures through Classify so behavior stays identical across
// views.
type Kind string

const (
	// Unauthenticated short-circuits to a redirect to the sign-in view and
	// is never shown inline.
	Unauthenticated Kind = "UNAUTHENTICATED"
	// ValidationRejected surfaces the server's description as an inline
	// form-level error.
	ValidationRejected Kind = "VALIDATION_REJECTED"
	// Unknown routes to the generic error dialog and is logged, never
	// swallowed.
	Unknown Kind = "UNKNOWN"
)

// serverBody is the structured error envelope the API uses:
// { message: null, error: "Unauthorized" | { description, details } }.
type serverBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
}

// ValidationDetail is one entry of a structured validation error.
type ValidationDetail struct {
	Message string   `json:"message"`
	Path    []string `json:"path"`
	Type    string   `json:"type"`
}

type validationBody struct {
	Description string             `json:"description"`
	Details     []ValidationDetail `json:"details"`
}

// Classified is the normalized form of a caught failure.
type Classified struct {
	Kind        Kind
	Description string
	Details     []ValidationDetail
	Err         error
}

// Classify normalizes any caught failure into one of the three kinds.
func Classify(err error) Classified {
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) {
		return Classified{Kind: Unknown, Err: err}
	}

	if reqErr.Status == http.StatusUnauthorized {
		return Classified{Kind: Unauthenticated, Err: err}
	}

	var body serverBody
	if len(reqErr.Body) == 0 || json.Unmarshal(reqErr.Body, &body) != nil || len(body.Error) == 0 {
		return Classified{Kind: Unknown, Err: err}
	}

	var literal string
	if json.Unmarshal(body.Error, &literal) == nil {
		if literal == "Unauthorized" {
			return Classified{Kind: Unauthenticated, Err: err}
		}
		return Classified{Kind: Unknown, Err: err}
	}

	var validation validationBody
	if json.Unmarshal(body.Error, &validation) == nil && validation.Description != "" {
		return Classified{
			Kind:        ValidationRejected,
			Description: validation.Description,
			Details:     validation.Details,
			Err:         err,
		}
	}

	return Classified{Kind: Unknown, Err: err}
}
