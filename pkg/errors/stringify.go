package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
)

// Stringify renders a failure as stable, indented JSON for the generic error
// dialog. Map keys come out sorted, so the same failure always renders the
// same text and the copy affordance is deterministic.
func Stringify(err error) string {
	if err == nil {
		return "{}"
	}

	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		view := map[string]interface{}{}
		if reqErr.Status != 0 {
			view["status"] = reqErr.Status
		}
		if len(reqErr.Body) > 0 {
			var data interface{}
			if json.Unmarshal(reqErr.Body, &data) == nil {
				view["data"] = data
			} else {
				view["data"] = string(reqErr.Body)
			}
		}
		if reqErr.Err != nil {
			view["error"] = reqErr.Err.Error()
		}
		return marshal(view)
	}

	return marshal(map[string]interface{}{"error": err.Error()})
}

func marshal(view map[string]interface{}) string {
	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", view)
	}
	return string(out)
}
