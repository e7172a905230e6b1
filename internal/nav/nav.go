// Package nav holds the client-side routing contract: route constants, the
// credential-carrying URL builder, and the page query-parameter codec.
package nav

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
)

const (
	RouteHome      = "/"
	RouteSignIn    = "/signin"
	RouteStudents  = "/student"
	RouteCareers   = "/careers"
	RouteCareerNew = "/career/new"
)

// StudentRoute returns the detail route for a student id.
func StudentRoute(id string) string { return fmt.Sprintf("/student/%s", id) }

// CareerRoute returns the detail route for a career id.
func CareerRoute(id string) string { return fmt.Sprintf("/career/%s", id) }

// WithAdminParams appends the session credentials as query parameters so a
// reload or deep link preserves authentication. With no admin it returns the
// empty string, matching the historical behavior of the URL builder.
func WithAdminParams(path string, admin *models.Admin) string {
	if admin == nil {
		return ""
	}
	q := url.Values{}
	q.Set("username", admin.Username)
	q.Set("password", admin.Password)
	return path + "/?" + q.Encode()
}

// PageFromQuery reads the 1-based "page" parameter and returns the 0-based
// internal page. Missing or malformed values mean the first page.
func PageFromQuery(query url.Values) int {
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		return 0
	}
	return page - 1
}

// SetPageParam writes the 0-based internal page as the 1-based "page"
// parameter, dropping it entirely for the first page.
func SetPageParam(query url.Values, page int) {
	if page <= 0 {
		query.Del("page")
		return
	}
	query.Set("page", strconv.Itoa(page+1))
}

// Navigator is the navigation surface the session store and flows drive.
// Implementations are expected to be cheap and non-blocking.
type Navigator interface {
	Navigate(path string)
	Current() string
}

// Recorder is a Navigator that remembers where it was sent. It backs the CLI
// (which only needs the latest location) and the tests.
type Recorder struct {
	current string
	History []string
}

// NewRecorder starts at the given location.
func NewRecorder(current string) *Recorder {
	return &Recorder{current: current}
}

func (r *Recorder) Navigate(path string) {
	r.current = path
	r.History = append(r.History, path)
}

func (r *Recorder) Current() string { return r.current }
