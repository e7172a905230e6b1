// Package cli implements the escolar-admin command tree. Each command plays
// the role of one of the web client's views, driving the same session,
// caches, dialogs and form flows.
package cli

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/dialog"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/flow"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/form"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/nav"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/session"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/store"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/pkg/config"
)

// listPageSize matches the web client's grid page size.
const listPageSize = 9

// App holds the process-wide singletons: one transport, one session store and
// the two collection caches, created once and shared by every command.
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Client      *api.Client
	Navigator   *nav.Recorder
	Session     *session.Store
	Students    *store.Cache[models.Student]
	Careers     *store.Cache[models.Career]
	TextDialog  *dialog.TextDialog
	ErrorDialog *dialog.ErrorDialog
	Window      form.DateWindow
}

// NewApp wires the application. Credentials from config seed the initial
// session the same way the web client read them from the navigation query
// string.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	recorder := nav.NewRecorder(nav.RouteHome)

	initialQuery := url.Values{}
	if cfg.Auth.Username != "" && cfg.Auth.Password != "" {
		initialQuery.Set("username", cfg.Auth.Username)
		initialQuery.Set("password", cfg.Auth.Password)
	}

	sess := session.New(client, recorder, logger, initialQuery)

	errorDialog := dialog.NewError(dialog.NopClipboard{}, logger)
	onError := func(err error) { errorDialog.ShowError(err) }

	app := &App{
		Config:      cfg,
		Logger:      logger,
		Client:      client,
		Navigator:   recorder,
		Session:     sess,
		Students:    store.NewStudents(client, sess, onError, logger),
		Careers:     store.NewCareers(client, sess, onError, logger),
		TextDialog:  dialog.NewText(dialog.TextOptions{}),
		ErrorDialog: errorDialog,
		Window:      form.NewDateWindow(time.Now()),
	}
	app.Students.Attach()
	app.Careers.Attach()
	return app, nil
}

// StudentForm builds a student form bound to the shared services.
func (a *App) StudentForm(id string) *flow.StudentForm {
	return flow.NewStudentForm(flow.StudentFormDeps{
		Client:      a.Client,
		Session:     a.Session,
		Students:    a.Students,
		Careers:     a.Careers,
		Navigator:   a.Navigator,
		Dialog:      a.TextDialog,
		ErrorDialog: a.ErrorDialog,
		Window:      a.Window,
		Logger:      a.Logger,
	}, id)
}

// CareerForm builds a career form bound to the shared services.
func (a *App) CareerForm(id string) *flow.CareerForm {
	return flow.NewCareerForm(flow.CareerFormDeps{
		Client:      a.Client,
		Session:     a.Session,
		Careers:     a.Careers,
		Navigator:   a.Navigator,
		Dialog:      a.TextDialog,
		ErrorDialog: a.ErrorDialog,
		Logger:      a.Logger,
	}, id)
}

// reportOutcome prints whatever the flows left in the shared dialogs and
// closes them, firing any pending close callbacks (the career delete flow
// reloads and navigates from there).
func (a *App) reportOutcome(w io.Writer, formError string) {
	if formError != "" {
		fmt.Fprintf(w, "Error: %s\n", formError)
	}

	if state := a.TextDialog.State(); state.Open {
		fmt.Fprintln(w, state.Title)
		a.TextDialog.HandleClose()
	}

	if state := a.ErrorDialog.State(); state.Open {
		fmt.Fprintln(w, state.Title)
		fmt.Fprintln(w, a.ErrorDialog.ErrorString())
		a.ErrorDialog.HandleClose()
	}

	if a.Navigator.Current() == nav.RouteSignIn && a.Session.Admin() == nil {
		fmt.Fprintln(w, "Sesión expirada: vuelve a iniciar sesión.")
	}
}

// paginate slices items for a 0-based page of the fixed list size.
func paginate[E any](items []E, page int) []E {
	start := page * listPageSize
	if start >= len(items) {
		return nil
	}
	end := start + listPageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
