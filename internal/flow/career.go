package flow

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/dialog"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/form"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/nav"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/session"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/store"
)

// CareerFormDeps wires a career form to the shared services.
type CareerFormDeps struct {
	Client      *api.Client
	Session     *session.Store
	Careers     *store.Cache[models.Career]
	Navigator   nav.Navigator
	Dialog      *dialog.TextDialog
	ErrorDialog *dialog.ErrorDialog
	Logger      *zap.Logger
}

// CareerForm drives the create/edit career view. An empty careerID means the
// form creates a new career.
type CareerForm struct {
	deps      CareerFormDeps
	validator *form.CareerValidator
	tracker   *form.Tracker

	mu        sync.Mutex
	careerID  string
	values    form.CareerSchema
	defaults  form.CareerSchema
	busy      bool
	formError string
}

// NewCareerForm builds the form and synchronizes it with the cache. Any later
// change to the collection resynchronizes the form through the cache
// subscription.
func NewCareerForm(deps CareerFormDeps, careerID string) *CareerForm {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	f := &CareerForm{
		deps:      deps,
		validator: form.NewCareerValidator(),
		tracker:   form.NewTracker(),
		careerID:  careerID,
	}
	deps.Careers.Subscribe(f.Resync)
	f.Resync()
	return f
}

// Resync recomputes defaults from fresh cache state, discarding in-flight
// edits.
func (f *CareerForm) Resync() {
	f.mu.Lock()
	id := f.careerID
	f.mu.Unlock()

	var career *models.Career
	if id != "" {
		if c, ok := store.FindCareer(f.deps.Careers, id); ok {
			career = &c
		}
	}
	defaults := form.CareerDefaults(career)

	f.mu.Lock()
	f.defaults = defaults
	f.values = defaults
	f.mu.Unlock()
	f.tracker.Reset()
}

// Loading reports whether the careers collection is still null. Creation
// does not need it.
func (f *CareerForm) Loading() bool {
	return f.careerID != "" && !f.deps.Careers.Loaded()
}

// NotFound reports that the requested id does not resolve in the loaded
// cache.
func (f *CareerForm) NotFound() bool {
	if f.careerID == "" || !f.deps.Careers.Loaded() {
		return false
	}
	_, ok := store.FindCareer(f.deps.Careers, f.careerID)
	return !ok
}

// Values returns the live form values.
func (f *CareerForm) Values() form.CareerSchema {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// SetName updates the name through the input normalization rules.
func (f *CareerForm) SetName(raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Name = form.NormalizeCareerName(raw)
}

// Blur marks a field as touched for error visibility.
func (f *CareerForm) Blur(field string) { f.tracker.Blur(field) }

// FieldError returns the visible error for a field.
func (f *CareerForm) FieldError(field string) (string, bool) {
	return f.tracker.ShowError(field, f.validator.Validate(f.Values()))
}

// FormError returns the inline form-level error, if any.
func (f *CareerForm) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formError
}

// Busy reports an in-flight submission.
func (f *CareerForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// CanSubmit gates saving on a non-empty diff when editing and on validity
// when creating.
func (f *CareerForm) CanSubmit() bool {
	f.mu.Lock()
	busy, values, defaults, editing := f.busy, f.values, f.defaults, f.careerID != ""
	f.mu.Unlock()
	if busy {
		return false
	}
	if editing {
		return len(form.CareerPatch(values, defaults)) > 0
	}
	return len(f.validator.Validate(values)) == 0
}

// Submit creates or updates the career, refetches the collection and
// resynchronizes the form. Returns whether the mutation succeeded.
func (f *CareerForm) Submit(ctx context.Context) bool {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return false
	}
	f.busy = true
	f.formError = ""
	values, defaults, id := f.values, f.defaults, f.careerID
	f.mu.Unlock()
	defer f.setBusy(false)

	f.tracker.Submit()
	if errs := f.validator.Validate(values); len(errs) > 0 {
		return false
	}

	if id != "" {
		return f.save(ctx, values, defaults, id)
	}
	return f.create(ctx, values)
}

func (f *CareerForm) save(ctx context.Context, values, defaults form.CareerSchema, id string) bool {
	patch := form.CareerPatch(values, defaults)
	if len(patch) == 0 {
		return false
	}
	patch["id"] = id

	if _, err := f.deps.Client.Patch(ctx, "/career", patch); err != nil {
		f.fail(err)
		return false
	}
	_ = f.deps.Careers.Reload(ctx)
	f.deps.Dialog.Set(dialog.TextPatch{Title: strPtr(titleSaved)})
	f.Resync()
	return true
}

func (f *CareerForm) create(ctx context.Context, values form.CareerSchema) bool {
	resp, err := f.deps.Client.Post(ctx, "/career", values)
	if err != nil {
		f.fail(err)
		return false
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := resp.Decode(&payload); err != nil {
		f.fail(err)
		return false
	}

	_ = f.deps.Careers.Reload(ctx)
	f.deps.Dialog.Set(dialog.TextPatch{Title: strPtr(titleRegistered)})
	f.deps.Navigator.Navigate(nav.WithAdminParams(nav.CareerRoute(payload.Message), f.deps.Session.Admin()))

	f.mu.Lock()
	f.careerID = payload.Message
	f.mu.Unlock()
	f.Resync()
	return true
}

// Delete removes the career. The reload and the navigation back to the list
// happen in the success dialog's close callback, after the admin has seen the
// confirmation.
func (f *CareerForm) Delete(ctx context.Context) bool {
	f.mu.Lock()
	if f.busy || f.careerID == "" {
		f.mu.Unlock()
		return false
	}
	f.busy = true
	f.formError = ""
	id := f.careerID
	f.mu.Unlock()
	defer f.setBusy(false)

	if _, err := f.deps.Client.Delete(ctx, nav.CareerRoute(id)); err != nil {
		f.fail(err)
		return false
	}

	f.deps.Dialog.Set(dialog.TextPatch{
		Title: strPtr("Eliminada exitosamente"),
		OnClose: func() {
			_ = f.deps.Careers.Reload(context.Background())
			f.deps.Navigator.Navigate(nav.WithAdminParams(nav.RouteCareers, f.deps.Session.Admin()))
		},
	})
	return true
}

func (f *CareerForm) setBusy(busy bool) {
	f.mu.Lock()
	f.busy = busy
	f.mu.Unlock()
}

func (f *CareerForm) fail(err error) {
	f.deps.Logger.Warn("career_mutation_failed", zap.Error(err))
	routeFailure(err, f.deps.Navigator, f.setFormError, f.deps.ErrorDialog)
}

func (f *CareerForm) setFormError(message string) {
	f.mu.Lock()
	f.formError = message
	f.mu.Unlock()
}
