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

// StudentFormDeps wires a student form to the shared services.
type StudentFormDeps struct {
	Client      *api.Client
	Session     *session.Store
	Students    *store.Cache[models.Student]
	Careers     *store.Cache[models.Career]
	Navigator   nav.Navigator
	Dialog      *dialog.TextDialog
	ErrorDialog *dialog.ErrorDialog
	Window      form.DateWindow
	Logger      *zap.Logger
}

// StudentForm drives the register/edit student view: it owns the live form
// values, the diff against server-known defaults, and the submit lifecycle.
// An empty studentID means the form registers a new student.
type StudentForm struct {
	deps      StudentFormDeps
	validator *form.StudentValidator
	tracker   *form.Tracker

	mu        sync.Mutex
	studentID string
	values    form.StudentSchema
	defaults  form.StudentSchema
	busy      bool
	formError string
}

// NewStudentForm builds the form and synchronizes it with the caches. Any
// later change to either collection resynchronizes the form through the cache
// subscriptions, not just the form's own mutations.
func NewStudentForm(deps StudentFormDeps, studentID string) *StudentForm {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	f := &StudentForm{
		deps:      deps,
		validator: form.NewStudentValidator(deps.Window),
		tracker:   form.NewTracker(),
		studentID: studentID,
	}
	deps.Students.Subscribe(f.Resync)
	deps.Careers.Subscribe(f.Resync)
	f.Resync()
	return f
}

// Resync recomputes the defaults from fresh cache state and resets the live
// values to them. In-flight edits are discarded: last write wins.
func (f *StudentForm) Resync() {
	f.mu.Lock()
	id := f.studentID
	f.mu.Unlock()

	var student *models.Student
	if id != "" {
		if s, ok := store.FindStudent(f.deps.Students, id); ok {
			student = &s
		}
	}
	defaults := form.StudentDefaults(student, f.deps.Careers.Items(), f.deps.Window)

	f.mu.Lock()
	f.defaults = defaults
	f.values = defaults
	f.mu.Unlock()
	f.tracker.Reset()
}

// Loading reports whether either backing collection is still null.
func (f *StudentForm) Loading() bool {
	return !f.deps.Students.Loaded() || !f.deps.Careers.Loaded()
}

// NotFound reports that the requested id does not resolve in the loaded
// cache.
func (f *StudentForm) NotFound() bool {
	if f.studentID == "" || !f.deps.Students.Loaded() {
		return false
	}
	_, ok := store.FindStudent(f.deps.Students, f.studentID)
	return !ok
}

// Values returns the live form values.
func (f *StudentForm) Values() form.StudentSchema {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// SetValues replaces the live form values.
func (f *StudentForm) SetValues(values form.StudentSchema) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
}

// Blur marks a field as touched for error visibility.
func (f *StudentForm) Blur(field string) { f.tracker.Blur(field) }

// FieldError returns the visible error for a field, honoring the
// touched-or-submitted gate.
func (f *StudentForm) FieldError(field string) (string, bool) {
	return f.tracker.ShowError(field, f.validator.Validate(f.Values()))
}

// FormError returns the inline form-level error, if any.
func (f *StudentForm) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formError
}

// Busy reports an in-flight submission.
func (f *StudentForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// CanSubmit implements the save gating: while editing, only a non-empty diff
// enables saving; while registering, the schema must validate. A busy form
// never submits.
func (f *StudentForm) CanSubmit() bool {
	f.mu.Lock()
	busy, values, defaults, editing := f.busy, f.values, f.defaults, f.studentID != ""
	f.mu.Unlock()
	if busy {
		return false
	}
	if editing {
		return len(form.StudentPatch(values, defaults)) > 0
	}
	return len(f.validator.Validate(values)) == 0
}

// Submit sends the mutation: PATCH with only the changed fields plus the id
// when editing, POST with the full schema when registering. After either, the
// collection is refetched wholesale and the form resynchronized. Returns
// whether the mutation succeeded; on failure the user's input stays put.
func (f *StudentForm) Submit(ctx context.Context) bool {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return false
	}
	f.busy = true
	f.formError = ""
	values, defaults, id := f.values, f.defaults, f.studentID
	f.mu.Unlock()
	defer f.setBusy(false)

	f.tracker.Submit()
	if errs := f.validator.Validate(values); len(errs) > 0 {
		return false
	}

	if id != "" {
		return f.save(ctx, values, defaults, id)
	}
	return f.register(ctx, values)
}

func (f *StudentForm) save(ctx context.Context, values, defaults form.StudentSchema, id string) bool {
	patch := form.StudentPatch(values, defaults)
	if len(patch) == 0 {
		return false
	}
	patch["id"] = id

	if _, err := f.deps.Client.Patch(ctx, "/student", patch); err != nil {
		f.fail(err)
		return false
	}
	_ = f.deps.Students.Reload(ctx)
	f.deps.Dialog.Set(dialog.TextPatch{Title: strPtr(titleSaved)})
	f.Resync()
	return true
}

func (f *StudentForm) register(ctx context.Context, values form.StudentSchema) bool {
	resp, err := f.deps.Client.Post(ctx, "/student", values)
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

	_ = f.deps.Students.Reload(ctx)
	f.deps.Dialog.Set(dialog.TextPatch{Title: strPtr(titleRegistered)})
	f.deps.Navigator.Navigate(nav.WithAdminParams(nav.StudentRoute(payload.Message), f.deps.Session.Admin()))

	f.mu.Lock()
	f.studentID = payload.Message
	f.mu.Unlock()
	f.Resync()
	return true
}

// Delete removes the student. The success dialog's close callback performs
// the reload and the navigation back home.
func (f *StudentForm) Delete(ctx context.Context) bool {
	f.mu.Lock()
	if f.busy || f.studentID == "" {
		f.mu.Unlock()
		return false
	}
	f.busy = true
	f.formError = ""
	id := f.studentID
	f.mu.Unlock()
	defer f.setBusy(false)

	if _, err := f.deps.Client.Delete(ctx, nav.StudentRoute(id)); err != nil {
		f.fail(err)
		return false
	}

	f.deps.Dialog.Set(dialog.TextPatch{
		Title: strPtr(titleDeleted),
		OnClose: func() {
			_ = f.deps.Students.Reload(context.Background())
			f.deps.Navigator.Navigate(nav.WithAdminParams(nav.RouteHome, f.deps.Session.Admin()))
		},
	})
	return true
}

func (f *StudentForm) setBusy(busy bool) {
	f.mu.Lock()
	f.busy = busy
	f.mu.Unlock()
}

func (f *StudentForm) fail(err error) {
	f.deps.Logger.Warn("student_mutation_failed", zap.Error(err))
	routeFailure(err, f.deps.Navigator, f.setFormError, f.deps.ErrorDialog)
}

func (f *StudentForm) setFormError(message string) {
	f.mu.Lock()
	f.formError = message
	f.mu.Unlock()
}
