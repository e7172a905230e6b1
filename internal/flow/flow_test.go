package flow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/dialog"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/form"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/nav"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/session"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/store"
)

var testWindow = form.NewDateWindow(time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC))

// fixture wires a fake school API behind real sessions and caches.
type fixture struct {
	router      *gin.Engine
	client      *api.Client
	sess        *session.Store
	students    *store.Cache[models.Student]
	careers     *store.Cache[models.Career]
	recorder    *nav.Recorder
	textDialog  *dialog.TextDialog
	errorDialog *dialog.ErrorDialog

	patchBodies  []map[string]interface{}
	postBodies   []map[string]interface{}
	deletedIDs   []string
	studentPhone string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fx := &fixture{router: gin.New(), studentPhone: "5512345678"}

	fx.router.GET("/students", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": []gin.H{{
			"id":         "s1",
			"name":       "Ana",
			"secondName": "García",
			"status":     "inscrito",
			"career":     "c1",
			"birthDate":  "2000-04-09T00:00:00.000Z",
			"phone":      fx.studentPhone,
		}}})
	})
	fx.router.GET("/careers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": []gin.H{{
			"id":             "c1",
			"name":           "Medicina",
			"totalStudents":  10,
			"activeStudents": 7,
		}}})
	})
	fx.router.PATCH("/student", fx.capturePatch)
	fx.router.PATCH("/career", fx.capturePatch)
	fx.router.POST("/student", fx.capturePost("s9"))
	fx.router.POST("/career", fx.capturePost("c9"))
	fx.router.DELETE("/student/:id", fx.captureDelete)
	fx.router.DELETE("/career/:id", fx.captureDelete)

	server := httptest.NewServer(fx.router)
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, time.Second, nil)
	require.NoError(t, err)
	fx.client = client

	fx.recorder = nav.NewRecorder(nav.RouteHome)
	query := url.Values{"username": {"admin"}, "password": {"secret"}}
	fx.sess = session.New(client, fx.recorder, nil, query)

	fx.students = store.NewStudents(client, fx.sess, nil, nil)
	fx.careers = store.NewCareers(client, fx.sess, nil, nil)
	fx.students.Attach()
	fx.careers.Attach()

	fx.textDialog = dialog.NewText(dialog.TextOptions{})
	fx.errorDialog = dialog.NewError(dialog.NopClipboard{}, nil)
	return fx
}

func (fx *fixture) capturePatch(c *gin.Context) {
	var body map[string]interface{}
	_ = c.ShouldBindJSON(&body)
	fx.patchBodies = append(fx.patchBodies, body)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (fx *fixture) capturePost(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		_ = c.ShouldBindJSON(&body)
		fx.postBodies = append(fx.postBodies, body)
		c.JSON(http.StatusOK, gin.H{"message": id})
	}
}

func (fx *fixture) captureDelete(c *gin.Context) {
	fx.deletedIDs = append(fx.deletedIDs, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (fx *fixture) studentDeps() StudentFormDeps {
	return StudentFormDeps{
		Client:      fx.client,
		Session:     fx.sess,
		Students:    fx.students,
		Careers:     fx.careers,
		Navigator:   fx.recorder,
		Dialog:      fx.textDialog,
		ErrorDialog: fx.errorDialog,
		Window:      testWindow,
	}
}

func (fx *fixture) careerDeps() CareerFormDeps {
	return CareerFormDeps{
		Client:      fx.client,
		Session:     fx.sess,
		Careers:     fx.careers,
		Navigator:   fx.recorder,
		Dialog:      fx.textDialog,
		ErrorDialog: fx.errorDialog,
	}
}

func TestStudentSavePatchesOnlyChangedFields(t *testing.T) {
	fx := newFixture(t)
	f := NewStudentForm(fx.studentDeps(), "s1")

	require.False(t, f.Loading())
	values := f.Values()
	values.Phone = "5599999999"
	f.SetValues(values)
	require.True(t, f.CanSubmit())

	ok := f.Submit(context.Background())
	require.True(t, ok)

	require.Len(t, fx.patchBodies, 1)
	body := fx.patchBodies[0]
	assert.Equal(t, "s1", body["id"])
	assert.Equal(t, "5599999999", body["phone"])
	assert.Len(t, body, 2)

	assert.Equal(t, "Guardado exitosamente", fx.textDialog.State().Title)
	assert.True(t, fx.textDialog.State().Open)
	// Resync pulled the defaults back in; nothing left to save.
	assert.False(t, f.CanSubmit())
}

func TestStudentSaveGatedOnDiff(t *testing.T) {
	fx := newFixture(t)
	f := NewStudentForm(fx.studentDeps(), "s1")

	assert.False(t, f.CanSubmit())

	values := f.Values()
	values.Name = "  " + values.Name + " "
	f.SetValues(values)
	assert.False(t, f.CanSubmit())
}

func TestStudentRegisterNavigatesToNewRecord(t *testing.T) {
	fx := newFixture(t)
	f := NewStudentForm(fx.studentDeps(), "")

	f.SetValues(form.StudentSchema{
		Name:       "Luis",
		SecondName: "Pérez",
		Status:     models.StatusEnrolled,
		Career:     "c1",
		BirthDate:  time.Date(2001, time.January, 2, 0, 0, 0, 0, time.UTC),
	})
	require.True(t, f.CanSubmit())

	ok := f.Submit(context.Background())
	require.True(t, ok)

	require.Len(t, fx.postBodies, 1)
	assert.Equal(t, "Luis", fx.postBodies[0]["name"])
	assert.Equal(t, "Registrado exitosamente", fx.textDialog.State().Title)

	admin := fx.sess.Admin()
	assert.Equal(t, nav.WithAdminParams(nav.StudentRoute("s9"), admin), fx.recorder.Current())
}

func TestStudentRegisterRejectsInvalidSchema(t *testing.T) {
	fx := newFixture(t)
	f := NewStudentForm(fx.studentDeps(), "")

	assert.False(t, f.CanSubmit())
	assert.False(t, f.Submit(context.Background()))
	assert.Empty(t, fx.postBodies)

	// Submitting lifts the error-visibility gate for every field.
	msg, show := f.FieldError("name")
	assert.True(t, show)
	assert.NotEmpty(t, msg)
}

func TestStudentDeleteDefersReloadToDialogClose(t *testing.T) {
	fx := newFixture(t)
	f := NewStudentForm(fx.studentDeps(), "s1")

	ok := f.Delete(context.Background())
	require.True(t, ok)
	assert.Equal(t, []string{"s1"}, fx.deletedIDs)

	state := fx.textDialog.State()
	assert.True(t, state.Open)
	assert.Equal(t, "Eliminado exitosamente", state.Title)
	// Navigation waits for the admin to dismiss the confirmation.
	assert.Equal(t, nav.RouteHome, fx.recorder.Current())

	fx.textDialog.HandleClose()
	admin := fx.sess.Admin()
	assert.Equal(t, nav.WithAdminParams(nav.RouteHome, admin), fx.recorder.Current())
}

func TestStudentFormResyncsAfterExternalReload(t *testing.T) {
	fx := newFixture(t)
	f := NewStudentForm(fx.studentDeps(), "s1")
	require.Equal(t, "5512345678", f.Values().Phone)

	// The server record changes and someone else reloads the collection; the
	// form's live values follow the fresh defaults.
	fx.studentPhone = "5500000000"
	require.NoError(t, fx.students.Reload(context.Background()))

	assert.Equal(t, "5500000000", f.Values().Phone)
	assert.False(t, f.CanSubmit())
}

func TestCareerFormResyncsAfterCacheSet(t *testing.T) {
	fx := newFixture(t)
	f := NewCareerForm(fx.careerDeps(), "c1")
	require.Equal(t, "Medicina", f.Values().Name)

	fx.careers.Set([]models.Career{{ID: "c1", Name: "Enfermería"}})

	assert.Equal(t, "Enfermería", f.Values().Name)
	assert.False(t, f.CanSubmit())
}

func TestStudentNotFound(t *testing.T) {
	fx := newFixture(t)
	f := NewStudentForm(fx.studentDeps(), "missing")

	assert.True(t, f.NotFound())
	assert.False(t, NewStudentForm(fx.studentDeps(), "s1").NotFound())
}

func TestStudentFailureRoutesToSignInOn401(t *testing.T) {
	fx := newFixture(t)
	deps := fx.studentDeps()
	deps.Client = newFailingClient(t, http.StatusUnauthorized, gin.H{"message": nil, "error": "Unauthorized"})
	f := NewStudentForm(deps, "s1")

	values := f.Values()
	values.Phone = "5599999999"
	f.SetValues(values)

	assert.False(t, f.Submit(context.Background()))
	assert.Equal(t, nav.RouteSignIn, fx.recorder.Current())
	assert.False(t, fx.errorDialog.State().Open)
}

func newFailingClient(t *testing.T, status int, body gin.H) *api.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.NoRoute(func(c *gin.Context) { c.JSON(status, body) })
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	client, err := api.New(server.URL, time.Second, nil)
	require.NoError(t, err)
	return client
}

func TestStudentFailureSurfacesValidationInline(t *testing.T) {
	fx := newFixture(t)
	deps := fx.studentDeps()
	deps.Client = newFailingClient(t, http.StatusBadRequest, gin.H{
		"message": nil,
		"error":   gin.H{"description": "\"phone\" is not valid"},
	})
	f := NewStudentForm(deps, "s1")

	values := f.Values()
	values.Phone = "5599999999"
	f.SetValues(values)

	assert.False(t, f.Submit(context.Background()))
	assert.Equal(t, `"phone" is not valid`, f.FormError())
	assert.False(t, fx.errorDialog.State().Open)
	assert.Equal(t, nav.RouteHome, fx.recorder.Current())
}

func TestStudentFailureOpensErrorDialogOnUnknown(t *testing.T) {
	fx := newFixture(t)
	deps := fx.studentDeps()
	deps.Client = newFailingClient(t, http.StatusInternalServerError, gin.H{"oops": true})
	f := NewStudentForm(deps, "s1")

	values := f.Values()
	values.Phone = "5599999999"
	f.SetValues(values)

	assert.False(t, f.Submit(context.Background()))
	assert.True(t, fx.errorDialog.State().Open)
	assert.Empty(t, f.FormError())
}

func TestCareerSaveDiffGated(t *testing.T) {
	fx := newFixture(t)
	f := NewCareerForm(fx.careerDeps(), "c1")

	assert.False(t, f.CanSubmit())

	f.SetName("enfermería")
	assert.Equal(t, "Enfermería", f.Values().Name)
	require.True(t, f.CanSubmit())

	ok := f.Submit(context.Background())
	require.True(t, ok)

	require.Len(t, fx.patchBodies, 1)
	assert.Equal(t, "c1", fx.patchBodies[0]["id"])
	assert.Equal(t, "Enfermería", fx.patchBodies[0]["name"])
}

func TestCareerCreateNavigatesToNewRecord(t *testing.T) {
	fx := newFixture(t)
	f := NewCareerForm(fx.careerDeps(), "")

	f.SetName("ciencias de la salud")
	require.True(t, f.CanSubmit())
	require.True(t, f.Submit(context.Background()))

	require.Len(t, fx.postBodies, 1)
	assert.Equal(t, "Ciencias de la salud", fx.postBodies[0]["name"])

	admin := fx.sess.Admin()
	assert.Equal(t, nav.WithAdminParams(nav.CareerRoute("c9"), admin), fx.recorder.Current())
}

func TestCareerDeleteNavigatesOnDialogClose(t *testing.T) {
	fx := newFixture(t)
	f := NewCareerForm(fx.careerDeps(), "c1")

	require.True(t, f.Delete(context.Background()))
	assert.Equal(t, []string{"c1"}, fx.deletedIDs)
	assert.Equal(t, "Eliminada exitosamente", fx.textDialog.State().Title)
	assert.Equal(t, nav.RouteHome, fx.recorder.Current())

	fx.textDialog.HandleClose()
	admin := fx.sess.Admin()
	assert.Equal(t, nav.WithAdminParams(nav.RouteCareers, admin), fx.recorder.Current())
}

func TestSignInSuccessEstablishesSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var gotQuery url.Values
	router.GET("/", func(c *gin.Context) {
		gotQuery = c.Request.URL.Query()
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, time.Second, nil)
	require.NoError(t, err)
	recorder := nav.NewRecorder(nav.RouteSignIn)
	sess := session.New(client, recorder, nil, url.Values{})

	f := NewSignInForm(SignInFormDeps{
		Client:      client,
		Session:     sess,
		ErrorDialog: dialog.NewError(dialog.NopClipboard{}, nil),
	})
	f.SetValues(form.SignInSchema{Username: "admin", Password: "secret"})

	require.True(t, f.Submit(context.Background()))
	assert.Equal(t, "admin", gotQuery.Get("username"))
	assert.Equal(t, "secret", gotQuery.Get("password"))

	admin := sess.Admin()
	require.NotNil(t, admin)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, nav.WithAdminParams(nav.RouteHome, admin), recorder.Current())
}

func TestSignInWrongCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": nil, "error": "Unauthorized"})
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, time.Second, nil)
	require.NoError(t, err)
	recorder := nav.NewRecorder(nav.RouteSignIn)
	sess := session.New(client, recorder, nil, url.Values{})
	errDialog := dialog.NewError(dialog.NopClipboard{}, nil)

	f := NewSignInForm(SignInFormDeps{Client: client, Session: sess, ErrorDialog: errDialog})
	f.SetValues(form.SignInSchema{Username: "admin", Password: "wrong"})

	assert.False(t, f.Submit(context.Background()))
	assert.Equal(t, msgWrongCredentials, f.FormError())
	assert.Nil(t, sess.Admin())
	assert.False(t, errDialog.State().Open)
}

func TestSignInValidatesLocallyFirst(t *testing.T) {
	client, err := api.New("http://localhost", time.Second, nil)
	require.NoError(t, err)
	sess := session.New(client, nav.NewRecorder(nav.RouteSignIn), nil, url.Values{})

	f := NewSignInForm(SignInFormDeps{
		Client:      client,
		Session:     sess,
		ErrorDialog: dialog.NewError(dialog.NopClipboard{}, nil),
	})

	assert.False(t, f.Submit(context.Background()))

	msg, show := f.FieldError("username")
	assert.True(t, show)
	assert.Equal(t, "Requerido.", msg)
}
