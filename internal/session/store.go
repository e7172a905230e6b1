// Package session owns the admin identity: who is signed in, how outgoing
// requests get their credentials, and when the app is pushed back to the
// sign-in view.
package session

import (
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/nav"
)

// Listener is notified when the session's presence changes. It fires on the
// absent-to-present edge and on sign-out, never when the admin value is
// merely replaced.
type Listener func(present bool)

// Store is the process-wide admin session. It is created once per
// application instance and handed to consumers by reference.
type Store struct {
	mu        sync.Mutex
	admin     *models.Admin
	client    *api.Client
	navigator nav.Navigator
	logger    *zap.Logger
	listeners []Listener
}

// New builds the store from the initial navigation query string. The session
// starts populated only when both username and password keys are present.
func New(client *api.Client, navigator nav.Navigator, logger *zap.Logger, initialQuery url.Values) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{client: client, navigator: navigator, logger: logger}
	if initialQuery.Has("username") && initialQuery.Has("password") {
		s.admin = &models.Admin{
			Username: initialQuery.Get("username"),
			Password: initialQuery.Get("password"),
		}
	}
	s.apply()
	return s
}

// Admin returns the current session, or nil when signed out. Callers must
// treat the value as read-only.
func (s *Store) Admin() *models.Admin {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil {
		return nil
	}
	admin := *s.admin
	return &admin
}

// SignIn replaces the session wholesale and moves navigation to the
// authenticated landing route, carrying the credentials forward so a reload
// preserves authentication.
func (s *Store) SignIn(admin models.Admin) {
	s.mu.Lock()
	wasAbsent := s.admin == nil
	s.admin = &admin
	s.mu.Unlock()

	s.apply()
	s.navigator.Navigate(nav.WithAdminParams(nav.RouteHome, &admin))
	s.logger.Info("admin_signed_in", zap.String("username", admin.Username))

	if wasAbsent {
		s.notify(true)
	}
}

// SignOut clears the session. Calling it while already signed out still
// drives navigation to the sign-in route.
func (s *Store) SignOut() {
	s.mu.Lock()
	wasPresent := s.admin != nil
	s.admin = nil
	s.mu.Unlock()

	s.apply()
	if wasPresent {
		s.logger.Info("admin_signed_out")
		s.notify(false)
	}
}

// Subscribe registers a presence listener. Registration order is invocation
// order.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// apply re-installs the request decoration for the current session and
// enforces the redirect rule. Replacing the decorator chain is atomic with
// respect to future requests; requests already dispatched keep the
// parameters they captured.
func (s *Store) apply() {
	s.mu.Lock()
	admin := s.admin
	s.mu.Unlock()

	s.client.SetDecorators(credentialDecorator(admin))

	if admin == nil && s.navigator.Current() != nav.RouteSignIn {
		s.navigator.Navigate(nav.RouteSignIn)
	}
}

func (s *Store) notify(present bool) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(present)
	}
}

// credentialDecorator captures the admin at install time. The root path is
// the credential-check endpoint: it always keeps whatever parameters the
// caller supplied, since the initial check happens before a session exists.
func credentialDecorator(admin *models.Admin) api.Decorator {
	return func(path string, params url.Values) {
		if path == nav.RouteHome {
			return
		}
		if admin == nil {
			return
		}
		params.Set("username", admin.Username)
		params.Set("password", admin.Password)
	}
}
