// Package store implements the client-held collection caches: nullable lists
// mirroring a server collection, refreshed by full replace.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/session"
)

// Fetch retrieves the full collection from the remote API.
type Fetch[E any] func(ctx context.Context) ([]E, error)

// ErrorSink receives reload failures. The cache itself exposes no error
// state; this side channel is how callers get visibility.
type ErrorSink func(error)

// Cache holds a nullable list of entities. Items() == nil means "not yet
// loaded"; any non-nil slice, including an empty one, means "loaded".
// Reloads are full replaces, so concurrent reloads settle last-write-wins
// without corrupting state.
type Cache[E any] struct {
	mu        sync.RWMutex
	items     []E
	loaded    bool
	listeners []func()
	fetch     Fetch[E]
	session   *session.Store
	onError   ErrorSink
	logger    *zap.Logger
	name      string
}

// New builds an unattached cache. Call Attach to gate it on the session.
func New[E any](name string, sess *session.Store, fetch Fetch[E], onError ErrorSink, logger *zap.Logger) *Cache[E] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Cache[E]{name: name, session: sess, fetch: fetch, onError: onError, logger: logger}
}

// Attach subscribes the cache to session transitions: exactly one reload per
// absent-to-present edge, including at attach time when a session already
// exists from initialization. While no session exists the cache never loads.
func (c *Cache[E]) Attach() {
	c.session.Subscribe(func(present bool) {
		if present {
			_ = c.Reload(context.Background())
		}
	})
	if c.session.Admin() != nil {
		_ = c.Reload(context.Background())
	}
}

// Subscribe registers a change listener, invoked after every successful
// reload and after every Set. Listeners run outside the cache lock and may
// read the cache freely.
func (c *Cache[E]) Subscribe(l func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Items returns the current list, or nil when not yet loaded. Consumers must
// treat nil as "loading" and an empty slice as "loaded, empty". The returned
// slice is a copy; writes go through Set or a reload, never in place.
func (c *Cache[E]) Items() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil
	}
	items := make([]E, len(c.items))
	copy(items, c.items)
	return items
}

// Loaded reports whether the cache holds server state.
func (c *Cache[E]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Set replaces the list directly. It exists for callers that choose optimistic
// replacement instead of a reload; no flow in this client requires it.
func (c *Cache[E]) Set(items []E) {
	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()
	c.notify()
}

// Find returns the first item matching pred, if the cache is loaded.
func (c *Cache[E]) Find(pred func(E) bool) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero E
	return zero, false
}

// Reload refetches the full collection and replaces the list atomically. It
// is a no-op without an active session. On failure the previous contents stay
// visible and the error goes to the sink as well as the caller.
func (c *Cache[E]) Reload(ctx context.Context) error {
	if c.session.Admin() == nil {
		return nil
	}

	items, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("cache_reload_failed", zap.String("cache", c.name), zap.Error(err))
		c.onError(err)
		return err
	}

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()

	c.logger.Debug("cache_reloaded", zap.String("cache", c.name), zap.Int("count", len(items)))
	c.notify()
	return nil
}

func (c *Cache[E]) notify() {
	c.mu.RLock()
	listeners := make([]func(), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
