package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/session"
)

// NewCareers builds the career cache. Ingestion derives inactiveStudents when
// the server omits it, so downstream code never special-cases its absence.
func NewCareers(client *api.Client, sess *session.Store, onError ErrorSink, logger *zap.Logger) *Cache[models.Career] {
	fetch := func(ctx context.Context) ([]models.Career, error) {
		resp, err := client.Get(ctx, "/careers", nil)
		if err != nil {
			return nil, err
		}
		var payload struct {
			Message []models.CareerWire `json:"message"`
		}
		if err := resp.Decode(&payload); err != nil {
			return nil, err
		}
		careers := make([]models.Career, 0, len(payload.Message))
		for _, wire := range payload.Message {
			careers = append(careers, wire.Ingest())
		}
		return careers, nil
	}
	return New("careers", sess, fetch, onError, logger)
}

// FindCareer looks a career up by id in a loaded cache.
func FindCareer(cache *Cache[models.Career], id string) (models.Career, bool) {
	return cache.Find(func(c models.Career) bool { return c.ID == id })
}

// CareerName resolves a career id to its display name. A dangling reference
// degrades to a placeholder label, not an error.
func CareerName(cache *Cache[models.Career], id string) string {
	if career, ok := FindCareer(cache, id); ok {
		return career.Name
	}
	return "Desconocida"
}
