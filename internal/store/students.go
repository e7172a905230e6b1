package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/session"
)

// NewStudents builds the student cache. Ingestion turns the wire birth-date
// string into a real time value.
func NewStudents(client *api.Client, sess *session.Store, onError ErrorSink, logger *zap.Logger) *Cache[models.Student] {
	fetch := func(ctx context.Context) ([]models.Student, error) {
		resp, err := client.Get(ctx, "/students", nil)
		if err != nil {
			return nil, err
		}
		var payload struct {
			Message []models.StudentWire `json:"message"`
		}
		if err := resp.Decode(&payload); err != nil {
			return nil, err
		}
		students := make([]models.Student, 0, len(payload.Message))
		for _, wire := range payload.Message {
			student, err := wire.Ingest()
			if err != nil {
				return nil, err
			}
			students = append(students, student)
		}
		return students, nil
	}
	return New("students", sess, fetch, onError, logger)
}

// FindStudent looks a student up by id in a loaded cache.
func FindStudent(cache *Cache[models.Student], id string) (models.Student, bool) {
	return cache.Find(func(s models.Student) bool { return s.ID == id })
}
