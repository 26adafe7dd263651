// Package store persists threat-model graphs by identifier.
//
// The server uses a [Store] to save decoded models and serve them back to
// editor clients. [MongoStore] is the production backend; [MemoryStore]
// backs tests and cache-less single-shot usage.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/threatforge/threatforge/pkg/model"
)

// ErrNotFound is returned when no model exists under the requested id.
var ErrNotFound = errors.New("model not found")

// Summary is the listing view of a stored model.
type Summary struct {
	ID       string    `json:"id" bson:"_id"`
	Name     string    `json:"name" bson:"name"`
	Modified time.Time `json:"modified" bson:"modified"`
}

// Store saves and loads threat-model graphs. Implementations must be safe
// for concurrent use.
type Store interface {
	// Save stores the graph under id, replacing any previous version.
	Save(ctx context.Context, id string, g model.Graph) error

	// Get returns the graph stored under id, or [ErrNotFound].
	Get(ctx context.Context, id string) (model.Graph, error)

	// List returns summaries of all stored models.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes the model under id, or returns [ErrNotFound].
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
