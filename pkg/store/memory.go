package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/threatforge/threatforge/pkg/model"
)

// MemoryStore is an in-process Store used by tests and by servers running
// without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	models map[string]modelDocument
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{models: make(map[string]modelDocument)}
}

// Save stores a deep copy of the graph under id.
func (s *MemoryStore) Save(ctx context.Context, id string, g model.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[id] = modelDocument{
		ID:       id,
		Name:     g.Metadata.Name,
		Modified: time.Now().UTC(),
		Graph:    g.Clone(),
	}
	return nil
}

// Get returns a deep copy of the graph stored under id.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.models[id]
	if !ok {
		return model.Graph{}, ErrNotFound
	}
	return doc.Graph.Clone(), nil
}

// List returns summaries of all stored models, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]Summary, 0, len(s.models))
	for _, doc := range s.models {
		summaries = append(summaries, Summary{ID: doc.ID, Name: doc.Name, Modified: doc.Modified})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Modified.After(summaries[j].Modified)
	})
	return summaries, nil
}

// Delete removes the model under id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[id]; !ok {
		return ErrNotFound
	}
	delete(s.models, id)
	return nil
}

// Close does nothing for memory stores.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
