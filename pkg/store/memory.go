package store

import (
	"context"
	"sync"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

// MemoryStore keeps projects in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]flow.Project
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]flow.Project)}
}

// Get returns the project with the given id, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (flow.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return flow.Project{}, ErrNotFound
	}
	return p, nil
}

// Put saves a sanitized copy of the project.
func (s *MemoryStore) Put(ctx context.Context, p flow.Project) error {
	if p.ID == "" {
		return ErrInvalidProject
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = sanitize(p)
	return nil
}

// Delete removes a project. Missing projects are ignored.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

// List returns all stored project ids.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	return ids, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
