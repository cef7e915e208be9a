// Package store persists projects for the authoring collaborators.
//
// The core engines are stateless; this package is the storage side of the
// boundary. Two backends are provided:
//   - MemoryStore: in-process, for development and tests
//   - MongoStore: document database, for shared deployments
//
// Both speak in plain flow.Project snapshots. Graphs pass through the
// standard sanitation rules on save so everything read back is loadable by
// the sequence engine without further checks.
package store

import (
	"context"
	"errors"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a project does not exist.
	ErrNotFound = errors.New("project not found")

	// ErrInvalidProject is returned when a project has no id.
	ErrInvalidProject = errors.New("project id is required")
)

// Store is the persistence interface for projects.
type Store interface {
	// Get returns the project with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (flow.Project, error)

	// Put saves a project, replacing any existing project with the same id.
	Put(ctx context.Context, p flow.Project) error

	// Delete removes a project. Deleting a missing project is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored projects in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// sanitize applies the standard graph sanitation rules before a project is
// persisted, so every stored snapshot is internally consistent.
func sanitize(p flow.Project) flow.Project {
	p.Nodes = flow.SanitizeNodes(p.Nodes)
	p.Edges = flow.SanitizeEdges(p.Nodes, p.Edges)
	return p
}
