package store

import (
	"context"
	"errors"
	"testing"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}

	p := flow.Project{
		ID:    "PRJ-X",
		Nodes: []flow.Node{{ID: "a"}, {ID: "b"}},
		Edges: []flow.Edge{{ID: "e1", Source: "a", Target: "b", Kind: flow.EdgeSequential}},
	}
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "PRJ-X")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Errorf("got = %+v", got)
	}

	ids, err := s.List(ctx)
	if err != nil || len(ids) != 1 || ids[0] != "PRJ-X" {
		t.Errorf("List = %v, %v", ids, err)
	}

	if err := s.Delete(ctx, "PRJ-X"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "PRJ-X"); !errors.Is(err, ErrNotFound) {
		t.Error("project still present after Delete")
	}
}

func TestMemoryStoreRejectsEmptyID(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Put(context.Background(), flow.Project{}); !errors.Is(err, ErrInvalidProject) {
		t.Errorf("Put = %v, want ErrInvalidProject", err)
	}
}

func TestMemoryStoreSanitizesOnPut(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := flow.Project{
		ID:    "PRJ-X",
		Nodes: []flow.Node{{ID: "a"}, {ID: "a"}},
		Edges: []flow.Edge{{ID: "e1", Source: "a", Target: "ghost", Kind: flow.EdgeSequential}},
	}
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _ := s.Get(ctx, "PRJ-X")
	if got.Nodes[1].ID != "a-2" {
		t.Errorf("duplicate node id not suffixed: %+v", got.Nodes)
	}
	if len(got.Edges) != 0 {
		t.Errorf("dangling edge survived: %+v", got.Edges)
	}
}
