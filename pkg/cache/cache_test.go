package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	key := "seq:abc123"
	payload := []byte(`{"ordered":["a","b"]}`)

	if _, hit, _ := c.Get(ctx, key); hit {
		t.Fatal("unexpected hit before Set")
	}

	if err := c.Set(ctx, key, payload, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != string(payload) {
		t.Errorf("Get = %q hit=%v", data, hit)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("hit after Delete")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "ttl-key", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "ttl-key"); hit {
		t.Error("expired entry should miss")
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if k.SequenceKey("h1") != k.SequenceKey("h1") {
		t.Error("SequenceKey not deterministic")
	}
	if k.SequenceKey("h1") == k.SequenceKey("h2") {
		t.Error("different hashes share a key")
	}
	if k.SequenceKey("h1") == k.RowsKey("h1", "csv") {
		t.Error("kinds share a key")
	}
	if k.RowsKey("h1", "csv") == k.RowsKey("h1", "xml") {
		t.Error("formats share a key")
	}

	scoped := NewScopedKeyer(k, "acct-1:")
	if !strings.HasPrefix(scoped.SequenceKey("h1"), "acct-1:") {
		t.Error("scoped key lacks prefix")
	}
	if strings.TrimPrefix(scoped.RowsKey("h", "csv"), "acct-1:") != k.RowsKey("h", "csv") {
		t.Error("scoped key does not wrap inner key")
	}
}

func TestGraphHash(t *testing.T) {
	nodes := []flow.Node{{ID: "a", X: 1}, {ID: "b", X: 2}}
	edges := []flow.Edge{{ID: "e", Source: "a", Target: "b", Kind: flow.EdgeSequential}}

	h1 := GraphHash(nodes, edges)
	if len(h1) != 64 {
		t.Fatalf("hash length = %d, want 64", len(h1))
	}

	// Stable under input slice order.
	reversed := []flow.Node{nodes[1], nodes[0]}
	if GraphHash(reversed, edges) != h1 {
		t.Error("GraphHash depends on slice order")
	}

	// Sensitive to content.
	moved := []flow.Node{{ID: "a", X: 99}, {ID: "b", X: 2}}
	if GraphHash(moved, edges) == h1 {
		t.Error("GraphHash ignored a position change")
	}
}
