package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions across projects.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GraphHash computes the content hash of a graph snapshot. Nodes and edges
// are canonicalized (sorted by id) before hashing so the hash is stable
// under input slice order, matching the determinism of the sequence engine.
func GraphHash(nodes []flow.Node, edges []flow.Edge) string {
	ns := slices.Clone(nodes)
	slices.SortFunc(ns, func(a, b flow.Node) int { return strings.Compare(a.ID, b.ID) })

	es := slices.Clone(edges)
	slices.SortFunc(es, func(a, b flow.Edge) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		if c := strings.Compare(a.Target, b.Target); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	data, _ := json.Marshal(struct {
		Nodes []flow.Node `json:"nodes"`
		Edges []flow.Edge `json:"edges"`
	}{ns, es})
	return Hash(data)
}
