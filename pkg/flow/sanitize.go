package flow

import (
	"fmt"
	"strings"
)

// =============================================================================
// Graph Sanitation
//
// These rules run on every project load, whether the project comes from the
// store or from a reconciled import, so both paths agree on what a valid
// graph looks like. Self-loops are allowed; dangling edges are not.
// =============================================================================

// SanitizeNodes deduplicates node ids, suffixing later duplicates until
// unique, and drops nodes with empty ids. The input slice is not modified.
func SanitizeNodes(nodes []Node) []Node {
	seen := make(map[string]bool, len(nodes))
	out := make([]Node, 0, len(nodes))

	for _, n := range nodes {
		id := strings.TrimSpace(n.ID)
		if id == "" {
			continue
		}
		if seen[id] {
			id = uniqueID(id, seen)
		}
		seen[id] = true
		n.ID = id
		out = append(out, n)
	}
	return out
}

// SanitizeEdges drops edges whose endpoints reference unknown nodes and
// normalizes missing kinds to sequential. Duplicate edge ids are suffixed
// the same way duplicate node ids are. The input slice is not modified.
func SanitizeEdges(nodes []Node, edges []Edge) []Edge {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	seen := make(map[string]bool, len(edges))
	out := make([]Edge, 0, len(edges))

	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		if e.Kind != EdgeSequential && e.Kind != EdgeParallel {
			e.Kind = EdgeSequential
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = fmt.Sprintf("%s-%s", e.Source, e.Target)
		}
		if seen[id] {
			id = uniqueID(id, seen)
		}
		seen[id] = true
		e.ID = id
		out = append(out, e)
	}
	return out
}

// MergeVocabulary unions two word lists: trim whitespace, drop empties,
// deduplicate keeping first-seen order.
func MergeVocabulary(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))

	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// MergeAdminOptions merges each vocabulary of extra into base.
func MergeAdminOptions(base, extra AdminOptions) AdminOptions {
	return AdminOptions{
		Tones:     MergeVocabulary(base.Tones, extra.Tones),
		Audiences: MergeVocabulary(base.Audiences, extra.Audiences),
		Intents:   MergeVocabulary(base.Intents, extra.Intents),
		Stages:    MergeVocabulary(base.Stages, extra.Stages),
	}
}

// uniqueID appends "-2", "-3", ... until the id is unused.
func uniqueID(id string, seen map[string]bool) string {
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", id, i)
		if !seen[candidate] {
			return candidate
		}
	}
}
