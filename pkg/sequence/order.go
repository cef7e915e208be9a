package sequence

import (
	"slices"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

// Ordering is the result of a topological sort over sequential edges.
type Ordering struct {
	// OrderedIDs lists every node id exactly once in reading order.
	OrderedIDs []string

	// SequenceByNode maps each node id to its 1-based rank in OrderedIDs.
	SequenceByNode map[string]int

	// HasCycle reports whether the sequential edges contain a cycle. When
	// true, the nodes trapped in cycles appear after the acyclic prefix,
	// sorted by the tie-break comparator.
	HasCycle bool
}

// Order runs Kahn's algorithm over the sequential edges of the graph.
//
// Edges referencing unknown node ids are ignored, as are duplicate edges
// between the same ordered pair. The returned ordering is always total:
// every node appears exactly once even when the graph is cyclic, so Order
// never fails. Inputs are not mutated.
func Order(nodes []flow.Node, edges []flow.Edge) Ordering {
	byID := make(map[string]flow.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	cmp := tieBreak(byID)

	succ := make(map[string][]string, len(nodes))
	indeg := make(map[string]int, len(nodes))
	for _, n := range nodes {
		indeg[n.ID] = 0
	}

	type pair struct{ from, to string }
	seen := make(map[pair]bool)
	for _, e := range edges {
		if !e.IsSequential() {
			continue
		}
		if _, ok := byID[e.Source]; !ok {
			continue
		}
		if _, ok := byID[e.Target]; !ok {
			continue
		}
		p := pair{e.Source, e.Target}
		if seen[p] {
			continue
		}
		seen[p] = true
		succ[e.Source] = append(succ[e.Source], e.Target)
		indeg[e.Target]++
	}
	for id := range succ {
		slices.SortFunc(succ[id], cmp)
	}

	available := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if indeg[n.ID] == 0 {
			available = append(available, n.ID)
		}
	}
	slices.SortFunc(available, cmp)

	ordered := make([]string, 0, len(nodes))
	for len(available) > 0 {
		id := available[0]
		available = available[1:]
		ordered = append(ordered, id)

		for _, next := range succ[id] {
			indeg[next]--
			if indeg[next] == 0 {
				available = append(available, next)
			}
		}
		slices.SortFunc(available, cmp)
	}

	hasCycle := len(ordered) < len(nodes)
	if hasCycle {
		emitted := make(map[string]bool, len(ordered))
		for _, id := range ordered {
			emitted[id] = true
		}
		rest := make([]string, 0, len(nodes)-len(ordered))
		for _, n := range nodes {
			if !emitted[n.ID] {
				rest = append(rest, n.ID)
			}
		}
		slices.SortFunc(rest, cmp)
		ordered = append(ordered, rest...)
	}

	seq := make(map[string]int, len(ordered))
	for i, id := range ordered {
		seq[id] = i + 1
	}

	return Ordering{OrderedIDs: ordered, SequenceByNode: seq, HasCycle: hasCycle}
}

// tieBreak returns the deterministic comparator over node ids: ascending x,
// then ascending y, then lexicographic id.
func tieBreak(byID map[string]flow.Node) func(a, b string) int {
	return func(a, b string) int {
		na, nb := byID[a], byID[b]
		switch {
		case na.X < nb.X:
			return -1
		case na.X > nb.X:
			return 1
		}
		switch {
		case na.Y < nb.Y:
			return -1
		case na.Y > nb.Y:
			return 1
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
}
