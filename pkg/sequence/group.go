package sequence

import (
	"slices"
	"strings"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

// GroupPrefix starts every parallel-group id.
const GroupPrefix = "PG-"

// Group is one connected component over parallel edges.
type Group struct {
	// ID is GroupPrefix plus the sorted member ids joined by "|", so the
	// same members always produce the same id.
	ID string

	// Members holds the component's node ids in lexicographic order.
	Members []string
}

// Grouping is the result of parallel-component discovery.
type Grouping struct {
	// GroupByNode maps node ids to their group id. Nodes without parallel
	// neighbors are absent.
	GroupByNode map[string]string

	// Groups lists the components sorted by their smallest member id.
	Groups []Group
}

// GroupParallel finds the connected components induced by parallel edges.
//
// Parallel edges are treated as undirected; edges referencing unknown node
// ids are ignored. Isolated nodes get no group. Components are discovered by
// visiting nodes in tie-break order and expanding each with a stack-based
// depth-first traversal whose neighbors are taken in lexicographic id order,
// then sorted by smallest member for a deterministic result. Inputs are not
// mutated.
func GroupParallel(nodes []flow.Node, edges []flow.Edge) Grouping {
	byID := make(map[string]flow.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	adj := make(map[string][]string)
	for _, e := range edges {
		if !e.IsParallel() {
			continue
		}
		if _, ok := byID[e.Source]; !ok {
			continue
		}
		if _, ok := byID[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		if e.Source != e.Target {
			adj[e.Target] = append(adj[e.Target], e.Source)
		}
	}
	for id := range adj {
		slices.Sort(adj[id])
	}

	visitOrder := make([]string, 0, len(nodes))
	for _, n := range nodes {
		visitOrder = append(visitOrder, n.ID)
	}
	slices.SortFunc(visitOrder, tieBreak(byID))

	groupByNode := make(map[string]string)
	visited := make(map[string]bool, len(nodes))
	var groups []Group

	for _, start := range visitOrder {
		if visited[start] || len(adj[start]) == 0 {
			continue
		}

		var members []string
		stack := []string{start}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[id] {
				continue
			}
			visited[id] = true
			members = append(members, id)
			for _, nb := range adj[id] {
				if !visited[nb] {
					stack = append(stack, nb)
				}
			}
		}

		slices.Sort(members)
		g := Group{ID: GroupPrefix + strings.Join(members, "|"), Members: members}
		for _, id := range members {
			groupByNode[id] = g.ID
		}
		groups = append(groups, g)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		return strings.Compare(a.Members[0], b.Members[0])
	})

	return Grouping{GroupByNode: groupByNode, Groups: groups}
}
