package sequence

import (
	"slices"
	"strings"

	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/flow/ident"
)

// IdentityPrefix starts every project sequence-identity token.
const IdentityPrefix = "FLOW-"

// Project merges an ordering with a grouping into the final per-node
// sequence numbers: every member of a parallel group adopts the minimum
// sequence number found among the group, and ungrouped nodes keep their
// ordering rank.
func Project(ord Ordering, grp Grouping) map[string]int {
	final := make(map[string]int, len(ord.SequenceByNode))
	for id, seq := range ord.SequenceByNode {
		final[id] = seq
	}

	for _, g := range grp.Groups {
		min := 0
		for _, id := range g.Members {
			if seq, ok := final[id]; ok && (min == 0 || seq < min) {
				min = seq
			}
		}
		if min == 0 {
			continue
		}
		for _, id := range g.Members {
			if _, ok := final[id]; ok {
				final[id] = min
			}
		}
	}
	return final
}

// DisplayOrder sorts node ids by final sequence number, breaking ties with
// the (x, y, id) comparator. Parallel-group members share a sequence number,
// so the comparator decides their relative display position.
func DisplayOrder(nodes []flow.Node, final map[string]int) []string {
	byID := make(map[string]flow.Node, len(nodes))
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
		ids = append(ids, n.ID)
	}

	cmp := tieBreak(byID)
	slices.SortFunc(ids, func(a, b string) int {
		if d := final[a] - final[b]; d != 0 {
			return d
		}
		return cmp(a, b)
	})
	return ids
}

// Identity computes the project sequence-identity token for the current
// sequential topology.
//
// The payload covers the reading order and the sorted signatures of valid
// sequential edges. Parallel edges are deliberately excluded: cosmetic
// grouping must never perturb the identity. Position-only edits that leave
// the order unchanged therefore keep the token stable, while adding,
// removing, or reversing a sequential edge changes it.
func Identity(orderedIDs []string, nodes []flow.Node, edges []flow.Edge) string {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	var sigs []string
	for _, e := range edges {
		if !e.IsSequential() || !known[e.Source] || !known[e.Target] {
			continue
		}
		sigs = append(sigs, e.Source+"->"+e.Target)
	}
	slices.Sort(sigs)

	payload := "v1|order:" + strings.Join(orderedIDs, ">") + "|edges:" + strings.Join(sigs, "|")
	return IdentityPrefix + ident.Hash(payload)
}
