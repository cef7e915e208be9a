// Package sequence derives the reading order of a flow graph.
//
// The package has three stages, all pure functions over snapshots of the
// graph:
//
//  1. Order: topological sort over sequential edges with a deterministic
//     tie-break and a total-order cycle fallback.
//  2. GroupParallel: connected components over parallel edges.
//  3. Project: merge ordering and grouping into the final per-node sequence
//     numbers, plus the project-level sequence identity token.
//
// Determinism is the contract: the same graph, regardless of input slice
// order, always yields the same output. Simultaneously eligible nodes are
// resolved by ascending x, then ascending y, then lexicographic id.
package sequence
