// Package pkg provides the core libraries for FlowCopy.
//
// # Overview
//
// FlowCopy turns a content-flow graph drawn on a canvas into an ordered,
// shareable document and back. The pkg directory is organized into four main
// areas:
//
//  1. [flow] - Domain types (nodes, edges, projects, vocabulary)
//  2. [sequence] - Order derivation (topological sort, parallel groups, identity)
//  3. [tabular] / [reconcile] - Interchange (CSV/XML codec, import reconciliation)
//  4. [pipeline] - Orchestration used by the CLI and the HTTP API
//
// # Architecture
//
// The typical data flow through FlowCopy:
//
//	Canvas graph (nodes + edges)
//	         ↓
//	    [sequence] package (order, parallel groups, identity token)
//	         ↓
//	    [tabular] package (flat rows → CSV or XML)
//	         ↓
//	    interchange document
//	         ↓
//	    [reconcile] package (rows → rebuilt graph on import)
//
// # Quick Start
//
// Derive a send order and export a document:
//
//	import (
//	    "context"
//	    "github.com/flowcopy/flowcopy/pkg/flow"
//	    "github.com/flowcopy/flowcopy/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner()
//	info, _ := runner.Sequence(context.Background(), project)
//	res, _ := runner.Export(context.Background(), project, pipeline.ExportOptions{})
//
// # Main Packages
//
// [flow] - Node, Edge, Project, and AdminOptions types plus the sanitation
// rules every graph passes through before ordering or persistence.
//
// [sequence] - Deterministic ordering: Kahn's algorithm with a positional
// tie-break, parallel-group computation over parallel connections, sequence
// projection, and the FLOW- identity token.
//
// [flow/ident] - The 32-bit string hash behind the identity token.
//
// [tabular] - The denormalized interchange schema, the CSV and XML codecs,
// format detection, and export filenames.
//
// [reconcile] - Rebuilds a flow graph from parsed interchange rows: content
// recovery, layout fallback, edge and vocabulary recovery, sanitation.
//
// ## Infrastructure
//
// [cache] - Derived-result caching with file, Redis, and no-op backends.
//
// [store] - Project persistence with memory and MongoDB backends.
//
// [session] - The editing-session identity stamped on export rows.
//
// [errors] - Structured error codes shared by the CLI and the API, including
// the closed import taxonomy.
//
// [observability] - Optional instrumentation hooks for the pipeline and cache.
//
// [pipeline] - Export and import orchestration (sequence → rows → document,
// document → rows → graph) with caching and logging, used by CLI and API.
//
// [render] - Graphviz preview diagrams of the flow graph.
//
// [buildinfo] - Build-time version information.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/sequence/...  # Specific package
//	go test -run Example        # Examples only
//
// [flow]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/flow
// [flow/ident]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/flow/ident
// [sequence]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/sequence
// [tabular]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/tabular
// [reconcile]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/reconcile
// [cache]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/cache
// [store]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/store
// [session]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/session
// [errors]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/errors
// [observability]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/render
// [buildinfo]: https://pkg.go.dev/github.com/flowcopy/flowcopy/pkg/buildinfo
package pkg
