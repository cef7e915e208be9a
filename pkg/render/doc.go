// Package render produces preview diagrams of a content flow.
//
// # Overview
//
// This package draws the directed graph behind a project as a node-link
// diagram: sequential connections appear as arrows, parallel connections as
// dashed links, and parallel groups as clusters. The preview is a debug and
// review artifact; it never feeds back into node positions or ordering.
//
// # Usage
//
// Convert a project to DOT format, then render to SVG:
//
//	dot := render.ToDOT(p.Nodes, p.Edges, render.Options{Detailed: true})
//	svg, err := render.SVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [SVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR), mirroring how
// authors lay flows out on the canvas.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package render
