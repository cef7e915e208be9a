package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/sequence"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes sequence numbers, tone, and stage in node labels.
	// When false, only the title (or id) is shown.
	Detailed bool
}

// ToDOT converts a flow graph to Graphviz DOT format. Nodes appear in their
// derived sequence; parallel groups become clusters so co-delivered messages
// read as a unit. The resulting DOT string can be rendered with [SVG].
func ToDOT(nodes []flow.Node, edges []flow.Edge, opts Options) string {
	ord := sequence.Order(nodes, edges)
	grp := sequence.GroupParallel(nodes, edges)
	final := sequence.Project(ord, grp)

	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	grouped := map[string]bool{}
	for i, g := range grp.Groups {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		buf.WriteString("    style=dashed;\n")
		buf.WriteString("    color=grey;\n")
		for _, id := range g.Members {
			grouped[id] = true
			writeNode(&buf, "    ", findNode(nodes, id), final[id], opts)
		}
		buf.WriteString("  }\n")
	}

	for _, id := range ord.OrderedIDs {
		if !grouped[id] {
			writeNode(&buf, "  ", findNode(nodes, id), final[id], opts)
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if e.IsParallel() {
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed, color=grey];\n", e.Source, e.Target)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func findNode(nodes []flow.Node, id string) flow.Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return flow.Node{ID: id}
}

func writeNode(buf *bytes.Buffer, indent string, n flow.Node, seq int, opts Options) {
	fmt.Fprintf(buf, "%s%q [label=%q];\n", indent, n.ID, nodeLabel(n, seq, opts))
}

func nodeLabel(n flow.Node, seq int, opts Options) string {
	title := n.Title
	if title == "" {
		title = n.ID
	}
	if !opts.Detailed {
		return title
	}

	label := fmt.Sprintf("%d. %s", seq, title)
	var meta []string
	if n.Tone != "" {
		meta = append(meta, "tone: "+n.Tone)
	}
	if n.Stage != "" {
		meta = append(meta, "stage: "+n.Stage)
	}
	if len(meta) > 0 {
		label += "\n" + strings.Join(meta, "\n")
	}
	return label
}
