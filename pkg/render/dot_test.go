package render

import (
	"strings"
	"testing"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

func TestToDOT(t *testing.T) {
	nodes := []flow.Node{
		{ID: "welcome", X: 0, Y: 0, Title: "Welcome"},
		{ID: "cta", X: 100, Y: 0, Title: "Try it", Tone: "friendly"},
		{ID: "aside", X: 100, Y: 100, Title: "Aside"},
	}
	edges := []flow.Edge{
		{ID: "e1", Source: "welcome", Target: "cta", Kind: flow.EdgeSequential},
		{ID: "e2", Source: "cta", Target: "aside", Kind: flow.EdgeParallel},
	}

	dot := ToDOT(nodes, edges, Options{})

	for _, want := range []string{
		"digraph flow {",
		"rankdir=LR;",
		`"welcome" [label="Welcome"];`,
		`"welcome" -> "cta";`,
		`"cta" -> "aside" [dir=none, style=dashed, color=grey];`,
		"subgraph cluster_0 {",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	nodes := []flow.Node{
		{ID: "welcome", Title: "Welcome", Tone: "friendly", Stage: "approved"},
	}

	dot := ToDOT(nodes, nil, Options{Detailed: true})

	if !strings.Contains(dot, "1. Welcome") {
		t.Errorf("detailed label missing sequence number:\n%s", dot)
	}
	if !strings.Contains(dot, "tone: friendly") || !strings.Contains(dot, "stage: approved") {
		t.Errorf("detailed label missing metadata:\n%s", dot)
	}
}

func TestToDOTUntitledNodeFallsBackToID(t *testing.T) {
	dot := ToDOT([]flow.Node{{ID: "n1"}}, nil, Options{})
	if !strings.Contains(dot, `"n1" [label="n1"];`) {
		t.Errorf("untitled node not labeled by id:\n%s", dot)
	}
}
