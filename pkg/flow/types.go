package flow

import "slices"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Edge kinds.
const (
	// EdgeSequential is a directed edge that contributes to reading-order
	// topology. Only sequential edges participate in ordering and identity.
	EdgeSequential = "sequential"

	// EdgeParallel ties nodes into the same reading step without imposing
	// order. Parallel edges are treated as undirected during grouping.
	EdgeParallel = "parallel"
)

// Node shapes recognized by the authoring canvas. The core treats the shape
// as an opaque tag; the constants exist so collaborators agree on spelling.
const (
	ShapeCard    = "card"
	ShapeBanner  = "banner"
	ShapeModal   = "modal"
	ShapeTooltip = "tooltip"
)

// =============================================================================
// Node - Content Node
// =============================================================================

// Node is a single piece of authored copy on the canvas.
//
// The sequence number of a node is always derived by the ordering engine and
// never stored on the node itself. Position is canvas-owned and only used as
// the deterministic tie-break during ordering.
type Node struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`

	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	Body     string `json:"body,omitempty" bson:"body,omitempty"`
	CTALabel string `json:"cta_label,omitempty" bson:"cta_label,omitempty"`
	CTAURL   string `json:"cta_url,omitempty" bson:"cta_url,omitempty"`
	CTANote  string `json:"cta_note,omitempty" bson:"cta_note,omitempty"`

	Tone     string `json:"tone,omitempty" bson:"tone,omitempty"`
	Audience string `json:"audience,omitempty" bson:"audience,omitempty"`
	Intent   string `json:"intent,omitempty" bson:"intent,omitempty"`
	Stage    string `json:"stage,omitempty" bson:"stage,omitempty"`

	Shape   string `json:"shape,omitempty" bson:"shape,omitempty"`
	GroupID string `json:"group_id,omitempty" bson:"group_id,omitempty"` // canvas frame membership
}

// =============================================================================
// Edge - Directed Connection
// =============================================================================

// Edge connects two nodes. Kind decides whether the edge orders its endpoints
// (sequential) or merges their reading step (parallel). Handle ids and style
// belong to the canvas and are carried only for round-trip fidelity.
type Edge struct {
	ID           string `json:"id" bson:"id"`
	Source       string `json:"source" bson:"source"`
	Target       string `json:"target" bson:"target"`
	Kind         string `json:"kind" bson:"kind"`
	SourceHandle string `json:"source_handle,omitempty" bson:"source_handle,omitempty"`
	TargetHandle string `json:"target_handle,omitempty" bson:"target_handle,omitempty"`
	Style        string `json:"style,omitempty" bson:"style,omitempty"`
}

// IsSequential reports whether the edge participates in ordering.
func (e Edge) IsSequential() bool { return e.Kind == EdgeSequential }

// IsParallel reports whether the edge participates in grouping.
func (e Edge) IsParallel() bool { return e.Kind == EdgeParallel }

// =============================================================================
// AdminOptions - Project-Scoped Vocabularies
// =============================================================================

// AdminOptions holds the classification vocabularies an author can pick from.
// The lists are project-scoped, not node-owned.
type AdminOptions struct {
	Tones     []string `json:"tones" bson:"tones"`
	Audiences []string `json:"audiences" bson:"audiences"`
	Intents   []string `json:"intents" bson:"intents"`
	Stages    []string `json:"stages" bson:"stages"`
}

// DefaultAdminOptions returns the vocabulary a fresh project starts with.
func DefaultAdminOptions() AdminOptions {
	return AdminOptions{
		Tones:     []string{"neutral", "friendly", "urgent", "playful"},
		Audiences: []string{"new-user", "returning", "churn-risk"},
		Intents:   []string{"inform", "convert", "retain"},
		Stages:    []string{"draft", "review", "approved"},
	}
}

// Clone returns a deep copy so callers can merge without mutating the source.
func (a AdminOptions) Clone() AdminOptions {
	return AdminOptions{
		Tones:     slices.Clone(a.Tones),
		Audiences: slices.Clone(a.Audiences),
		Intents:   slices.Clone(a.Intents),
		Stages:    slices.Clone(a.Stages),
	}
}

// =============================================================================
// Project - Storage Unit
// =============================================================================

// Project is the unit persisted by the store and exchanged with collaborators.
type Project struct {
	ID      string       `json:"id" bson:"_id"`
	Name    string       `json:"name,omitempty" bson:"name,omitempty"`
	Nodes   []Node       `json:"nodes" bson:"nodes"`
	Edges   []Edge       `json:"edges" bson:"edges"`
	Options AdminOptions `json:"options" bson:"options"`
}
