package tabular

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/sequence"
)

// Row is one denormalized interchange record. Every field is carried as the
// exact string written to or read from the file; numeric interpretation
// happens at the reconciliation boundary, not here.
//
// Extra collects cells under headers outside the fixed column set. They are
// preserved for diagnostics but never written back on export.
type Row struct {
	SessionID   string
	AccountID   string
	ProjectID   string
	ProjectName string
	ExportedAt  string
	FlowToken   string

	NodeID        string
	NodeOrderID   string
	SequenceIndex string
	ParallelGroup string
	HasCycle      string

	PosX    string
	PosY    string
	Shape   string
	FrameID string

	Title    string
	Body     string
	CTALabel string
	CTAURL   string
	CTANote  string
	Tone     string
	Audience string
	Intent   string
	Stage    string

	EdgesJSON   string
	OptionsJSON string

	Extra map[string]string
}

// Value returns the cell for a known column name, or "" otherwise.
func (r *Row) Value(col string) string {
	switch col {
	case ColSessionID:
		return r.SessionID
	case ColAccountID:
		return r.AccountID
	case ColProjectID:
		return r.ProjectID
	case ColProjectName:
		return r.ProjectName
	case ColExportedAt:
		return r.ExportedAt
	case ColFlowToken:
		return r.FlowToken
	case ColNodeID:
		return r.NodeID
	case ColNodeOrderID:
		return r.NodeOrderID
	case ColSequenceIndex:
		return r.SequenceIndex
	case ColParallelGroup:
		return r.ParallelGroup
	case ColHasCycle:
		return r.HasCycle
	case ColPosX:
		return r.PosX
	case ColPosY:
		return r.PosY
	case ColShape:
		return r.Shape
	case ColFrameID:
		return r.FrameID
	case ColTitle:
		return r.Title
	case ColBody:
		return r.Body
	case ColCTALabel:
		return r.CTALabel
	case ColCTAURL:
		return r.CTAURL
	case ColCTANote:
		return r.CTANote
	case ColTone:
		return r.Tone
	case ColAudience:
		return r.Audience
	case ColIntent:
		return r.Intent
	case ColStage:
		return r.Stage
	case ColEdgesJSON:
		return r.EdgesJSON
	case ColOptionsJSON:
		return r.OptionsJSON
	}
	return ""
}

// Set writes the cell for a column name. Unknown columns land in Extra.
func (r *Row) Set(col, val string) {
	switch col {
	case ColSessionID:
		r.SessionID = val
	case ColAccountID:
		r.AccountID = val
	case ColProjectID:
		r.ProjectID = val
	case ColProjectName:
		r.ProjectName = val
	case ColExportedAt:
		r.ExportedAt = val
	case ColFlowToken:
		r.FlowToken = val
	case ColNodeID:
		r.NodeID = val
	case ColNodeOrderID:
		r.NodeOrderID = val
	case ColSequenceIndex:
		r.SequenceIndex = val
	case ColParallelGroup:
		r.ParallelGroup = val
	case ColHasCycle:
		r.HasCycle = val
	case ColPosX:
		r.PosX = val
	case ColPosY:
		r.PosY = val
	case ColShape:
		r.Shape = val
	case ColFrameID:
		r.FrameID = val
	case ColTitle:
		r.Title = val
	case ColBody:
		r.Body = val
	case ColCTALabel:
		r.CTALabel = val
	case ColCTAURL:
		r.CTAURL = val
	case ColCTANote:
		r.CTANote = val
	case ColTone:
		r.Tone = val
	case ColAudience:
		r.Audience = val
	case ColIntent:
		r.Intent = val
	case ColStage:
		r.Stage = val
	case ColEdgesJSON:
		r.EdgesJSON = val
	case ColOptionsJSON:
		r.OptionsJSON = val
	default:
		if r.Extra == nil {
			r.Extra = map[string]string{}
		}
		r.Extra[col] = val
	}
}

// IsEmpty reports whether every known cell is empty. Used to drop all-empty
// trailing rows produced by editors that pad files with blank lines.
func (r *Row) IsEmpty() bool {
	for _, col := range Columns {
		if r.Value(col) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// Flat-Row Projection
// =============================================================================

// ExportContext carries everything the projection needs: the project graph,
// its vocabulary, and the session identifiers stamped on every row.
type ExportContext struct {
	SessionID  string
	AccountID  string
	Project    flow.Project
	ExportedAt time.Time
}

// ToFlatRows projects a graph into interchange rows, one per node in display
// order. The ordering, grouping, and projection run here so the computed
// sequence columns are always fresh; stored sequence numbers are never
// trusted. With zero nodes the result is exactly one placeholder row whose
// node cells are empty but whose context and blob cells are populated.
func ToFlatRows(ctx ExportContext) []Row {
	p := ctx.Project
	ord := sequence.Order(p.Nodes, p.Edges)
	grp := sequence.GroupParallel(p.Nodes, p.Edges)
	final := sequence.Project(ord, grp)
	display := sequence.DisplayOrder(p.Nodes, final)
	token := sequence.Identity(ord.OrderedIDs, p.Nodes, p.Edges)

	edgesJSON, _ := json.Marshal(p.Edges)
	optionsJSON, _ := json.Marshal(p.Options)

	base := Row{
		SessionID:   ctx.SessionID,
		AccountID:   ctx.AccountID,
		ProjectID:   p.ID,
		ProjectName: p.Name,
		ExportedAt:  ctx.ExportedAt.UTC().Format(time.RFC3339),
		FlowToken:   token,
		HasCycle:    strconv.FormatBool(ord.HasCycle),
		EdgesJSON:   string(edgesJSON),
		OptionsJSON: string(optionsJSON),
	}

	if len(p.Nodes) == 0 {
		return []Row{base}
	}

	byID := make(map[string]flow.Node, len(p.Nodes))
	for _, n := range p.Nodes {
		byID[n.ID] = n
	}

	rows := make([]Row, 0, len(display))
	for i, id := range display {
		n := byID[id]
		r := base
		r.NodeID = n.ID
		r.NodeOrderID = strconv.Itoa(i + 1)
		r.SequenceIndex = strconv.Itoa(final[id])
		r.ParallelGroup = grp.GroupByNode[id]
		r.PosX = formatCoord(n.X)
		r.PosY = formatCoord(n.Y)
		r.Shape = n.Shape
		r.FrameID = n.GroupID
		r.Title = n.Title
		r.Body = n.Body
		r.CTALabel = n.CTALabel
		r.CTAURL = n.CTAURL
		r.CTANote = n.CTANote
		r.Tone = n.Tone
		r.Audience = n.Audience
		r.Intent = n.Intent
		r.Stage = n.Stage
		rows = append(rows, r)
	}
	return rows
}

// formatCoord renders a coordinate without trailing zeros so round-trips
// stay textually stable.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
