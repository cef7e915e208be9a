// Package reconcile rebuilds a project from parsed interchange rows.
//
// Reconciliation matches rows to the active project, restores nodes in the
// author's intended layout order, recovers the edge list and vocabulary from
// the JSON-blob columns, and re-runs the standard graph sanitation so an
// imported project obeys the same rules as an ordinary load. The row order
// key only governs the re-import layout; the authoritative sequence is
// always recomputed by the sequence package afterwards.
package reconcile

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/flowcopy/flowcopy/pkg/errors"
	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/tabular"
)

// Layout defaults applied when a row carries no usable position. Nodes fall
// back to a deterministic left-to-right strip so re-imports without
// coordinates still produce a readable canvas.
const (
	layoutOriginX  = 80.0
	layoutOriginY  = 160.0
	layoutSpacingX = 240.0
)

// Result is the reconciled project fragment handed back to the canvas and
// storage collaborators.
type Result struct {
	Nodes   []flow.Node
	Edges   []flow.Edge
	Options flow.AdminOptions
}

// Reconcile matches parsed rows against the active project and rebuilds its
// graph.
//
// Failure modes follow the import taxonomy: zero input rows is
// ErrCodeEmptyImport, rows that all belong to other projects is
// ErrCodeNoMatchingRows (the message names the expected id). Malformed cells
// never fail the batch: unusable positions fall back to the layout strip,
// malformed JSON blobs degrade to empty edges and default vocabulary.
func Reconcile(rows []tabular.Row, activeProjectID string) (Result, error) {
	if len(rows) == 0 {
		return Result{}, errors.New(errors.ErrCodeEmptyImport, "the file contains no data rows")
	}

	var matches []tabular.Row
	for _, r := range rows {
		if strings.TrimSpace(r.ProjectID) == activeProjectID {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return Result{}, errors.New(errors.ErrCodeNoMatchingRows,
			"no rows match the active project %q; check that the file was exported from this project", activeProjectID)
	}

	type candidate struct {
		row tabular.Row
		key float64
	}
	var candidates []candidate
	for i, r := range matches {
		if strings.TrimSpace(r.NodeID) == "" {
			continue
		}
		candidates = append(candidates, candidate{row: r, key: orderKey(r, i)})
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})

	nodes := make([]flow.Node, 0, len(candidates))
	for i, c := range candidates {
		nodes = append(nodes, nodeFromRow(c.row, i))
	}

	edges, options := recoverBlobs(matches[0])

	nodes = flow.SanitizeNodes(nodes)
	edges = flow.SanitizeEdges(nodes, edges)

	return Result{
		Nodes:   nodes,
		Edges:   edges,
		Options: flow.MergeAdminOptions(flow.DefaultAdminOptions(), options),
	}, nil
}

// orderKey picks the numeric key governing re-import layout order:
// node_order_id, else sequence_index, else the row's original position.
func orderKey(r tabular.Row, position int) float64 {
	if v, ok := optionalFloat(r.NodeOrderID); ok {
		return v
	}
	if v, ok := optionalFloat(r.SequenceIndex); ok {
		return v
	}
	return float64(position)
}

// nodeFromRow copies content fields verbatim and resolves the position,
// falling back to the layout strip when either coordinate is unusable.
func nodeFromRow(r tabular.Row, index int) flow.Node {
	n := flow.Node{
		ID:       strings.TrimSpace(r.NodeID),
		Title:    r.Title,
		Body:     r.Body,
		CTALabel: r.CTALabel,
		CTAURL:   r.CTAURL,
		CTANote:  r.CTANote,
		Tone:     r.Tone,
		Audience: r.Audience,
		Intent:   r.Intent,
		Stage:    r.Stage,
		Shape:    r.Shape,
		GroupID:  r.FrameID,
	}

	x, okX := optionalFloat(r.PosX)
	y, okY := optionalFloat(r.PosY)
	if okX && okY {
		n.X, n.Y = x, y
	} else {
		n.X = layoutOriginX + float64(index)*layoutSpacingX
		n.Y = layoutOriginY
	}
	return n
}

// recoverBlobs parses the JSON-blob columns of the first matching row.
// Malformed JSON degrades to the zero value rather than aborting the import.
func recoverBlobs(r tabular.Row) ([]flow.Edge, flow.AdminOptions) {
	var edges []flow.Edge
	if s := strings.TrimSpace(r.EdgesJSON); s != "" {
		if err := json.Unmarshal([]byte(s), &edges); err != nil {
			edges = nil
		}
	}

	var options flow.AdminOptions
	if s := strings.TrimSpace(r.OptionsJSON); s != "" {
		if err := json.Unmarshal([]byte(s), &options); err != nil {
			options = flow.AdminOptions{}
		}
	}
	return edges, options
}

// optionalFloat is the explicit string-to-number coercion used throughout
// reconciliation: trimmed, strconv-parsed, and only accepted when finite.
func optionalFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
