package tabular

// Column names of the interchange formats. The set is fixed and closed:
// exports always write exactly these columns in this order, and imports
// expect them (unknown headers are bucketed, not errored).
const (
	ColSessionID   = "session_id"
	ColAccountID   = "account_id"
	ColProjectID   = "project_id"
	ColProjectName = "project_name"
	ColExportedAt  = "exported_at"
	ColFlowToken   = "flow_token"

	ColNodeID        = "node_id"
	ColNodeOrderID   = "node_order_id"
	ColSequenceIndex = "sequence_index"
	ColParallelGroup = "parallel_group_id"
	ColHasCycle      = "has_cycle"

	ColPosX    = "pos_x"
	ColPosY    = "pos_y"
	ColShape   = "shape"
	ColFrameID = "frame_id"

	ColTitle    = "title"
	ColBody     = "body"
	ColCTALabel = "cta_label"
	ColCTAURL   = "cta_url"
	ColCTANote  = "cta_note"
	ColTone     = "tone"
	ColAudience = "audience"
	ColIntent   = "intent"
	ColStage    = "stage"

	ColEdgesJSON   = "edges_json"
	ColOptionsJSON = "admin_options_json"
)

// Columns is the ordered column enumeration shared by export and import.
var Columns = []string{
	ColSessionID,
	ColAccountID,
	ColProjectID,
	ColProjectName,
	ColExportedAt,
	ColFlowToken,
	ColNodeID,
	ColNodeOrderID,
	ColSequenceIndex,
	ColParallelGroup,
	ColHasCycle,
	ColPosX,
	ColPosY,
	ColShape,
	ColFrameID,
	ColTitle,
	ColBody,
	ColCTALabel,
	ColCTAURL,
	ColCTANote,
	ColTone,
	ColAudience,
	ColIntent,
	ColStage,
	ColEdgesJSON,
	ColOptionsJSON,
}

var knownColumn = func() map[string]bool {
	m := make(map[string]bool, len(Columns))
	for _, c := range Columns {
		m[c] = true
	}
	return m
}()
