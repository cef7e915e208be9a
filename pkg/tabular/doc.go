// Package tabular converts flow graphs to and from the plain-text interchange
// formats used for external editing.
//
// A graph is projected into denormalized flat rows, one per node, each row
// carrying the shared project context and two JSON-blob columns (the full
// edge list and the admin vocabulary) repeated identically on every row.
// Rows serialize to CSV (RFC-4180-style quoting) or XML (flowcopyExport
// document), and parse back from either. The column set is fixed and closed:
// both directions use the same enumeration in the same order.
//
// Parsing is tolerant by design. Unknown columns are preserved in the row's
// Extra bucket instead of failing, malformed cells degrade to defaults, and
// only a genuinely malformed XML document is surfaced as an error.
package tabular
