package tabular

import (
	"strings"
)

// bom is the UTF-8 byte-order mark some spreadsheet tools prepend.
const bom = "\uFEFF"

// =============================================================================
// CSV Serialization
// =============================================================================

// SerializeCSV renders rows as a CSV document: the fixed header row followed
// by one record per row, RFC-4180-style quoting throughout. Cells containing
// a comma, quote, or newline are wrapped in quotes with embedded quotes
// doubled; everything else is written verbatim.
func SerializeCSV(rows []Row) string {
	var b strings.Builder

	for i, col := range Columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(col))
	}
	b.WriteByte('\n')

	for i := range rows {
		for j, col := range Columns {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSV(rows[i].Value(col)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func escapeCSV(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// =============================================================================
// CSV Parsing
// =============================================================================

// ParseCSV reads a CSV document into rows. The first record is the header:
// cells are trimmed, a leading byte-order mark is stripped from the first
// cell, and headers outside the fixed column set route their cells into the
// row's Extra bucket instead of failing. Quoted fields may contain embedded
// commas, newlines, and doubled quotes; records may end with \r\n, \r, or
// \n. Records whose known cells are all empty are dropped.
//
// ParseCSV is total: malformed input degrades to whatever cells the state
// machine can recover, never an error.
func ParseCSV(text string) []Row {
	records := splitCSV(text)
	if len(records) == 0 {
		return nil
	}

	headers := records[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], bom)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		var r Row
		for i, cell := range rec {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			r.Set(headers[i], cell)
		}
		if r.IsEmpty() {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

// splitCSV is the character-level state machine splitting text into records
// of cells. It carries a single inQuotes flag; all delimiters are ASCII, so
// byte-wise iteration is safe for UTF-8 content.
func splitCSV(text string) [][]string {
	var (
		records  [][]string
		record   []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		record = append(record, field.String())
		field.Reset()
	}
	endRecord := func() {
		endField()
		records = append(records, record)
		record = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRecord()
		case '\n':
			endRecord()
		default:
			field.WriteByte(c)
		}
	}

	// Final record when the document lacks a trailing newline.
	if field.Len() > 0 || len(record) > 0 {
		endRecord()
	}
	return records
}
