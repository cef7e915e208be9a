package tabular

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XML document constants.
const (
	xmlHeader     = `<?xml version="1.0" encoding="UTF-8"?>`
	xmlRoot       = "flowcopyExport"
	xmlRowTag     = "row"
	formatVersion = "1"
)

// =============================================================================
// XML Serialization
// =============================================================================

// SerializeXML renders rows as an XML document: a flowcopyExport root with
// formatVersion="1" wrapping one <row> element per record, each cell a
// same-named child element with its text entity-escaped.
func SerializeXML(rows []Row) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "<%s formatVersion=%q>\n", xmlRoot, formatVersion)

	for i := range rows {
		b.WriteString("  <" + xmlRowTag + ">\n")
		for _, col := range Columns {
			b.WriteString("    <" + col + ">")
			xml.EscapeText(&b, []byte(rows[i].Value(col)))
			b.WriteString("</" + col + ">\n")
		}
		b.WriteString("  </" + xmlRowTag + ">\n")
	}

	b.WriteString("</" + xmlRoot + ">\n")
	return b.String()
}

// =============================================================================
// XML Parsing
// =============================================================================

// ParseXML reads an XML document into rows. The parser is tolerant about
// structure: it collects every <row> element anywhere in the document and
// reads the text of each row's direct children by tag name, so wrappers,
// comments, and interleaved elements are fine. Unknown child tags land in
// the row's Extra bucket.
//
// A document the decoder cannot parse is a genuine failure and is returned
// as an error, never silently treated as zero rows.
func ParseXML(text string) ([]Row, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	var rows []Row
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != xmlRowTag {
			continue
		}

		row, err := parseRowElement(dec, start)
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRowElement consumes tokens until the matching </row>, collecting the
// character data of each direct child element.
func parseRowElement(dec *xml.Decoder, start xml.StartElement) (Row, error) {
	var row Row
	for {
		tok, err := dec.Token()
		if err != nil {
			return Row{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var text strings.Builder
			depth := 1
			for depth > 0 {
				inner, err := dec.Token()
				if err != nil {
					return Row{}, err
				}
				switch it := inner.(type) {
				case xml.StartElement:
					depth++
				case xml.EndElement:
					depth--
				case xml.CharData:
					if depth == 1 {
						text.Write(it)
					}
				}
			}
			row.Set(t.Name.Local, text.String())
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return row, nil
			}
		}
	}
}
