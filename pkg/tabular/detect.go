package tabular

import (
	"path/filepath"
	"strings"
	"time"
)

// Format identifies an interchange format.
type Format string

// Recognized formats.
const (
	FormatCSV     Format = "csv"
	FormatXML     Format = "xml"
	FormatUnknown Format = ""
)

// DetectFormat decides how to parse a file. The extension wins when it names
// a known format; otherwise the content is sniffed: a document starting with
// '<' (after whitespace and an optional byte-order mark) is XML, anything
// containing a comma is CSV. Neither is FormatUnknown — the caller reports
// that instead of guessing.
func DetectFormat(filename, content string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV
	case ".xml":
		return FormatXML
	}

	trimmed := strings.TrimSpace(strings.TrimPrefix(content, bom))
	if strings.HasPrefix(trimmed, "<") {
		return FormatXML
	}
	if strings.Contains(content, ",") {
		return FormatCSV
	}
	return FormatUnknown
}

// ExportFilename builds the conventional export filename,
// "<projectID>-<timestamp>.<ext>", where the timestamp is ISO 8601 with ':'
// and '.' replaced by '-' so the name is safe on every filesystem.
func ExportFilename(projectID string, t time.Time, f Format) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	ext := string(f)
	if ext == "" {
		ext = string(FormatCSV)
	}
	return projectID + "-" + stamp + "." + ext
}
