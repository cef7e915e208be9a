package tabular

import (
	"strings"
	"testing"
)

func TestXMLRoundTrip(t *testing.T) {
	rows := ToFlatRows(testContext())
	rows[0].Body = "Ampersand & <angle> \"quotes\" 'single'\nsecond line"

	parsed, err := ParseXML(SerializeXML(rows))
	if err != nil {
		t.Fatalf("ParseXML: %v", err)
	}

	if len(parsed) != len(rows) {
		t.Fatalf("parsed %d rows, want %d", len(parsed), len(rows))
	}
	for i := range rows {
		for _, col := range Columns {
			if got, want := parsed[i].Value(col), rows[i].Value(col); got != want {
				t.Errorf("row %d col %s = %q, want %q", i, col, got, want)
			}
		}
	}
}

func TestSerializeXMLShape(t *testing.T) {
	out := SerializeXML(ToFlatRows(testContext()))

	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(out, `<flowcopyExport formatVersion="1">`) {
		t.Error("missing root element with formatVersion")
	}
	if strings.Count(out, "<row>") != 2 {
		t.Errorf("row count = %d, want 2", strings.Count(out, "<row>"))
	}
}

func TestParseXML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
		check   func(t *testing.T, rows []Row)
	}{
		{
			name: "RowsAnywhereInDocument",
			input: `<?xml version="1.0"?>
				<export><meta><generator>excel</generator></meta>
				<data><row><project_id>PRJ-X</project_id><title>Hi</title></row></data>
				<row><project_id>PRJ-X</project_id><node_id>b</node_id></row>
				</export>`,
			want: 2,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Title != "Hi" || rows[1].NodeID != "b" {
					t.Errorf("rows = %+v", rows)
				}
			},
		},
		{
			name:  "EntitiesUnescaped",
			input: `<r><row><title>a &amp; b &lt;c&gt;</title><project_id>p</project_id></row></r>`,
			want:  1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Title != "a & b <c>" {
					t.Errorf("title = %q", rows[0].Title)
				}
			},
		},
		{
			name:  "UnknownChildBucketed",
			input: `<r><row><project_id>p</project_id><reviewer>sam</reviewer></row></r>`,
			want:  1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Extra["reviewer"] != "sam" {
					t.Errorf("Extra = %v", rows[0].Extra)
				}
			},
		},
		{
			name:  "NoRows",
			input: `<flowcopyExport formatVersion="1"></flowcopyExport>`,
			want:  0,
		},
		{
			name:    "MalformedDocumentIsError",
			input:   `<flowcopyExport><row><title>unclosed`,
			wantErr: true,
		},
		{
			name:    "NotXMLAtAll",
			input:   `<<<%%%`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseXML(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseXML: %v", err)
			}
			if len(rows) != tt.want {
				t.Fatalf("parsed %d rows, want %d", len(rows), tt.want)
			}
			if tt.check != nil {
				tt.check(t, rows)
			}
		})
	}
}
