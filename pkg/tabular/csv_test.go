package tabular

import (
	"strings"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	rows := ToFlatRows(testContext())
	rows[0].Body = "Line one\nLine two, with a comma and a \"quote\""
	rows[1].Title = "Trailing space "

	parsed := ParseCSV(SerializeCSV(rows))

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

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		check func(t *testing.T, rows []Row)
	}{
		{
			name:  "EmptyDocument",
			input: "",
			want:  0,
		},
		{
			name:  "HeaderOnly",
			input: "project_id,node_id,title\n",
			want:  0,
		},
		{
			name:  "SimpleRows",
			input: "project_id,node_id,title\nPRJ-X,a,Hello\nPRJ-X,b,World\n",
			want:  2,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Title != "Hello" || rows[1].NodeID != "b" {
					t.Errorf("rows = %+v", rows)
				}
			},
		},
		{
			name:  "QuotedCommaAndNewline",
			input: "project_id,title\nPRJ-X,\"a, b\nand c\"\n",
			want:  1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Title != "a, b\nand c" {
					t.Errorf("title = %q", rows[0].Title)
				}
			},
		},
		{
			name:  "EscapedQuotes",
			input: "project_id,title\nPRJ-X,\"say \"\"hi\"\"\"\n",
			want:  1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Title != `say "hi"` {
					t.Errorf("title = %q", rows[0].Title)
				}
			},
		},
		{
			name:  "CRLFAndBareCR",
			input: "project_id,title\r\nPRJ-X,one\rPRJ-X,two\r\n",
			want:  2,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Title != "one" || rows[1].Title != "two" {
					t.Errorf("rows = %+v", rows)
				}
			},
		},
		{
			name:  "BOMStrippedFromFirstHeader",
			input: "\uFEFFproject_id,title\nPRJ-X,Hello\n",
			want:  1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].ProjectID != "PRJ-X" {
					t.Errorf("project_id = %q (BOM not stripped?)", rows[0].ProjectID)
				}
			},
		},
		{
			name:  "HeadersTrimmed",
			input: " project_id , title \nPRJ-X,Hello\n",
			want:  1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].ProjectID != "PRJ-X" || rows[0].Title != "Hello" {
					t.Errorf("rows = %+v", rows)
				}
			},
		},
		{
			name:  "UnknownHeaderBucketed",
			input: "project_id,reviewer\nPRJ-X,sam\n",
			want:  1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].Extra["reviewer"] != "sam" {
					t.Errorf("Extra = %v", rows[0].Extra)
				}
			},
		},
		{
			name:  "TrailingEmptyRowsDropped",
			input: "project_id,title\nPRJ-X,Hello\n,\n,\n\n",
			want:  1,
		},
		{
			name:  "NoTrailingNewline",
			input: "project_id,title\nPRJ-X,Hello",
			want:  1,
		},
		{
			name:  "RaggedRowShorterThanHeader",
			input: "project_id,node_id,title\nPRJ-X,a\n",
			want:  1,
			check: func(t *testing.T, rows []Row) {
				if rows[0].NodeID != "a" || rows[0].Title != "" {
					t.Errorf("rows = %+v", rows)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ParseCSV(tt.input)
			if len(rows) != tt.want {
				t.Fatalf("parsed %d rows, want %d", len(rows), tt.want)
			}
			if tt.check != nil {
				tt.check(t, rows)
			}
		})
	}
}

func TestSerializeCSVHeader(t *testing.T) {
	out := SerializeCSV(nil)
	firstLine, _, _ := strings.Cut(out, "\n")
	if firstLine != strings.Join(Columns, ",") {
		t.Errorf("header = %q", firstLine)
	}
}
