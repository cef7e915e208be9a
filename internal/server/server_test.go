package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/pipeline"
	"github.com/flowcopy/flowcopy/pkg/store"
)

func testServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	return New(st, pipeline.NewRunner(), nil), st
}

func seedProject(t *testing.T, st store.Store) flow.Project {
	t.Helper()
	p := flow.Project{
		ID:   "PRJ-X",
		Name: "Welcome flow",
		Nodes: []flow.Node{
			{ID: "welcome", X: 0, Y: 0, Title: "Welcome"},
			{ID: "cta", X: 100, Y: 0, Title: "Try it"},
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "welcome", Target: "cta", Kind: flow.EdgeSequential},
		},
	}
	if err := st.Put(t.Context(), p); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return p
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestProjectCRUD(t *testing.T) {
	s, _ := testServer(t)
	router := s.Router()

	put := httptest.NewRequest(http.MethodPut, "/api/projects/PRJ-X/",
		strings.NewReader(`{"name":"Welcome flow","nodes":[{"id":"a"}],"edges":[]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, put)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d, body %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/PRJ-X/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var p flow.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "PRJ-X" || len(p.Nodes) != 1 {
		t.Errorf("project = %+v", p)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/projects/PRJ-X/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/PRJ-X/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d", rec.Code)
	}
}

func TestPutProjectRejectsBadID(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/projects/-bad/", strings.NewReader(`{}`))
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSequenceEndpoint(t *testing.T) {
	s, _ := testServer(t)
	body := `{
		"nodes": [{"id":"b","x":100,"y":0},{"id":"a","x":0,"y":0}],
		"edges": [{"id":"e1","source":"a","target":"b","kind":"sequential"}]
	}`
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sequence", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var info pipeline.SequenceInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(info.OrderedIDs) != 2 || info.OrderedIDs[0] != "a" {
		t.Errorf("OrderedIDs = %v", info.OrderedIDs)
	}
	if !strings.HasPrefix(info.Token, "FLOW-") {
		t.Errorf("Token = %q", info.Token)
	}
}

func TestExportAndImportRoundTrip(t *testing.T) {
	s, st := testServer(t)
	seedProject(t, st)
	router := s.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/PRJ-X/export?format=csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if tok := rec.Header().Get("X-Flow-Token"); !strings.HasPrefix(tok, "FLOW-") {
		t.Errorf("X-Flow-Token = %q", tok)
	}
	doc := rec.Body.String()

	imp := httptest.NewRequest(http.MethodPost, "/api/projects/PRJ-X/import?filename=export.csv",
		strings.NewReader(doc))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, imp)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d, body %s", rec.Code, rec.Body)
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["nodes"].(float64) != 2 {
		t.Errorf("imported nodes = %v", out["nodes"])
	}
}

func TestImportTaxonomyStatus(t *testing.T) {
	s, st := testServer(t)
	seedProject(t, st)
	router := s.Router()

	tests := []struct {
		name     string
		filename string
		body     string
		wantCode string
	}{
		{"unrecognized", "notes.txt", "plain prose", "UNRECOGNIZED_FORMAT"},
		{"malformed xml", "f.xml", "<flowcopyExport><row>", "MALFORMED_DOCUMENT"},
		{"empty", "f.csv", "node_id,title\n", "EMPTY_IMPORT"},
		{"no matching rows", "f.csv", "project_id,node_id\nPRJ-OTHER,a\n", "NO_MATCHING_ROWS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost,
				"/api/projects/PRJ-X/import?filename="+tt.filename, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}
