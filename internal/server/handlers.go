package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flowcopy/flowcopy/pkg/buildinfo"
	flowerr "github.com/flowcopy/flowcopy/pkg/errors"
	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/pipeline"
	"github.com/flowcopy/flowcopy/pkg/render"
	"github.com/flowcopy/flowcopy/pkg/tabular"
)

// maxImportBytes bounds uploaded interchange documents.
const maxImportBytes = 16 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Projects
// =============================================================================

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"projects": ids})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	p, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	if err := flowerr.ValidateProjectID(id); err != nil {
		s.writeError(w, err)
		return
	}

	var p flow.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, flowerr.Wrap(flowerr.ErrCodeInvalidInput, err, "invalid project body"))
		return
	}
	p.ID = id

	if err := s.store.Put(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Sequence
// =============================================================================

// handleSequence derives the sequence bundle for an ad-hoc graph posted in
// the request body, without touching the store. The canvas frontend calls
// this on every meaningful edit.
func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Nodes []flow.Node `json:"nodes"`
		Edges []flow.Edge `json:"edges"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, flowerr.Wrap(flowerr.ErrCodeInvalidInput, err, "invalid graph body"))
		return
	}

	info, err := s.runner.Sequence(r.Context(), flow.Project{Nodes: body.Nodes, Edges: body.Edges})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleProjectSequence(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	info, err := s.runner.Sequence(r.Context(), p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// =============================================================================
// Export / Import
// =============================================================================

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Export(r.Context(), p, pipeline.ExportOptions{
		SessionID: r.Header.Get("X-Session-ID"),
		AccountID: r.Header.Get("X-Account-ID"),
		Format:    tabular.Format(r.URL.Query().Get("format")),
		Refresh:   r.URL.Query().Get("refresh") == "true",
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	contentType := "text/csv; charset=utf-8"
	if res.Format == tabular.FormatXML {
		contentType = "application/xml; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.Header().Set("X-Flow-Token", res.Token)
	if _, err := io.WriteString(w, res.Document); err != nil {
		s.logger.Error("write export", "error", err)
	}
}

// handleImport accepts a serialized document, reconciles it against the
// project, and saves the rebuilt graph. The response reports what was
// recovered so the frontend can refresh its canvas.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	content, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.writeError(w, flowerr.Wrap(flowerr.ErrCodeInvalidInput, err, "cannot read upload"))
		return
	}

	filename := r.URL.Query().Get("filename")
	res, err := s.runner.Import(r.Context(), filename, string(content), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	p := flow.Project{
		ID:      id,
		Nodes:   res.Reconciled.Nodes,
		Edges:   res.Reconciled.Edges,
		Options: res.Reconciled.Options,
	}
	if existing, err := s.store.Get(r.Context(), id); err == nil {
		p.Name = existing.Name
	}
	if err := s.store.Put(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"format": res.Format,
		"rows":   res.RowCount,
		"nodes":  len(res.Reconciled.Nodes),
		"edges":  len(res.Reconciled.Edges),
	})
}

// =============================================================================
// Preview
// =============================================================================

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	dot := render.ToDOT(p.Nodes, p.Edges, render.Options{
		Detailed: r.URL.Query().Get("detailed") == "true",
	})
	svg, err := render.SVG(dot)
	if err != nil {
		s.writeError(w, flowerr.Wrap(flowerr.ErrCodeInternal, err, "cannot render preview"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(svg); err != nil {
		s.logger.Error("write preview", "error", err)
	}
}
