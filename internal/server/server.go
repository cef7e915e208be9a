// Package server exposes the pipeline over HTTP for the authoring frontend.
//
// The API is JSON in, JSON out, except for exports (which return the
// serialized document with its interchange content type) and previews (SVG).
// All state lives in the project store; the handlers themselves are
// stateless, so the server can run replicated behind a shared store and
// cache.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowcopy/flowcopy/pkg/pipeline"
	"github.com/flowcopy/flowcopy/pkg/store"
)

// Server wires the project store and the pipeline runner into an HTTP API.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a Server. A nil logger falls back to the default logger.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, runner: runner, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sequence", s.handleSequence)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", s.handleGetProject)
				r.Put("/", s.handlePutProject)
				r.Delete("/", s.handleDeleteProject)
				r.Get("/sequence", s.handleProjectSequence)
				r.Get("/export", s.handleExport)
				r.Post("/import", s.handleImport)
				r.Get("/preview.svg", s.handlePreview)
			})
		})
	})

	return r
}

// logRequests logs one line per request after it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
