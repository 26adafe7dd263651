// Package server exposes the converter, renderer, and model store over
// HTTP for editor clients.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/threatforge/threatforge/pkg/cache"
	"github.com/threatforge/threatforge/pkg/store"
)

// conversionTTL bounds how long cached conversion results are kept.
const conversionTTL = 24 * time.Hour

// maxBodySize caps request bodies. Diagram files are small; anything
// larger is not a diagram.
const maxBodySize = 16 << 20

// Server handles HTTP requests for conversions and stored models.
type Server struct {
	logger *log.Logger
	cache  cache.Cache
	store  store.Store
}

// New creates a server backed by the given cache and store. Both must be
// non-nil; use [cache.NewNullCache] and [store.NewMemoryStore] to run
// without external services.
func New(logger *log.Logger, c cache.Cache, s store.Store) *Server {
	return &Server{logger: logger, cache: c, store: s}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/export", s.handleExport)
		r.Post("/render", s.handleRender)

		r.Route("/models", func(r chi.Router) {
			r.Get("/", s.handleListModels)
			r.Put("/{id}", s.handleSaveModel)
			r.Get("/{id}", s.handleGetModel)
			r.Delete("/{id}", s.handleDeleteModel)
		})
	})

	return r
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
