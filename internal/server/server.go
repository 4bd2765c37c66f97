// Package server exposes the render pipeline and the chart document
// store over HTTP.
//
// Routes:
//
//	GET    /healthz                       liveness and build version
//	POST   /api/render                    render an inline chart document
//	GET    /api/charts                    list stored charts
//	POST   /api/charts                    store a chart document
//	GET    /api/charts/{chartID}          fetch one chart with its document
//	PUT    /api/charts/{chartID}          replace a chart document
//	DELETE /api/charts/{chartID}          delete a chart
//	GET    /api/charts/{chartID}/render   render a stored chart
//
// Stored charts keep their document in canonical JSON, so rendering by
// ID feeds the stored bytes straight into the pipeline. Cache entries
// for stored charts are namespaced per chart ID with a ScopedKeyer, and
// artifact responses carry an ETag derived from the rendered bytes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/legenda-dev/legenda/pkg/buildinfo"
	"github.com/legenda-dev/legenda/pkg/cache"
	"github.com/legenda-dev/legenda/pkg/observability"
	"github.com/legenda-dev/legenda/pkg/store"
	"github.com/legenda-dev/legenda/pkg/text"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// Config holds the server dependencies. Zero values get safe defaults:
// an in-memory store, no caching, the package default logger and
// font-based text measurement.
type Config struct {
	Addr     string
	Store    store.Store
	Cache    cache.Cache
	Logger   *log.Logger
	Measurer text.Measurer
}

// Server is the HTTP API server.
type Server struct {
	addr     string
	store    store.Store
	cache    cache.Cache
	logger   *log.Logger
	measurer text.Measurer
	router   *chi.Mux
}

// New creates a server with its routes mounted.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		addr:     cfg.Addr,
		store:    cfg.Store,
		cache:    cfg.Cache,
		logger:   cfg.Logger,
		measurer: cfg.Measurer,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start runs the server until ctx is canceled, then shuts down
// gracefully with a bounded drain period.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("server listening", "addr", s.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleListCharts)
			r.Post("/", s.handleCreateChart)
			r.Route("/{chartID}", func(r chi.Router) {
				r.Get("/", s.handleGetChart)
				r.Put("/", s.handleUpdateChart)
				r.Delete("/", s.handleDeleteChart)
				r.Get("/render", s.handleRenderChart)
			})
		})
	})
	return r
}

// logRequests logs one line per request with status and timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
