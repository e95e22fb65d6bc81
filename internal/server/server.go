// Package server implements the pgraph HTTP API.
//
// The API exposes the structural algorithms and the solver over JSON:
//
//	POST /api/v1/msg    compute the maximal structure of a problem
//	POST /api/v1/ssg    enumerate solution structures
//	POST /api/v1/solve  run the branch-and-bound search
//	GET  /api/v1/runs   list archived runs
//	GET  /api/v1/runs/{id}
//	DELETE /api/v1/runs/{id}
//	GET  /healthz
//	GET  /version
//
// Problems travel inline in request bodies as documents in the native
// JSON encoding, so the API needs no file storage of its own. Solve
// results are archived when a run store is configured.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/pgraphlab/pgraph/pkg/archive"
	"github.com/pgraphlab/pgraph/pkg/buildinfo"
	"github.com/pgraphlab/pgraph/pkg/cache"
	"github.com/pgraphlab/pgraph/pkg/pipeline"
)

// Config holds the server dependencies and listen address.
type Config struct {
	// Addr is the listen address, for example ":8080".
	Addr string

	// Cache backs the pipeline's result caching. Nil disables caching.
	Cache cache.Cache

	// Store archives solve runs. Nil disables the /runs endpoints.
	Store archive.Store

	// Logger receives request and lifecycle logs. Nil means log.Default.
	Logger *log.Logger

	// ShutdownTimeout bounds graceful shutdown. Zero means 10s.
	ShutdownTimeout time.Duration
}

// Server is the pgraph HTTP API server.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	router  chi.Router
	started time.Time
}

// New builds a server from the config. The handler is ready immediately;
// Start is only needed to listen on a socket.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:     cfg,
		runner:  pipeline.NewRunner(cfg.Cache, nil, cfg.Logger),
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/msg", s.handleMSG)
		r.Post("/ssg", s.handleSSG)
		r.Post("/solve", s.handleSolve)
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handleListRuns)
			r.Get("/{id}", s.handleGetRun)
			r.Delete("/{id}", s.handleDeleteRun)
		})
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, versionResponse{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Date:    buildinfo.Date,
	})
}
