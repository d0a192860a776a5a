// Package server provides the HTTP API for talentmatch.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/talentmatch/internal/cache"
	"github.com/hyperjump/talentmatch/internal/config"
	"github.com/hyperjump/talentmatch/internal/metrics"
	"github.com/hyperjump/talentmatch/internal/ranking"
	"github.com/hyperjump/talentmatch/internal/skills"
	"github.com/hyperjump/talentmatch/internal/storage"
	"github.com/hyperjump/talentmatch/internal/tables"
	"github.com/hyperjump/talentmatch/internal/validation"
)

// Server is the HTTP server for the talentmatch API.
type Server struct {
	storage   storage.Storage
	results   cache.ResultCache
	validator *validation.Validator
	metrics   *metrics.Metrics
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server

	ranker    atomic.Pointer[ranking.Ranker]
	suggester atomic.Pointer[skills.Suggester]
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation and the metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithValidator replaces the default request validator.
func WithValidator(v *validation.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// NewServer creates a server with the given dependencies. The ranker is
// built from cfg.Scoring and set; call SetTables to replace the tables.
func NewServer(cfg *config.Config, set *tables.Set, store storage.Storage, results cache.ResultCache, opts ...Option) *Server {
	c := config.Default()
	if cfg != nil {
		c = new(config.Config)
		*c = *cfg
		config.ApplyDefaults(c)
	}
	s := &Server{
		storage: store,
		results: results,
		config:  c,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = validation.MustNew()
	}
	s.SetTables(set)
	return s
}

// SetTables installs a ranker over set. Searches already running keep the
// ranker they started with.
func (s *Server) SetTables(set *tables.Set) {
	if set == nil {
		set = tables.Defaults()
	}
	s.ranker.Store(ranking.NewRanker(&s.config.Scoring, set.Synonyms, set.Locations))
	s.suggester.Store(nil)
}

// Ranker returns the current ranker.
func (s *Server) Ranker() *ranking.Ranker {
	return s.ranker.Load()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.Server.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/searches/{id}", s.handleGetSearch)
		r.Post("/searches/{id}/refine", s.handleRefine)
		r.Delete("/searches/{id}", s.handleDeleteSearch)

		r.Post("/candidates", s.handleUpsertCandidates)
		r.Get("/candidates", s.handleListCandidates)
		r.Get("/candidates/{id}", s.handleGetCandidate)
		r.Delete("/candidates/{id}", s.handleDeleteCandidate)
		r.Post("/candidates/{id}/explain", s.handleExplain)

		r.Get("/catalog", s.handleCatalog)
		r.Get("/skills/suggest", s.handleSuggest)
		r.Get("/status", s.handleStatus)
	})
	r.Get("/health", s.handleHealth)
	if s.metrics != nil && s.config.Metrics.Enabled {
		r.Method(http.MethodGet, s.config.Metrics.Path, s.metrics.Handler())
	}
	return r
}

// observe logs every request and records its latency by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.metrics.ObserveHTTP(r.Method, route, status, elapsed)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Server.Address()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
