// Package server provides the read-only HTTP API over the cleaned dataset
// snapshot and its derived analytics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/workforce-insight/internal/skills"
	"github.com/jonathan/workforce-insight/internal/snapshot"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *snapshot.Store
	extractor   *skills.Extractor
	datasetPath string
	topSectors  int
	shutdown    time.Duration
	logger      *zap.Logger
}

// Config holds server configuration
type Config struct {
	Addr            string
	DatasetPath     string
	TaxonomyPath    string
	TopSectors      int
	ShutdownTimeout time.Duration
	DisableCache    bool
	Logger          *zap.Logger
}

// New creates a new server instance. The dataset is loaded lazily on first
// request so a server can start before the file exists.
func New(cfg Config) (*Server, error) {
	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("dataset path is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	extractor := skills.NewExtractor()
	if cfg.TaxonomyPath != "" {
		var err error
		extractor, err = skills.LoadTaxonomy(cfg.TaxonomyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load skill taxonomy: %w", err)
		}
	}

	var opts []snapshot.Option
	if cfg.DisableCache {
		opts = append(opts, snapshot.WithoutCache())
	}

	topSectors := cfg.TopSectors
	if topSectors <= 0 {
		topSectors = 3
	}
	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 30 * time.Second
	}

	s := &Server{
		store:       snapshot.NewStore(logger, opts...),
		extractor:   extractor,
		datasetPath: cfg.DatasetPath,
		topSectors:  topSectors,
		shutdown:    shutdown,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /summary", s.handleSummary)
	mux.HandleFunc("GET /skills", s.handleSkills)
	mux.HandleFunc("GET /shortage", s.handleShortage)
	mux.HandleFunc("GET /growth", s.handleGrowth)
	mux.HandleFunc("GET /sectors", s.handleSectors)
	mux.HandleFunc("GET /trend", s.handleTrend)
	mux.HandleFunc("GET /export/csv", s.handleExportCSV)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
