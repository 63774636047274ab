// Package api exposes the prediction service over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/agriyield/internal/config"
	"github.com/yourusername/agriyield/internal/metrics"
	"github.com/yourusername/agriyield/internal/repository"
)

// Server is the HTTP API server.
type Server struct {
	serviceName string
	cfg         *config.Config
	predictor   Predictor
	history     repository.PredictionRepository
	validate    *validator.Validate
	logger      *logrus.Logger
	httpServer  *http.Server
}

// NewServer creates the API server. history may be nil when persistence is
// disabled; the history endpoint then reports 404.
func NewServer(cfg *config.Config, predictor Predictor, history repository.PredictionRepository, logger *logrus.Logger) *Server {
	s := &Server{
		serviceName: cfg.App.Name,
		cfg:         cfg,
		predictor:   predictor,
		history:     history,
		validate:    validator.New(),
		logger:      logger,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress(),
		Handler:      s.routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	return s
}

// routes wires middlewares and endpoints.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second))

	r.Get("/healthz", s.handleHealth)

	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/predict", s.handlePredict)
		api.Get("/model", s.handleModelInfo)
		api.Get("/predictions", s.handleListPredictions)
	})

	return r
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.WithField("address", s.httpServer.Addr).Info("Starting API server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
