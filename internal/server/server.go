// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"churn-inference/internal/common/config"
	"churn-inference/internal/common/logger"
	"churn-inference/internal/prediction"
)

// ReadinessCheck reports whether one dependency is ready to serve.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server is the HTTP transport around the prediction service.
type Server struct {
	httpServer *http.Server
	service    *prediction.Service
	logger     logger.Logger
	readiness  []ReadinessCheck
}

// NewServer wires the routes and returns an unstarted server.
func NewServer(cfg config.HTTPConfig, svc *prediction.Service, log logger.Logger, readiness ...ReadinessCheck) *Server {
	s := &Server{
		service:   svc,
		logger:    log,
		readiness: readiness,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/predict", s.handlePredict)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Routes exposes the handler for tests and embedding.
func (s *Server) Routes() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
