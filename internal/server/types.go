// Package server exposes the OCR pipeline over HTTP: an upload endpoint, a
// health probe and Prometheus metrics.
package server

import (
	"context"
	"image"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/inkline/internal/pipeline"
)

// Runner is what the server needs from a pipeline.
type Runner interface {
	Run(ctx context.Context, img image.Image) pipeline.Result
	Close() error
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	MaxUploadMB int64
	TimeoutSec  int
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	pipeline    Runner
	maxUploadMB int64
	timeoutSec  int
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// OCRResponse wraps a pipeline result for the wire.
type OCRResponse struct {
	Success bool             `json:"success"`
	Result  *pipeline.Result `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// New creates a server around an already built pipeline. The server takes
// ownership and closes the pipeline on Close.
func New(cfg Config, pl Runner) *Server {
	maxUpload := cfg.MaxUploadMB
	if maxUpload <= 0 {
		maxUpload = 50
	}
	return &Server{
		pipeline:    pl,
		maxUploadMB: maxUpload,
		timeoutSec:  cfg.TimeoutSec,
	}
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.pipeline != nil {
		return s.pipeline.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ocr", s.withMetrics(s.ocrHandler))
	mux.HandleFunc("/healthz", s.withMetrics(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
}
