package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkline_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkline_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ocrRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkline_ocr_requests_total",
			Help: "Total number of OCR requests",
		},
		[]string{"status"},
	)

	ocrProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inkline_ocr_processing_duration_seconds",
			Help:    "OCR processing duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 25, 50},
		},
	)

	ocrSpansRecognized = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inkline_ocr_spans_recognized",
			Help:    "Number of word spans recognized per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)
)
