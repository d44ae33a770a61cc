package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
	s.writeJSON(w, http.StatusOK, response)
}

// ocrHandler accepts a multipart image upload and returns the recognized text.
func (s *Server) ocrHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := s.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		s.writeError(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > limit {
		s.writeError(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, "Failed to read image data", http.StatusInternalServerError)
		return
	}
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		s.writeError(w, "Invalid image format", http.StatusBadRequest)
		return
	}

	if s.pipeline == nil {
		s.writeError(w, "OCR pipeline not initialized", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	start := time.Now()
	result := s.pipeline.Run(ctx, img)
	ocrProcessingDuration.Observe(time.Since(start).Seconds())
	ocrSpansRecognized.Observe(float64(len(result.Spans)))
	ocrRequestsTotal.WithLabelValues("success").Inc()

	s.writeJSON(w, http.StatusOK, OCRResponse{Success: true, Result: &result})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	ocrRequestsTotal.WithLabelValues("error").Inc()
	s.writeJSON(w, status, OCRResponse{Success: false, Error: message})
}
