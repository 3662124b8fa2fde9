package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"time"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/internal/metrics"
	"github.com/ericlevine/pdf417go/internal/scan"
)

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeHandler accepts either a multipart form with an "image" file or a
// raw image body.
func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	data, name, err := s.readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "upload too large"})
			return
		}
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	img, _, err := scan.ReadImage(bytes.NewReader(data))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid image format"})
		return
	}

	record := s.decode(img, name, "image")
	status := http.StatusOK
	if !record.OK() {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, record)
}

func (s *Server) readUpload(r *http.Request) ([]byte, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, "", err
		}
		if len(data) == 0 {
			return nil, "", errors.New("empty request body")
		}
		return data, "", nil
	}

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return nil, "", fmt.Errorf("failed to parse form data: %w", err)
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", errors.New("no image file provided")
	}
	defer func() { _ = file.Close() }()
	data, err := io.ReadAll(file)
	return data, header.Filename, err
}

// decode runs one decode and records its metrics under source.
func (s *Server) decode(img image.Image, name, source string) scan.Record {
	start := time.Now()
	result, err := scan.Image(img, s.options)
	metrics.ObserveDecode(source, start, result, err)
	if err != nil && !errors.Is(err, pdf417go.ErrNotFound) {
		s.logger.Debug("decode failed", "source", source, "name", name, "error", err)
	}
	return scan.NewRecord(name, result, err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
