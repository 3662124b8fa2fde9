// Package server exposes PDF417 decoding over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ericlevine/pdf417go/internal/config"
	"github.com/ericlevine/pdf417go/internal/metrics"
	"github.com/ericlevine/pdf417go/internal/scan"
)

// Server handles /decode, /ws, /healthz and /metrics.
type Server struct {
	cfg          config.ServerConfig
	options      scan.Options
	maxUpload    int64
	pingInterval time.Duration
	logger       *slog.Logger
}

// New creates a server from the loaded configuration.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:          cfg.Server,
		options:      scan.Options{Decode: cfg.DecodeOptions(), MinUpscaleSide: cfg.Decode.MinUpscaleSide},
		maxUpload:    int64(cfg.Server.MaxUploadMB) << 20,
		pingInterval: time.Duration(cfg.Server.PingIntervalSec) * time.Second,
		logger:       logger,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /decode", s.instrument("/decode", s.decodeHandler))
	mux.HandleFunc("GET /healthz", s.instrument("/healthz", s.healthHandler))
	mux.HandleFunc("GET /ws", s.websocketHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      time.Duration(s.cfg.TimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// responseWriter captures the status code for metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, endpoint, http.StatusText(rw.statusCode)).Inc()
	}
}
