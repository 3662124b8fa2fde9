// Package metrics registers the Prometheus collectors shared by the
// server and batch scans.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pdf417go "github.com/ericlevine/pdf417go"
)

var (
	// DecodesTotal counts decode attempts by source (image, pdf, batch, ws)
	// and outcome.
	DecodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdf417scan_decodes_total",
			Help: "Total number of PDF417 decode attempts",
		},
		[]string{"source", "outcome"},
	)

	// DecodeDuration observes decode latency by source.
	DecodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pdf417scan_decode_duration_seconds",
			Help:    "PDF417 decode duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"source"},
	)

	// CodewordsCorrected observes errors plus erasures repaired per symbol.
	CodewordsCorrected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdf417scan_codewords_corrected",
			Help:    "Codewords repaired by error correction per decoded symbol",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		},
	)

	// HTTPRequestsTotal counts server requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdf417scan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// WebsocketSessions is the number of open /ws sessions.
	WebsocketSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pdf417scan_websocket_active_sessions",
			Help: "Number of active WebSocket decode sessions",
		},
	)
)

// Outcome classifies a decode error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, pdf417go.ErrNotFound):
		return "not_found"
	case errors.Is(err, pdf417go.ErrChecksum):
		return "checksum"
	case errors.Is(err, pdf417go.ErrFormat):
		return "format"
	default:
		return "error"
	}
}

// ObserveDecode records one decode attempt that started at start.
func ObserveDecode(source string, start time.Time, result *pdf417go.Result, err error) {
	DecodesTotal.WithLabelValues(source, Outcome(err)).Inc()
	DecodeDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if result == nil {
		return
	}
	corrected := 0
	for _, key := range []pdf417go.ResultMetadataKey{pdf417go.MetadataErrorsCorrected, pdf417go.MetadataErasuresCorrected} {
		if n, ok := result.Metadata[key].(int); ok {
			corrected += n
		}
	}
	CodewordsCorrected.Observe(float64(corrected))
}
