// Package pdfscan decodes PDF417 symbols from the images embedded in a PDF.
package pdfscan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/afero"

	"github.com/ericlevine/pdf417go/internal/metrics"
	"github.com/ericlevine/pdf417go/internal/scan"
)

// Scanner extracts page images with pdfcpu and decodes each one.
type Scanner struct {
	Options scan.Options
	Logger  *slog.Logger
}

// File decodes every image embedded in the PDF at path. pages uses pdfcpu
// page selection syntax ("1-3,5"); empty means all pages. Records are named
// after the extracted image files.
func (s *Scanner) File(ctx context.Context, path, pages string) ([]scan.Record, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tempDir, err := os.MkdirTemp("", "pdf417scan-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	var selected []string
	if pages != "" {
		selected = strings.Split(pages, ",")
	}
	if err := api.ExtractImagesFile(path, tempDir, selected, nil); err != nil {
		return nil, fmt.Errorf("failed to extract images from %s: %w", path, err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, err
	}
	logger.Info("extracted PDF images", "pdf", path, "images", len(entries))

	fs := afero.NewBasePathFs(afero.NewOsFs(), tempDir)
	var records []scan.Record
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if e.IsDir() {
			continue
		}
		start := time.Now()
		result, err := scan.File(fs, e.Name(), s.Options)
		metrics.ObserveDecode("pdf", start, result, err)
		if err != nil {
			logger.Debug("no symbol in PDF image", "image", e.Name(), "error", err)
		}
		records = append(records, scan.NewRecord(filepath.Base(e.Name()), result, err))
	}
	return records, nil
}
