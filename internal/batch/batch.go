// Package batch decodes every image under a directory tree with a bounded
// number of workers.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ericlevine/pdf417go/internal/metrics"
	"github.com/ericlevine/pdf417go/internal/scan"
)

// Runner scans directories on an afero filesystem.
type Runner struct {
	FS              afero.Fs
	Workers         int
	Extensions      []string
	ContinueOnError bool
	Options         scan.Options
	Logger          *slog.Logger
}

// Find lists the image files under root in lexical order.
func (r *Runner) Find(root string) ([]string, error) {
	var paths []string
	err := afero.Walk(r.FS, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if slices.Contains(r.Extensions, strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

// Run decodes every image under root. Records come back in the order of
// Find. Without ContinueOnError the first failed file cancels the rest and
// its error is returned alongside the records gathered so far.
func (r *Runner) Run(ctx context.Context, root string) ([]scan.Record, error) {
	paths, err := r.Find(root)
	if err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("batch scan started", "root", root, "files", len(paths), "workers", r.Workers)

	records := make([]scan.Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			result, err := scan.File(r.FS, path, r.Options)
			metrics.ObserveDecode("batch", start, result, err)
			records[i] = scan.NewRecord(path, result, err)
			if err != nil {
				logger.Debug("decode failed", "path", path, "error", err)
				if !r.ContinueOnError {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		})
	}
	err = g.Wait()

	decoded := 0
	for _, rec := range records {
		if rec.OK() && rec.Source != "" {
			decoded++
		}
	}
	logger.Info("batch scan finished", "root", root, "decoded", decoded, "failed", len(paths)-decoded)
	return records, err
}
