package main

import (
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ericlevine/pdf417go/internal/metrics"
	"github.com/ericlevine/pdf417go/internal/scan"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <image-file> [image-file...]",
		Short: "Decode PDF417 symbols in image files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			opts := a.scanOptions()
			records := make([]scan.Record, 0, len(args))
			for _, path := range args {
				start := time.Now()
				result, err := scan.File(fs, path, opts)
				metrics.ObserveDecode("image", start, result, err)
				if err != nil {
					a.logger.Debug("decode failed", "path", path, "error", err)
				}
				records = append(records, scan.NewRecord(path, result, err))
			}
			return a.printRecords(cmd.OutOrStdout(), records)
		},
	}
}
