package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ericlevine/pdf417go/internal/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Decode every image under a directory in parallel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &batch.Runner{
				FS:              afero.NewOsFs(),
				Workers:         a.cfg.Batch.Workers,
				Extensions:      a.cfg.Batch.Extensions,
				ContinueOnError: a.cfg.Batch.ContinueOnError,
				Options:         a.scanOptions(),
				Logger:          a.logger,
			}
			records, err := runner.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printRecords(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().Int("workers", 0, "parallel decoders (default from config)")
	cmd.Flags().Bool("continue-on-error", true, "keep going after a file fails to decode")
	_ = a.loader.Viper().BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	_ = a.loader.Viper().BindPFlag("batch.continue_on_error", cmd.Flags().Lookup("continue-on-error"))
	return cmd
}
