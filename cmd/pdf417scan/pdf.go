package main

import (
	"github.com/spf13/cobra"

	"github.com/ericlevine/pdf417go/internal/pdfscan"
)

func newPDFCmd(a *app) *cobra.Command {
	var pages string
	cmd := &cobra.Command{
		Use:   "pdf <file.pdf>",
		Short: "Decode PDF417 symbols in the images embedded in a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &pdfscan.Scanner{Options: a.scanOptions(), Logger: a.logger}
			records, err := s.File(cmd.Context(), args[0], pages)
			if err != nil {
				return err
			}
			return a.printRecords(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringVar(&pages, "pages", "", `page selection such as "1-3,5" (default all pages)`)
	return cmd
}
