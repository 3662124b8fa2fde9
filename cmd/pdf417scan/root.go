package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericlevine/pdf417go/internal/config"
	"github.com/ericlevine/pdf417go/internal/scan"
)

// app carries state from the root command's pre-run into subcommands.
type app struct {
	loader  *config.Loader
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	asJSON  bool
}

func newRootCmd() *cobra.Command {
	a := &app{loader: config.NewLoader()}

	root := &cobra.Command{
		Use:   "pdf417scan",
		Short: "Decode PDF417 barcodes",
		Long: `Locate and decode PDF417 symbols in images (PNG, JPEG, GIF, BMP, TIFF,
WebP), directories of images and PDF documents, or serve decoding over HTTP.

Examples:
  pdf417scan decode label.png
  pdf417scan batch ./scans --workers 8 --json
  pdf417scan pdf invoice.pdf --pages 1-2
  pdf417scan serve --port 8417`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is search in ., $XDG_CONFIG_HOME/pdf417scan, /etc/pdf417scan)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("try-harder", false, "also try inverted and upscaled copies of the image")
	flags.Bool("pure", false, "the image holds only an unrotated symbol with a small white border")
	flags.String("charset", "", "character set for byte compaction when the symbol has no ECI")
	flags.BoolVar(&a.asJSON, "json", false, "print results as JSON")

	v := a.loader.Viper()
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("decode.try_harder", flags.Lookup("try-harder"))
	_ = v.BindPFlag("decode.pure_barcode", flags.Lookup("pure"))
	_ = v.BindPFlag("decode.character_set", flags.Lookup("charset"))

	root.AddCommand(
		newDecodeCmd(a),
		newBatchCmd(a),
		newPDFCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := a.loader.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	a.logger = slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) scanOptions() scan.Options {
	return scan.Options{Decode: a.cfg.DecodeOptions(), MinUpscaleSide: a.cfg.Decode.MinUpscaleSide}
}

// printRecords writes records as JSON lines or as "source: text" lines.
// It returns an error when no record decoded.
func (a *app) printRecords(w io.Writer, records []scan.Record) error {
	decoded := 0
	enc := json.NewEncoder(w)
	for _, r := range records {
		if r.OK() {
			decoded++
		}
		switch {
		case a.asJSON:
			if err := enc.Encode(r); err != nil {
				return err
			}
		case r.OK():
			fmt.Fprintf(w, "%s: %s\n", r.Source, r.Text)
		default:
			fmt.Fprintf(w, "%s: error: %s\n", r.Source, r.Error)
		}
	}
	if decoded == 0 {
		return fmt.Errorf("no PDF417 symbol decoded")
	}
	return nil
}
