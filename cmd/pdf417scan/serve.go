package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ericlevine/pdf417go/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve PDF417 decoding over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg, a.logger).ListenAndServe(ctx, a.cfg.Addr())
		},
	}
	cmd.Flags().String("host", "", "listen host (default from config)")
	cmd.Flags().Int("port", 0, "listen port (default from config)")
	_ = a.loader.Viper().BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = a.loader.Viper().BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}
