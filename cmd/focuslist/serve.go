package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandeepkv93/focuslist/internal/config"
	"github.com/sandeepkv93/focuslist/internal/proxy"
	"github.com/spf13/cobra"
)

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the completion proxy for browser and TUI clients",
		Long: `serve exposes POST /api/gpt and GET /health. The provider API key stays on
the server; clients send {"message": "..."} and receive {"reply": "..."}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			upstream, err := newUpstream(cfg)
			if err != nil {
				return err
			}

			logger := log.New(os.Stdout, "", 0)
			server := proxy.NewServer(proxy.ServerConfig{
				Addr:            cfg.ListenAddr,
				AllowedOrigin:   cfg.AllowedOrigin,
				ShutdownTimeout: cfg.ShutdownTimeout,
			}, proxy.NewHandler(upstream, logger), logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides listen_addr")
	return cmd
}
