// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/smallcap-screener/internal/history"
	"github.com/pdiddy/smallcap-screener/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the screener over HTTP",
	Long: `Serve exposes the screener as a JSON API:

  GET  /health              liveness check
  POST /api/screen          screen an uploaded CSV (multipart "file" or raw body)
  GET  /api/history/:code   recent closing prices for one code

The screen flags set the defaults; each request may override them with
the strategy, budget, small_cap, exclude_net_debt and limit query parameters.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(screenFlagKeys)(cmd, args); err != nil {
			return err
		}
		return viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))
	},
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := screenConfig()
	if err != nil {
		return err
	}

	var hist server.HistoryFetcher
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		hist = history.NewClient(historyConfig(), logger)
	}

	srv := server.New(cfg, loaderConfig(), hist, logger)
	addr := serveConfig().Addr

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	addScreenFlags(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Bool("no-history", false, "disable the price history endpoint")

	rootCmd.AddCommand(serveCmd)
}
