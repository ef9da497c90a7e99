package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hh-server/di"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd runs the HTTP server with the periodic sheet refresher.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the deals directory over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	container, err := di.NewContainer(cfg, logger)
	if err != nil {
		return err
	}

	// a failed first load still serves, with an empty directory
	if err := container.DealsRefresherService.RefreshDeals(ctx); err != nil {
		logger.Warn("Initial deals load failed", zap.Error(err))
	}
	container.DealsRefresherService.StartPeriodicJob(cfg.RefreshInterval)
	defer container.DealsRefresherService.Stop()

	return container.HappyHourHttpServer.Start(ctx)
}
