package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"themepark/internal/api"
	"themepark/internal/app"
	"themepark/internal/config"
)

func newServeCmd(opts *options) *cobra.Command {
	cfg := opts.cfg

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the park HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "Listen address (env: THEMEPARK_PORT)")
	cmd.Flags().StringVar(&cfg.Storage.Type, "storage", cfg.Storage.Type, "Storage backend: memory, redis (env: THEMEPARK_STORAGE)")
	cmd.Flags().StringVar(&cfg.Storage.RedisURL, "redis-url", cfg.Storage.RedisURL, "Redis URL (env: THEMEPARK_REDIS_URL)")
	cmd.Flags().StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format: json, text (env: THEMEPARK_LOG_FORMAT)")

	return cmd
}

// Serve runs the HTTP API described by cfg until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config) error {
	logger, err := app.NewLogger(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close storage", slog.String("error", err.Error()))
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	server := api.NewServer(a.Engine(), cfg.Server, logger)
	return server.Run(ctx)
}
