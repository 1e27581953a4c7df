package start

import (
	"context"
	"fmt"
	"strings"

	"github.com/MicroServices-SocialApp/Post-API/cli/helpers"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/spf13/cobra"
)

const (
	productionEnvironment = "production"
	disableSSLMode        = "disable"
	localhost             = "localhost"
)

// NewStartCommand creates the command that serves the HTTP API.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "start",
		Aliases: []string{"serve"},
		Short:   "Start the post API server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStart(cmd.Context())
		},
	}
}

func runStart(ctx context.Context) error {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return fmt.Errorf("configuration missing from context; attach a manager with config.ContextWithManager")
	}
	log := logger.FromContext(ctx)
	log.Info("Starting post API", "environment", cfg.Runtime.Environment, "driver", cfg.Database.Driver)
	if cfg.Runtime.Environment == productionEnvironment {
		logProductionWarnings(ctx, cfg)
	}
	if err := helpers.EnsurePortAvailable(ctx, cfg.Server.Host, cfg.Server.Port); err != nil {
		return err
	}
	srv, err := server.NewServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run()
}

func logProductionWarnings(ctx context.Context, cfg *config.Config) {
	log := logger.FromContext(ctx)
	if cfg.Database.Driver == config.DriverPostgres && cfg.Database.SSLMode == disableSSLMode {
		log.Warn("Database SSL is disabled in production", "hint", "set database.ssl_mode=require")
	}
	for _, origin := range cfg.Server.CORS.AllowedOrigins {
		if strings.Contains(origin, localhost) {
			log.Warn("CORS allows localhost origins in production", "origin", origin)
			break
		}
	}
	if !cfg.RateLimit.Enabled {
		log.Warn("Rate limiting is disabled in production", "hint", "set ratelimit.enabled=true")
	}
}
