package migrate

import (
	"context"
	"fmt"

	"github.com/MicroServices-SocialApp/Post-API/engine/core"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/postgres"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/repo"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/sqlite"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the schema migration command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database schema migrations",
		Long:      "Apply, roll back or inspect the post schema on the configured database.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(core.MigrateUp), string(core.MigrateDown), string(core.MigrateStatus)},
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := core.ParseMigrationCommand(args[0])
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), command)
		},
	}
}

func runMigrate(ctx context.Context, command core.MigrationCommand) error {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return fmt.Errorf("configuration missing from context; attach a manager with config.ContextWithManager")
	}
	log := logger.FromContext(ctx).With("driver", cfg.Database.Driver, "command", command)
	var err error
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		err = postgres.Migrate(ctx, repo.PostgresConfig(&cfg.Database).DSN(), command)
	case config.DriverSQLite:
		err = sqlite.Migrate(ctx, repo.SQLiteConfig(&cfg.Database).Path, command)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	log.Info("Migration finished")
	return nil
}
