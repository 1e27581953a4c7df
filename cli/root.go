package cli

import (
	"github.com/MicroServices-SocialApp/Post-API/cli/cmd/migrate"
	"github.com/MicroServices-SocialApp/Post-API/cli/cmd/start"
	"github.com/MicroServices-SocialApp/Post-API/cli/cmd/version"
	"github.com/spf13/cobra"
)

const (
	defaultConfigFile = "post-api.yaml"
	defaultEnvFile    = ".env"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "post-api",
		Short:         "Post API service",
		Long:          "Serve, migrate and inspect the post service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
	}
	addGlobalFlags(root)
	root.AddCommand(
		start.NewStartCommand(),
		migrate.NewMigrateCommand(),
		version.NewVersionCommand(),
	)
	return root
}

func addGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("config", defaultConfigFile, "Path to the YAML config file")
	flags.String("env-file", defaultEnvFile, "Path to a .env file loaded before configuration")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Emit logs as JSON (default when stdout is not a terminal)")
	flags.Bool("log-source", false, "Include source locations in logs")

	flags.String("host", "", "Host to bind the HTTP server to")
	flags.Int("port", 0, "Port to bind the HTTP server to")
	flags.String("db-driver", "", "Database driver (postgres, sqlite)")
	flags.String("db-conn", "", "Postgres connection string")
	flags.String("db-path", "", "SQLite database path")
	flags.Bool("auto-migrate", false, "Apply pending migrations on startup")
	flags.String("cache-driver", "", "Post cache driver (none, memory, redis)")
}
