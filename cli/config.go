package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// SetupGlobalConfig loads the env file, resolves configuration from YAML,
// environment and flags, then attaches the config manager and logger to the
// command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	envFile, err := loadEnvFile(cmd)
	if err != nil {
		return err
	}
	configFile, err := resolveConfigFile(cmd)
	if err != nil {
		return err
	}
	flags := make(map[string]any)
	extractCLIFlags(cmd, flags)
	sources := make([]config.Source, 0, 2)
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	sources = append(sources, config.NewCLIProvider(flags))
	manager := config.NewManager(nil)
	cfg, err := manager.Load(ctx, sources...)
	if err != nil {
		return err
	}
	logOpts, err := logger.OptionsFromFlags(cmd, cfg.Runtime.LogLevel, !isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	log := logOpts.Setup()
	ctx = config.ContextWithManager(ctx, manager)
	ctx = logger.ContextWithLogger(ctx, log)
	cmd.SetContext(ctx)
	log.Debug("configuration loaded", "config_file", configFile, "env_file", envFile)
	return nil
}

func resolveConfigFile(cmd *cobra.Command) (string, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", fmt.Errorf("failed to get config flag: %w", err)
	}
	if configFile == "" || filepath.IsAbs(configFile) {
		return configFile, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return filepath.Join(wd, configFile), nil
}

// isTerminal reports whether f is attached to a terminal, including Cygwin
// and MSYS pseudo terminals.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
