package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// extractCLIFlags copies explicitly set flags into flags, keyed by flag name.
func extractCLIFlags(cmd *cobra.Command, flags map[string]any) {
	getString := func(name string) (any, error) { return cmd.Flags().GetString(name) }
	getInt := func(name string) (any, error) { return cmd.Flags().GetInt(name) }
	getBool := func(name string) (any, error) { return cmd.Flags().GetBool(name) }

	flagDefs := []struct {
		name   string
		getter func(string) (any, error)
	}{
		{"host", getString},
		{"port", getInt},
		{"db-driver", getString},
		{"db-conn", getString},
		{"db-path", getString},
		{"auto-migrate", getBool},
		{"cache-driver", getString},
		{"log-level", getString},
	}
	for _, def := range flagDefs {
		if cmd.Flags().Lookup(def.name) == nil || !cmd.Flags().Changed(def.name) {
			continue
		}
		if value, err := def.getter(def.name); err == nil {
			flags[def.name] = value
		}
	}
}

// loadEnvFile loads environment variables from the --env-file path.
// The file must live inside the working directory; a missing file is not an error.
func loadEnvFile(cmd *cobra.Command) (string, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return "", fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		return "", nil
	}
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(pwd, envFile)
	}
	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve env file path: %w", err)
	}
	if !isPathWithinDirectory(absPath, pwd) {
		return "", fmt.Errorf("env file path '%s' is outside the working directory", envFile)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return absPath, nil
		}
		return "", fmt.Errorf("failed to stat env file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("env file path '%s' is not a regular file", envFile)
	}
	if err := godotenv.Load(absPath); err != nil {
		return "", fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return absPath, nil
}

func isPathWithinDirectory(path, dir string) bool {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return false
	}
	if absPath == absDir {
		return true
	}
	return strings.HasPrefix(absPath, absDir+string(filepath.Separator))
}
