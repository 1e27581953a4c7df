package logger

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// FlagOptions are the logger settings a command line can override.
type FlagOptions struct {
	Level  string
	JSON   bool
	Source bool
}

// Setup builds the process logger from o. Unknown levels fall back to info.
func (o FlagOptions) Setup() Logger {
	return SetupLogger(o.Level, o.JSON, o.Source)
}

func SetupLogger(logLevel string, logJSON, logSource bool) Logger {
	level := LogLevel(strings.ToLower(strings.TrimSpace(logLevel)))
	switch level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel:
	default:
		level = InfoLevel
	}
	return Init(&Config{
		Level:      level,
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	})
}

// OptionsFromFlags reads --log-level, --log-json and --log-source from cmd.
// Flags the user did not set take the supplied defaults instead of the flag
// defaults, so the config file and the terminal decide them.
func OptionsFromFlags(cmd *cobra.Command, level string, json bool) (FlagOptions, error) {
	opts := FlagOptions{Level: level, JSON: json}
	flags := cmd.Flags()
	var err error
	if flags.Changed("log-level") {
		if opts.Level, err = flags.GetString("log-level"); err != nil {
			return opts, fmt.Errorf("failed to get log-level flag: %w", err)
		}
	}
	if flags.Changed("log-json") {
		if opts.JSON, err = flags.GetBool("log-json"); err != nil {
			return opts, fmt.Errorf("failed to get log-json flag: %w", err)
		}
	}
	if opts.Source, err = flags.GetBool("log-source"); err != nil {
		return opts, fmt.Errorf("failed to get log-source flag: %w", err)
	}
	return opts, nil
}
