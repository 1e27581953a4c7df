package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expectedLogger := NewLogger(TestConfig())
		ctx := ContextWithLogger(t.Context(), expectedLogger)

		actualLogger := FromContext(ctx)

		require.NotNil(t, actualLogger)
		assert.Equal(t, expectedLogger, actualLogger)
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		logger := FromContext(t.Context())

		require.NotNil(t, logger)
		assert.Equal(t, GetDefault(), logger)
	})

	t.Run("Should return default logger when wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), LoggerCtxKey, "not a logger")

		logger := FromContext(ctx)

		require.NotNil(t, logger)
	})

	t.Run("Should return default logger when nil logger in context", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), LoggerCtxKey, (Logger)(nil))

		logger := FromContext(ctx)

		require.NotNil(t, logger)
	})
}

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	t.Run("Should convert all log levels to charm log levels correctly", func(t *testing.T) {
		testCases := []struct {
			level    LogLevel
			expected int
		}{
			{DebugLevel, -4},
			{InfoLevel, 0},
			{WarnLevel, 4},
			{ErrorLevel, 8},
			{DisabledLevel, 1000},
			{LogLevel("unknown"), 0},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, int(tc.level.ToCharmlogLevel()), "level %s", tc.level)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write JSON lines with attached fields", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true, TimeFormat: "15:04:05"})

		l.With("request_id", "abc").Info("post created", "post_id", 3)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "post created", entry["msg"])
		assert.Equal(t, "abc", entry["request_id"])
		assert.EqualValues(t, 3, entry["post_id"])
	})

	t.Run("Should drop messages below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: WarnLevel, Output: &buf})

		l.Info("hidden")
		l.Warn("visible")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.True(t, strings.Contains(out, "visible"))
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("Should replace the default logger", func(t *testing.T) {
		prev := GetDefault()
		t.Cleanup(func() {
			defaultMu.Lock()
			defaultLogger = prev
			defaultMu.Unlock()
		})

		l := SetupLogger("DEBUG", true, false)

		assert.Same(t, l, GetDefault())
	})
}

func newLogFlagsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("log-level", "info", "")
	cmd.Flags().Bool("log-json", false, "")
	cmd.Flags().Bool("log-source", false, "")
	return cmd
}

func TestOptionsFromFlags(t *testing.T) {
	t.Run("Should use the supplied defaults for unset flags", func(t *testing.T) {
		cmd := newLogFlagsCommand()
		require.NoError(t, cmd.ParseFlags(nil))
		opts, err := OptionsFromFlags(cmd, "warn", true)
		require.NoError(t, err)
		assert.Equal(t, FlagOptions{Level: "warn", JSON: true}, opts)
	})

	t.Run("Should let explicit flags win", func(t *testing.T) {
		cmd := newLogFlagsCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--log-level=debug", "--log-json=false", "--log-source"}))
		opts, err := OptionsFromFlags(cmd, "warn", true)
		require.NoError(t, err)
		assert.Equal(t, FlagOptions{Level: "debug", JSON: false, Source: true}, opts)
	})
}
