package repo

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	return &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "posts.db"),
		MaxOpenConns: 2,
		AutoMigrate:  true,
	}
}

func TestNewProvider(t *testing.T) {
	t.Run("Should open sqlite, migrate and serve posts", func(t *testing.T) {
		p, cleanup, err := NewProvider(t.Context(), sqliteConfig(t))
		require.NoError(t, err)
		t.Cleanup(cleanup)

		assert.Equal(t, config.DriverSQLite, p.Driver())
		require.NoError(t, p.HealthCheck(t.Context()))
		created, err := p.NewPostRepo().Create(t.Context(), "from provider", 3)
		require.NoError(t, err)
		got, err := p.NewPostRepo().Get(t.Context(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "from provider", got.Text)
	})

	t.Run("Should reject unknown drivers", func(t *testing.T) {
		_, _, err := NewProvider(t.Context(), &config.DatabaseConfig{Driver: "mysql"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("Should give up after the configured retries", func(t *testing.T) {
		cfg := &config.DatabaseConfig{
			Driver:            config.DriverSQLite,
			ConnectRetries:    2,
			ConnectRetryDelay: time.Millisecond,
		}
		_, _, err := NewProvider(t.Context(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 3 attempts")
	})
}

func TestPostgresConfig(t *testing.T) {
	t.Run("Should carry credentials into the DSN", func(t *testing.T) {
		cfg := &config.DatabaseConfig{
			Host:     "db",
			Port:     "5432",
			User:     "post",
			Password: config.SensitiveString("s3cret"),
			DBName:   "posts",
			SSLMode:  "disable",
		}
		assert.Equal(t, "postgres://post:s3cret@db:5432/posts?sslmode=disable", PostgresConfig(cfg).DSN())
	})
}
