// Package repo selects the post store backend from configuration.
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/core"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/postgres"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/sqlite"
	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/sethvargo/go-retry"
)

const (
	defaultConnectRetryDelay = 500 * time.Millisecond
	closeTimeout             = 10 * time.Second
)

// Provider exposes the post repository backed by the configured driver.
// Callers only see post.Repository, never driver types.
type Provider struct {
	driver string
	pg     *postgres.Store
	lite   *sqlite.Store
}

// NewProvider connects to the configured database, retrying with
// exponential backoff, and applies migrations when AutoMigrate is set.
// The returned cleanup closes the connection pool.
func NewProvider(ctx context.Context, cfg *config.DatabaseConfig) (*Provider, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("database config is required")
	}
	var p *Provider
	var err error
	switch cfg.Driver {
	case config.DriverPostgres:
		p, err = newPostgresProvider(ctx, cfg)
	case config.DriverSQLite:
		p, err = newSQLiteProvider(ctx, cfg)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if err := p.Close(closeCtx); err != nil {
			logger.FromContext(ctx).Error("Failed to close store", "driver", p.driver, "error", err)
		}
	}
	return p, cleanup, nil
}

func newPostgresProvider(ctx context.Context, cfg *config.DatabaseConfig) (*Provider, error) {
	pgCfg := PostgresConfig(cfg)
	store, err := connectWithRetry(ctx, cfg, func(ctx context.Context) (*postgres.Store, error) {
		return postgres.NewStore(ctx, pgCfg)
	})
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.ApplyMigrations(ctx, pgCfg.DSN()); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("failed to apply postgres migrations: %w", err)
		}
	}
	return &Provider{driver: config.DriverPostgres, pg: store}, nil
}

func newSQLiteProvider(ctx context.Context, cfg *config.DatabaseConfig) (*Provider, error) {
	liteCfg := SQLiteConfig(cfg)
	store, err := connectWithRetry(ctx, cfg, func(ctx context.Context) (*sqlite.Store, error) {
		return sqlite.NewStore(ctx, liteCfg)
	})
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := sqlite.RunMigrationsForDB(ctx, store.DB(), core.MigrateUp); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("failed to apply sqlite migrations: %w", err)
		}
	}
	return &Provider{driver: config.DriverSQLite, lite: store}, nil
}

// connectWithRetry retries every connection error; cfg.ConnectRetries of zero
// means a single attempt.
func connectWithRetry[T any](
	ctx context.Context,
	cfg *config.DatabaseConfig,
	connect func(context.Context) (T, error),
) (T, error) {
	log := logger.FromContext(ctx)
	delay := cfg.ConnectRetryDelay
	if delay <= 0 {
		delay = defaultConnectRetryDelay
	}
	backoff := retry.WithMaxRetries(cfg.ConnectRetries, retry.NewExponential(delay))
	var out T
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		v, err := connect(ctx)
		if err != nil {
			log.Warn("Database connection attempt failed", "driver", cfg.Driver, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to connect to %s after %d attempts: %w", cfg.Driver, attempt, err)
	}
	return out, nil
}

// PostgresConfig maps application settings onto the postgres driver config.
func PostgresConfig(cfg *config.DatabaseConfig) *postgres.Config {
	return &postgres.Config{
		ConnString:      cfg.ConnString,
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password.Value(),
		DBName:          cfg.DBName,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MinConns:        cfg.MinConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		PingTimeout:     cfg.PingTimeout,
	}
}

// SQLiteConfig maps application settings onto the sqlite driver config.
func SQLiteConfig(cfg *config.DatabaseConfig) *sqlite.Config {
	return &sqlite.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}
}

func (p *Provider) Driver() string { return p.driver }

// NewPostRepo returns a post repository for the active driver.
func (p *Provider) NewPostRepo() post.Repository {
	if p.pg != nil {
		return postgres.NewPostRepo(p.pg.Pool())
	}
	return sqlite.NewPostRepo(p.lite.DB())
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	if p.pg != nil {
		return p.pg.HealthCheck(ctx)
	}
	return p.lite.HealthCheck(ctx)
}

func (p *Provider) Close(ctx context.Context) error {
	if p.pg != nil {
		return p.pg.Close(ctx)
	}
	return p.lite.Close(ctx)
}
