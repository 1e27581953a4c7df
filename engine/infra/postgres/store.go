package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns           = 20
	defaultMinConns           = 0
	defaultHealthCheckPeriod  = 30 * time.Second
	defaultConnectTimeout     = 5 * time.Second
	defaultPingTimeout        = 3 * time.Second
	defaultHealthCheckTimeout = 1 * time.Second
)

// Store owns the pgx pool shared by the post repository and the readiness probe.
type Store struct {
	pool         *pgxpool.Pool
	metrics      *poolMetrics
	probeTimeout time.Duration
}

// NewStore opens the pool described by cfg and refuses to return until the
// server answers a ping.
func NewStore(ctx context.Context, cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("postgres: config is required")
	}
	poolCfg, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}
	if err := verifyPoolConnection(ctx, pool, durationOr(cfg.PingTimeout, defaultPingTimeout)); err != nil {
		return nil, err
	}
	s := &Store{
		pool:         pool,
		metrics:      newPoolMetrics(cfg),
		probeTimeout: durationOr(cfg.HealthCheckTimeout, defaultHealthCheckTimeout),
	}
	s.metrics.track(pool)
	logger.FromContext(ctx).Info(
		"Postgres store ready",
		"host", cfg.Host,
		"db_name", cfg.DBName,
		"ssl_mode", cfg.SSLMode,
		"max_conns", poolCfg.MaxConns,
		"min_conns", poolCfg.MinConns,
	)
	return s, nil
}

// Close stops metric collection and closes the pool.
func (s *Store) Close(ctx context.Context) error {
	s.metrics.untrack()
	s.pool.Close()
	logger.FromContext(ctx).Info("Postgres store closed")
	return nil
}

// Pool exposes the pool to the repository in this package.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// HealthCheck pings the server within the configured probe timeout.
func (s *Store) HealthCheck(ctx context.Context) error {
	hctx, cancel := context.WithTimeout(ctx, durationOr(s.probeTimeout, defaultHealthCheckTimeout))
	defer cancel()
	if err := s.pool.Ping(hctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func buildPoolConfig(cfg *Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	poolCfg.ConnConfig.Tracer = queryTracer{}
	poolCfg.ConnConfig.ConnectTimeout = durationOr(cfg.ConnectTimeout, defaultConnectTimeout)
	poolCfg.MaxConns, poolCfg.MinConns = deriveConnectionBounds(cfg)
	poolCfg.HealthCheckPeriod = durationOr(cfg.HealthCheckPeriod, defaultHealthCheckPeriod)
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}
	return poolCfg, nil
}

// deriveConnectionBounds returns pool max and min sizes. min never exceeds max.
func deriveConnectionBounds(cfg *Config) (int32, int32) {
	maxConns := int32(defaultMaxConns)
	if cfg.MaxOpenConns > 0 {
		maxConns = int32(min(cfg.MaxOpenConns, math.MaxInt32))
	}
	minConns := int32(defaultMinConns)
	if cfg.MinConns > 0 {
		minConns = int32(min(cfg.MinConns, int(maxConns)))
	}
	return maxConns, minConns
}

func verifyPoolConnection(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
