package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	// Register modernc SQLite driver with database/sql.
	_ "modernc.org/sqlite"
)

const (
	driverName         = "sqlite"
	memoryPath         = ":memory:"
	defaultBusyTimeout = 5 * time.Second
	defaultMaxOpen     = 4
	pingTimeout        = 3 * time.Second
)

// Store owns the database/sql handle for a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the database at cfg.Path and verifies the connection.
func NewStore(ctx context.Context, cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sqlite: config is required")
	}
	dsn, inMemory, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	configurePool(db, cfg, inMemory)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping database: %w", err)
	}
	logger.FromContext(ctx).Info(
		"SQLite store initialized",
		"path", cfg.Path,
		"in_memory", inMemory,
	)
	return &Store{db: db, path: cfg.Path}, nil
}

// DB exposes the underlying handle for repositories and migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite: store not initialized")
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("sqlite: close: %w", err)
	}
	logger.FromContext(ctx).Debug("SQLite store closed", "path", s.path)
	return nil
}

func configurePool(db *sql.DB, cfg *Config, inMemory bool) {
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpen
	}
	if inMemory {
		// a shared-cache memory database disappears with its last connection
		maxOpen = 1
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
		db.SetMaxOpenConns(maxOpen)
		return
	}
	db.SetMaxOpenConns(maxOpen)
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// buildDSN renders a modernc DSN with the pragmas every connection needs.
// The boolean reports whether the database lives in memory.
func buildDSN(cfg *Config) (string, bool, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return "", false, fmt.Errorf("sqlite: path is required")
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	params.Add("_pragma", "foreign_keys(ON)")
	if path == memoryPath {
		params.Set("cache", "shared")
		return "file::memory:?" + params.Encode(), true, nil
	}
	params.Add("_pragma", "journal_mode(WAL)")
	path = strings.TrimPrefix(path, "file:")
	return "file:" + path + "?" + params.Encode(), false, nil
}
