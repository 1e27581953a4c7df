package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/core"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/pressly/goose/v3"

	// Register pgx stdlib driver for database/sql usage in migrations.
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS
var gooseMu sync.Mutex

const migrationLockTimeout = 45 * time.Second

// ApplyMigrations runs the embedded migrations up to the latest version.
func ApplyMigrations(ctx context.Context, dsn string) error {
	return Migrate(ctx, dsn, core.MigrateUp)
}

// Migrate runs a goose command while holding a Postgres advisory lock so that
// replicas starting together do not race on the schema.
func Migrate(ctx context.Context, dsn string, command core.MigrationCommand) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire dedicated connection: %w", err)
	}
	defer conn.Close()
	log := logger.FromContext(ctx)
	lockCtx, cancel := context.WithTimeout(ctx, migrationLockTimeout)
	defer cancel()
	if _, err := conn.ExecContext(
		lockCtx,
		"select pg_advisory_lock(hashtext($1), hashtext($2))",
		"post-api",
		"migrations",
	); err != nil {
		return fmt.Errorf("acquire migration advisory lock: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(
			context.WithoutCancel(ctx),
			"select pg_advisory_unlock(hashtext($1), hashtext($2))",
			"post-api",
			"migrations",
		); err != nil {
			log.Warn("Failed to release migration advisory lock", "error", err)
		}
	}()
	return RunMigrationsForDB(ctx, db, command)
}

// RunMigrationsForDB applies a goose command on an existing *sql.DB.
func RunMigrationsForDB(ctx context.Context, db *sql.DB, command core.MigrationCommand) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	var err error
	switch command {
	case core.MigrateUp:
		err = goose.UpContext(ctx, db, "migrations")
	case core.MigrateDown:
		err = goose.DownContext(ctx, db, "migrations")
	case core.MigrateStatus:
		err = goose.StatusContext(ctx, db, "migrations")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
