package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/MicroServices-SocialApp/Post-API/engine/core"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var gooseInitMu sync.Mutex

// ApplyMigrations brings the database at dbPath to the latest schema.
func ApplyMigrations(ctx context.Context, dbPath string) error {
	return Migrate(ctx, dbPath, core.MigrateUp)
}

// Migrate runs a goose command against the database at dbPath.
func Migrate(ctx context.Context, dbPath string, command core.MigrationCommand) error {
	dsn, _, err := buildDSN(&Config{Path: dbPath})
	if err != nil {
		return fmt.Errorf("sqlite: prepare migrations dsn: %w", err)
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("sqlite: open database for migrations: %w", err)
	}
	defer db.Close()
	return RunMigrationsForDB(ctx, db, command)
}

// RunMigrationsForDB applies a goose command on an already open handle.
func RunMigrationsForDB(ctx context.Context, db *sql.DB, command core.MigrationCommand) error {
	gooseInitMu.Lock()
	defer func() {
		goose.SetBaseFS(nil)
		gooseInitMu.Unlock()
	}()
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sqlite: set goose dialect: %w", err)
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
		return fmt.Errorf("sqlite: unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("sqlite: migrate %s: %w", command, err)
	}
	return nil
}
