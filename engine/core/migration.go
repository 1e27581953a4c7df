package core

import "fmt"

// MigrationCommand selects the schema operation run by a store's Migrate.
type MigrationCommand string

const (
	MigrateUp     MigrationCommand = "up"
	MigrateDown   MigrationCommand = "down"
	MigrateStatus MigrationCommand = "status"
)

// ParseMigrationCommand accepts the command names exposed on the CLI.
func ParseMigrationCommand(s string) (MigrationCommand, error) {
	switch c := MigrationCommand(s); c {
	case MigrateUp, MigrateDown, MigrateStatus:
		return c, nil
	default:
		return "", fmt.Errorf("unknown migration command %q", s)
	}
}
