package postgres

import "embed"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsFS exposes the embedded schema migrations for the startup
// migration runner.
func MigrationsFS() embed.FS {
	return migrationsFS
}

// MigrationsDir is the directory inside MigrationsFS holding the SQL files.
const MigrationsDir = "migrations"
