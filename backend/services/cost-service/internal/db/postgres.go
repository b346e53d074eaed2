package db

import (
	"context"
	"database/sql"
	"embed"

	libdb "energytrack/backend/libs/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// NewPostgres returns shared DB connection.
func NewPostgres(dsn string) (*sql.DB, error) {
	return libdb.NewPostgresDB(dsn)
}

// Migrate applies the service's embedded schema migrations.
func Migrate(ctx context.Context, db *sql.DB, direction libdb.MigrationDirection) error {
	return libdb.Migrate(ctx, db, migrations, migrationsDir, direction)
}
