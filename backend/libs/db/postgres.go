package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 30 * time.Minute
	defaultPingTimeout  = 5 * time.Second
)

// NewPostgresDB creates a pgx/stdlib backed *sql.DB pool and validates the connection.
func NewPostgresDB(dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("db: empty DSN")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnLifetime)
	db.SetConnMaxIdleTime(defaultConnIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// MigrationDirection selects what Migrate does with the embedded goose migrations.
type MigrationDirection string

const (
	MigrateUp     MigrationDirection = "up"
	MigrateDown   MigrationDirection = "down"
	MigrateStatus MigrationDirection = "status"
)

// Migrate runs goose against db using the SQL files under dir in fsys.
// MigrateDown rolls back exactly one version.
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS, dir string, direction MigrationDirection) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("db: set dialect: %w", err)
	}

	switch direction {
	case MigrateUp:
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("db: migrate up: %w", err)
		}
	case MigrateDown:
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("db: migrate down: %w", err)
		}
	case MigrateStatus:
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("db: migration status: %w", err)
		}
	default:
		return fmt.Errorf("db: unknown migration direction %q", direction)
	}
	return nil
}
