package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// migrations are applied in order; PRAGMA user_version records progress
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS config_documents (
		id         TEXT PRIMARY KEY,
		city       TEXT NOT NULL,
		latitude   TEXT NOT NULL,
		longitude  TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_config_documents_created_at ON config_documents (created_at)`,
	`CREATE TABLE IF NOT EXISTS weather_logs (
		id          TEXT PRIMARY KEY,
		city        TEXT NOT NULL,
		temperature REAL NOT NULL,
		humidity    REAL NOT NULL,
		wind_speed  REAL NOT NULL,
		condition   TEXT NOT NULL,
		timestamp   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_weather_logs_timestamp ON weather_logs (timestamp)`,
}

// Open opens the database at path (":memory:" for tests) and migrates it
func Open(ctx context.Context, path string) (*sql.DB, error) {
	log := logger.WithScope("sqlite")

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer; also keeps one shared :memory: database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			log.Debug().Err(err).Str("pragma", pragma).Msg("Failed to apply pragma")
		}
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Str("path", path).Int("schema_version", len(migrations)).Msg("SQLite database ready")
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		// PRAGMA does not accept bind parameters
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
