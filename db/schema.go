// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var ErrUnsupportedDatabase = errors.New("unsupported database type")

// Open connects to a journal database. dbType is "sqlite" or "postgres".
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", dbType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the journal.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Portable across SQLite and PostgreSQL: no serial ids, no JSONB, and
// timestamps stored as unix nanoseconds.
const schema = `
-- Fleet snapshots, one row per accepted broadcast
CREATE TABLE IF NOT EXISTS fleet_snapshot (
    id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    seq BIGINT NOT NULL,
    received_at BIGINT NOT NULL,
    car_count INTEGER NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fleet_snapshot_received_at ON fleet_snapshot(received_at);
`
