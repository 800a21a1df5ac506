// Package history provides a SQLite-backed log of parse requests. Repeated
// inputs are deduplicated by checksum and counted instead of re-inserted.
package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS parses (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	checksum     TEXT NOT NULL UNIQUE,
	input        TEXT NOT NULL,
	locale       TEXT NOT NULL DEFAULT '',
	period       TEXT NOT NULL DEFAULT '',
	expression   TEXT NOT NULL DEFAULT '',
	resolved     INTEGER NOT NULL DEFAULT 0,
	start_at     DATETIME,
	end_at       DATETIME,
	hits         INTEGER NOT NULL DEFAULT 1,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_seen_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_parses_locale ON parses(locale);
CREATE INDEX IF NOT EXISTS idx_parses_last_seen ON parses(last_seen_at);
`

// DB wraps a sql.DB with history-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
