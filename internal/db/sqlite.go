package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS wayback_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL,
	domain TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	status_code TEXT,
	mime_type TEXT,
	fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(url, timestamp)
);
CREATE INDEX IF NOT EXISTS idx_wayback_domain ON wayback_records(domain);
`

const insertRecord = `
INSERT OR IGNORE INTO wayback_records (url, domain, timestamp, status_code, mime_type)
VALUES (?, ?, ?, ?, ?)
`

const selectRecordCount = `
SELECT COUNT(*) FROM wayback_records WHERE domain = ?
`

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createRecordsTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
