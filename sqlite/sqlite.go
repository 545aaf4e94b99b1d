// Package sqlite provides SQLite-based storage for the page registry and
// check history.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection, applies connection pragmas and
// creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; concurrent page checks queue on this connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec("PRAGMA " + pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// pragmas returns the connection settings for this database. The busy
// timeout covers an operator editing the registry during a run.
func (db *DB) pragmas() []string {
	p := []string{"busy_timeout = 5000", "foreign_keys = ON"}
	if db.path != ":memory:" {
		p = append(p, "journal_mode = WAL")
	}
	return p
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			name TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			selector TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			format TEXT NOT NULL DEFAULT 'text',
			render INTEGER NOT NULL DEFAULT 0,
			content TEXT,
			content_hash TEXT NOT NULL DEFAULT '',
			last_changed_at TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_pages_status ON pages(status);

		CREATE TABLE IF NOT EXISTS checks (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			page_name TEXT NOT NULL REFERENCES pages(name) ON DELETE CASCADE,
			status TEXT NOT NULL,
			edits INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			checked_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_checks_run_id ON checks(run_id);
		CREATE INDEX IF NOT EXISTS idx_checks_page_name ON checks(page_name);
	`

	_, err := db.db.Exec(schema)
	return err
}
