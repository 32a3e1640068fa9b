package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - cars and parts
// 2 - offers
// 3 - contacts (derived supplier directory)
const currentSchemaVersion = 3

// Store provides durable storage for the spares catalog.
// Uses SQLite with WAL mode for concurrent read access.
//
// The zero value is unusable; obtain a ready store from Open. Every
// operation on a zero-value or closed store fails with ErrNotInitialized.
type Store struct {
	db *sql.DB

	// now stamps CreatedAt/LastUsedAt values. Overridden in tests.
	now func() time.Time
}

// Open creates or opens the catalog database at the given path.
// Applies required pragmas and migrations automatically.
//
// Open failures wrap ErrStorageUnavailable: quota exhaustion, permission
// problems and corruption all surface here, before any collection is
// touched.
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrStorageUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connect: %v", ErrStorageUnavailable, err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ready guards every operation against use before Open or after Close.
func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return ErrNotInitialized
	}
	return nil
}

// dbtx is the common surface of *sql.DB and *sql.Tx, so single-record
// reads and writes can run standalone or inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on
// user_version. Upgrades are additive only: a new version may provision
// collections, never drop or transform existing ones.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 2 {
		if err := migrateToV2(db); err != nil {
			return err
		}
		version = 2
	}
	if version < 3 {
		if err := migrateToV3(db); err != nil {
			return err
		}
		version = 3
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV2 provisions the offers collection for databases created
// before quotes existed. New databases get the table from schema.sql; the
// IF NOT EXISTS makes this a no-op for them.
func migrateToV2(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS offers (
			id            TEXT PRIMARY KEY,
			part_id       TEXT NOT NULL,
			media         TEXT NOT NULL DEFAULT '[]',
			cost_price    TEXT NOT NULL DEFAULT '',
			shop_name     TEXT NOT NULL,
			phone         TEXT NOT NULL,
			location_text TEXT NOT NULL DEFAULT '',
			lat           REAL,
			lng           REAL,
			created_at    INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v2: %w", err)
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_offers_part_id ON offers(part_id)`)
	if err != nil {
		return fmt.Errorf("migrate to v2: %w", err)
	}
	return nil
}

// migrateToV3 provisions the contacts collection (the derived supplier
// directory). Existing collections are untouched.
func migrateToV3(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS contacts (
			phone              TEXT PRIMARY KEY CHECK (phone <> ''),
			id                 TEXT NOT NULL,
			name               TEXT NOT NULL,
			last_location_text TEXT NOT NULL DEFAULT '',
			last_lat           REAL,
			last_lng           REAL,
			last_used_at       INTEGER NOT NULL,
			makes              TEXT NOT NULL DEFAULT '[]',
			models             TEXT NOT NULL DEFAULT '[]',
			years              TEXT NOT NULL DEFAULT '[]',
			media              TEXT NOT NULL DEFAULT '[]'
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v3: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
