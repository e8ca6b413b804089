package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite3 "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/errs"
)

const (
	// SQLiteDriverName is the project-specific registration of the SQLite driver.
	SQLiteDriverName = "sqlite3_personal_notes"

	// MemoryDSN opens a private in-memory database instead of a file.
	MemoryDSN = ":memory:"
)

// Schema is the full schema for the key-value store.
const Schema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value BLOB NOT NULL
);
`

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{})
}

// SQLite is a Store backed by a single local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the store at path. Pass MemoryDSN
// for a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, errs.Wrap(errs.Unavailable, "failed to create data directory", err)
		}
	}

	db, err := sql.Open(SQLiteDriverName, path)
	if err != nil {
		return nil, errs.Wrap(errs.Unavailable, "failed to open database", err)
	}

	// SQLite is single-writer and this tool is single-user; one connection
	// avoids lock contention and keeps in-memory databases coherent.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.Unavailable, "failed to configure database", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.Unavailable, "failed to initialize schema", err)
	}

	return &SQLite{db: db}, nil
}

// DB returns the underlying sql.DB for direct access when needed.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key, or ok=false if absent.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(errs.Unavailable, fmt.Sprintf("failed to read key %q", key), err)
	}
	return value, true, nil
}

// Set stores value under key, overwriting any prior value.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return errs.Wrap(errs.Unavailable, fmt.Sprintf("failed to write key %q", key), err)
	}
	return nil
}
