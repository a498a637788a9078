package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrSlotEmpty is returned by Get when nothing was ever stored under a key.
var ErrSlotEmpty = errors.New("slot empty")

// Slot is a named local key-value slot holding one string per key.
type Slot interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ============================================================
// SQLite Slot
// ============================================================

const defaultSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`

type SQLiteSlot struct {
	db *sql.DB
}

func NewSQLiteSlot(db *sql.DB) *SQLiteSlot {
	return &SQLiteSlot{db: db}
}

// Init applies the migration at migrationsPath, or the built-in schema when
// the path is empty.
func (s *SQLiteSlot) Init(ctx context.Context, migrationsPath string) error {
	if err := s.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (s *SQLiteSlot) Get(ctx context.Context, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSlotEmpty
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteSlot) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
    `, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *SQLiteSlot) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ============================================================
// Migrations
// ============================================================

func (s *SQLiteSlot) runMigrations(ctx context.Context, migrationsPath string) error {
	sqlText := defaultSchema
	if migrationsPath != "" {
		data, err := os.ReadFile(migrationsPath)
		if err != nil {
			return fmt.Errorf("read migration: %w", err)
		}
		sqlText = string(data)
	}
	if _, err := s.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite opens sqlite at the given path.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
