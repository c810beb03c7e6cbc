package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteKV stores values in a local SQLite database.
type SQLiteKV struct {
	pool *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the storage table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteKV, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping sqlite %s: %w", path, err)
	}

	_, err = pool.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS builder_storage (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to create storage table: %w", err)
	}

	return &SQLiteKV{pool: pool}, nil
}

// Close closes the database.
func (s *SQLiteKV) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Close()
}

// GetValue implements KV.
func (s *SQLiteKV) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRowContext(ctx, `SELECT value FROM builder_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// PutValue implements KV.
func (s *SQLiteKV) PutValue(ctx context.Context, key, value string) error {
	_, err := s.pool.ExecContext(ctx,
		`INSERT INTO builder_storage (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}
