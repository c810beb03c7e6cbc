package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetValue reads a builder storage entry. ok is false when the key is absent.
func (db *DB) GetValue(ctx context.Context, key string) (value string, ok bool, err error) {
	err = db.pool.QueryRow(ctx,
		`SELECT value FROM builder_storage WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get storage value %s: %w", key, err)
	}
	return value, true, nil
}

// PutValue writes a builder storage entry, replacing any previous value.
func (db *DB) PutValue(ctx context.Context, key, value string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO builder_storage (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to put storage value %s: %w", key, err)
	}
	return nil
}
