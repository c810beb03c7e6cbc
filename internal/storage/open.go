package storage

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/db"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

var _ KV = (*db.DB)(nil)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the file or SQLite database path.
	Path string
	// DB is required for the postgres backend.
	DB *db.DB
}

// Open builds a Store for opts. The returned close function releases the
// backend; it is a no-op for backends that own nothing.
func Open(ctx context.Context, opts Options) (*Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "", BackendMemory:
		return New(NewMemoryKV()), noop, nil
	case BackendFile:
		kv, err := NewFileKV(opts.Path)
		if err != nil {
			return nil, nil, err
		}
		return New(kv), noop, nil
	case BackendSQLite:
		kv, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, nil, err
		}
		return New(kv), kv.Close, nil
	case BackendPostgres:
		if opts.DB == nil {
			return nil, nil, fmt.Errorf("postgres storage requires a database connection")
		}
		return New(opts.DB), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
