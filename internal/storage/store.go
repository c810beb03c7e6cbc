// Package storage persists the builder state and the active template key
// under fixed keys in a key/value backend.
package storage

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Storage keys shared by every backend.
const (
	StateKey    = "resume_builder_state"
	TemplateKey = "resume_builder_template"
)

// KV is a string key/value backend. *db.DB satisfies it.
type KV interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	PutValue(ctx context.Context, key, value string) error
}

// Repository loads and saves the builder's persisted values.
// A false ok means nothing has been stored yet.
type Repository interface {
	Load(ctx context.Context) (state types.BuilderState, ok bool, err error)
	Save(ctx context.Context, state types.BuilderState) error
	LoadTemplateKey(ctx context.Context) (key string, ok bool, err error)
	SaveTemplateKey(ctx context.Context, key string) error
}

// Store implements Repository on top of a KV backend.
type Store struct {
	kv KV
}

// New creates a Store over kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Load reads the stored state. The blob is checked against the builder state
// schema so a corrupt value is reported instead of half-loaded.
func (s *Store) Load(ctx context.Context) (types.BuilderState, bool, error) {
	raw, ok, err := s.kv.GetValue(ctx, StateKey)
	if err != nil {
		return types.BuilderState{}, false, &StorageError{Op: "load", Key: StateKey, Message: "read failed", Cause: err}
	}
	if !ok {
		return types.BuilderState{}, false, nil
	}

	if err := schemas.ValidateBuilderStateJSON([]byte(raw)); err != nil {
		return types.BuilderState{}, false, &StorageError{Op: "load", Key: StateKey, Message: "stored state is invalid", Cause: err}
	}
	var state types.BuilderState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return types.BuilderState{}, false, &StorageError{Op: "load", Key: StateKey, Message: "failed to decode", Cause: err}
	}
	return builder.Clone(state), true, nil
}

// Save writes state as JSON.
func (s *Store) Save(ctx context.Context, state types.BuilderState) error {
	data, err := json.Marshal(builder.Clone(state))
	if err != nil {
		return &StorageError{Op: "save", Key: StateKey, Message: "failed to encode", Cause: err}
	}
	if err := s.kv.PutValue(ctx, StateKey, string(data)); err != nil {
		return &StorageError{Op: "save", Key: StateKey, Message: "write failed", Cause: err}
	}
	return nil
}

// LoadTemplateKey reads the active template key. Values are stored as JSON
// strings; a bare string written by another client is accepted as is.
func (s *Store) LoadTemplateKey(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.kv.GetValue(ctx, TemplateKey)
	if err != nil {
		return "", false, &StorageError{Op: "load", Key: TemplateKey, Message: "read failed", Cause: err}
	}
	if !ok {
		return "", false, nil
	}
	var key string
	if err := json.Unmarshal([]byte(raw), &key); err != nil {
		key = raw
	}
	if key == "" {
		return "", false, nil
	}
	return key, true, nil
}

// SaveTemplateKey writes the active template key.
func (s *Store) SaveTemplateKey(ctx context.Context, key string) error {
	data, err := json.Marshal(key)
	if err != nil {
		return &StorageError{Op: "save", Key: TemplateKey, Message: "failed to encode", Cause: err}
	}
	if err := s.kv.PutValue(ctx, TemplateKey, string(data)); err != nil {
		return &StorageError{Op: "save", Key: TemplateKey, Message: "write failed", Cause: err}
	}
	return nil
}
