package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.GetValue(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.PutValue(ctx, "a", "1"))
	require.NoError(t, kv.PutValue(ctx, "a", "2"))
	require.NoError(t, kv.PutValue(ctx, "b", "3"))

	v, ok, err := kv.GetValue(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, _, err = kv.GetValue(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestMemoryKV(t *testing.T) {
	testKV(t, NewMemoryKV())
}

func TestFileKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	kv, err := NewFileKV(path)
	require.NoError(t, err)

	testKV(t, kv)

	// A second handle on the same file sees the writes.
	other, err := NewFileKV(path)
	require.NoError(t, err)
	v, ok, err := other.GetValue(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestFileKV_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()

	var wg sync.WaitGroup
	keys := []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6", "k7"}
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			kv, err := NewFileKV(path)
			if assert.NoError(t, err) {
				assert.NoError(t, kv.PutValue(ctx, key, key))
			}
		}(key)
	}
	wg.Wait()

	kv, err := NewFileKV(path)
	require.NoError(t, err)
	for _, key := range keys {
		v, ok, err := kv.GetValue(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
		assert.Equal(t, key, v)
	}
}

func TestFileKV_SharedHandleConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()
	kv, err := NewFileKV(path)
	require.NoError(t, err)

	keys := make([]string, 16)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%02d", i)
	}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			assert.NoError(t, kv.PutValue(ctx, key, "v-"+key))
		}(key)
	}
	wg.Wait()

	for _, key := range keys {
		v, ok, err := kv.GetValue(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
		assert.Equal(t, "v-"+key, v)
	}

	leftovers, err := filepath.Glob(path + ".*.tmp")
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	kv, err := NewFileKV(path)
	require.NoError(t, err)

	_, _, err = kv.GetValue(context.Background(), "a")
	assert.Error(t, err)
}

func TestSQLiteKV(t *testing.T) {
	kv, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	testKV(t, kv)
}
