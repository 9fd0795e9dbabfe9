package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, KeyAccent)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, KeyAccent, "green"))
			v, ok, err := store.Get(ctx, KeyAccent)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "green", v)

			require.NoError(t, store.Set(ctx, KeyAccent, "orange"))
			v, _, _ = store.Get(ctx, KeyAccent)
			assert.Equal(t, "orange", v)

			require.NoError(t, store.Delete(ctx, KeyAccent))
			_, ok, err = store.Get(ctx, KeyAccent)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Delete(ctx, "missing"))
		})
	}
}

func TestGetOr(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	assert.Equal(t, "en", GetOr(ctx, store, KeyLanguage, "en"))
	require.NoError(t, store.Set(ctx, KeyLanguage, "es"))
	assert.Equal(t, "es", GetOr(ctx, store, KeyLanguage, "en"))

	require.NoError(t, store.Close())
	assert.Equal(t, "en", GetOr(ctx, store, KeyLanguage, "en"))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyLockScreenConfig, `{"presetIndex":2}`))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.Get(ctx, KeyLockScreenConfig)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"presetIndex":2}`, v)
}

func TestOpen(t *testing.T) {
	s, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open("etcd", "")
	assert.Error(t, err)
}

func TestMemoryClosed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Set(ctx, "k", "v"), ErrClosed)
	_, _, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Delete(ctx, "k"), ErrClosed)
}
