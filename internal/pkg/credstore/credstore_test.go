package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")
	store, err := NewLocalStore(path)
	require.NoError(t, err)

	_, ok, err := store.Get(AuthTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(AuthTokenKey, "tok-123"))
	require.NoError(t, store.Set("lastEmail", "admin@smarted.eg"))
	assert.Equal(t, "tok-123", Token(store))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := NewLocalStore(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", Token(reopened))

	require.NoError(t, reopened.Remove(AuthTokenKey))
	require.NoError(t, reopened.Remove(AuthTokenKey))
	assert.Equal(t, "", Token(store))

	email, ok, err := store.Get("lastEmail")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "admin@smarted.eg", email)
}

func TestLocalStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))

	store, err := NewLocalStore(path)
	require.NoError(t, err)
	_, _, err = store.Get(AuthTokenKey)
	assert.Error(t, err)
	assert.Equal(t, "", Token(store))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	assert.Equal(t, "", Token(store))
	require.NoError(t, store.Set(AuthTokenKey, "abc"))
	assert.Equal(t, "abc", Token(store))
	require.NoError(t, store.Remove(AuthTokenKey))
	assert.Equal(t, "", Token(store))
	assert.Equal(t, "", Token(nil))
}
