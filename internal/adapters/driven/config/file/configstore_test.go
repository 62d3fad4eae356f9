package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStoreSetGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", "127.0.0.1:9000"))
	require.NoError(t, store.Set("search.max_per_page", int64(5)))
	require.NoError(t, store.Set("logging.verbose", true))

	assert.Equal(t, "127.0.0.1:9000", store.GetString("server.addr"))
	assert.Equal(t, 5, store.GetInt("search.max_per_page"))
	assert.True(t, store.GetBool("logging.verbose"))
}

func TestConfigStoreMissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nothing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nothing"))
	assert.Zero(t, store.GetInt("nothing"))
	assert.False(t, store.GetBool("nothing"))
}

func TestConfigStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("storage.data_dir", "/tmp/pages"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pages", reopened.GetString("storage.data_dir"))
}

func TestConfigStoreFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	raw := "[server]\naddr = \"0.0.0.0:8375\"\n\n[server.limits]\nburst = 100\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8375", store.GetString("server.addr"))
	assert.Equal(t, 100, store.GetInt("server.limits.burst"))
}

func TestConfigStoreEmptyDirStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}
