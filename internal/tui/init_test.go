package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectInitState(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "data", "tramo.db")

	state, err := detectInitState(configPath, dbPath)
	require.NoError(t, err)
	assert.True(t, state.NeedsInit)
	assert.True(t, state.ConfigMissing)
	assert.True(t, state.DBMissing)

	require.NoError(t, os.WriteFile(configPath, []byte(""), 0o644))
	state, err = detectInitState(configPath, dbPath)
	require.NoError(t, err)
	assert.False(t, state.ConfigMissing)
	assert.True(t, state.NeedsInit)
}

func TestInitializeStorage(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	state := InitState{
		NeedsInit:     true,
		ConfigMissing: true,
		DBMissing:     true,
		ConfigPath:    filepath.Join(dir, "config", "config.toml"),
		DBPath:        filepath.Join(dir, "data", "tramo.db"),
	}

	repo, err := initializeStorage(cfg, state)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	_, err = os.Stat(state.ConfigPath)
	assert.NoError(t, err, "config file written")
	_, err = os.Stat(state.DBPath)
	assert.NoError(t, err, "database created")

	after, err := detectInitState(state.ConfigPath, state.DBPath)
	require.NoError(t, err)
	assert.False(t, after.NeedsInit)
}

func TestOpenRepo_EmptyPath(t *testing.T) {
	_, err := openRepo("")
	assert.Error(t, err)
}
