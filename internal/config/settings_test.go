package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 6, s.Threads)
	assert.Equal(t, 5, s.MaxAttempts)
	assert.True(t, s.TagFiles)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"threads": 2}`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Threads)
	assert.Equal(t, 5, s.MaxAttempts, "absent fields keep defaults")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	s := DefaultSettings()
	s.DownloadsPath = "/music"
	s.CreatePlaylists = true
	require.NoError(t, s.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestDurationHelpers(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 500*time.Millisecond, s.RetryBackoff())
	assert.Equal(t, 48*time.Hour, s.CacheLifespan())
	assert.Equal(t, 6*time.Hour, s.SweepInterval())
}
