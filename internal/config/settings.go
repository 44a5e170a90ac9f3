package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath string `json:"downloads_path"`
	Threads       int    `json:"threads"`

	// Retry settings
	MaxAttempts    int `json:"max_attempts"`
	RetryBackoffMs int `json:"retry_backoff_ms"`

	// Cache settings
	CacheLifespanHours   int `json:"cache_lifespan_hours"`
	SweepIntervalMinutes int `json:"sweep_interval_minutes"`

	// Post-processing
	TagFiles        bool `json:"tag_files"`
	CreatePlaylists bool `json:"create_playlists"`

	// HTTP settings
	UserAgent string `json:"user_agent"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DownloadsPath: filepath.Join(homeDir, "Music", "khinsider"),
		Threads:       6,

		MaxAttempts:    5,
		RetryBackoffMs: 500,

		CacheLifespanHours:   48,
		SweepIntervalMinutes: 360,

		TagFiles:        true,
		CreatePlaylists: false,

		UserAgent: "khinsider-dl",
	}
}

// Load reads settings from a JSON file. A missing file yields the
// defaults; fields absent from the file keep their default value.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// RetryBackoff returns the base delay between retry attempts.
func (s *Settings) RetryBackoff() time.Duration {
	return time.Duration(s.RetryBackoffMs) * time.Millisecond
}

// CacheLifespan returns how long cached objects stay valid.
func (s *Settings) CacheLifespan() time.Duration {
	return time.Duration(s.CacheLifespanHours) * time.Hour
}

// SweepInterval returns how often the cache sweeper runs.
func (s *Settings) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalMinutes) * time.Minute
}
