// Package config provides configuration management for khinsider-dl.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Duration helpers for retry and cache timing
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ~/Music/khinsider
//	// 6 concurrent downloads
//	// ID3 tagging enabled
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.DownloadsPath = "/custom/path"
//	err := settings.Save("/path/to/config.json")
package config
