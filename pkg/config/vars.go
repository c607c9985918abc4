package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "wcvpseed"

	// PreparedFile is the default file name of the prepared table.
	PreparedFile = "wcvp_prepared.csv"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/wcvpseed by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/wcvpseed by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/wcvpseed/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/wcvpseed/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
