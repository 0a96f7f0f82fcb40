package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultMaxDepth is how deep detection searches below a directory.
const DefaultMaxDepth = 3

// DefaultTimeoutSeconds bounds a single adapter run.
const DefaultTimeoutSeconds = 120

// DefaultPython returns the platform-appropriate interpreter name.
func DefaultPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PythonPath:     DefaultPython(),
		MaxDepth:       DefaultMaxDepth,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Server: ServerConfig{
			Port:     8080,
			AllowAll: false,
		},
	}
}

// DefaultHistoryPath returns the per-user location of the load history
// database, falling back to the working directory when the user config
// dir cannot be determined.
func DefaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".vecscope-history.db"
	}
	return filepath.Join(dir, "vecscope", "history.db")
}
