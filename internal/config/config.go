package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (VECSCOPE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: VECSCOPE_PYTHON_PATH -> python_path,
	// VECSCOPE_SERVER__PORT -> server.port, etc.
	if err := k.Load(env.Provider("VECSCOPE_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "VECSCOPE_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number")
	}
	if c.AdapterDir != "" {
		info, err := os.Stat(c.AdapterDir)
		if err != nil {
			return fmt.Errorf("adapter_dir %s: %w", c.AdapterDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("adapter_dir %s is not a directory", c.AdapterDir)
		}
	}
	return nil
}

// Python returns the configured interpreter, or the platform default.
func (c *Config) Python() string {
	if c.PythonPath != "" {
		return c.PythonPath
	}
	return DefaultPython()
}

// History returns the configured history database path, or the default.
func (c *Config) History() string {
	if c.HistoryPath != "" {
		return c.HistoryPath
	}
	return DefaultHistoryPath()
}
