package config

// ServerConfig holds settings for the local HTTP server.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// Config is the top-level vecscope configuration, corresponding to .vecscope.yml.
type Config struct {
	// PythonPath is the interpreter used to run adapter scripts.
	// Empty means the platform default (python3 on unix, python on windows).
	PythonPath string `yaml:"python_path" koanf:"python_path"`

	// AdapterDir overrides the directory adapter scripts are loaded from.
	// Empty means the embedded scripts, materialized under the user cache dir.
	AdapterDir string `yaml:"adapter_dir" koanf:"adapter_dir"`

	// MaxDepth bounds the recursive database search below a directory.
	MaxDepth int `yaml:"max_depth" koanf:"max_depth"`

	// Exclude lists extra glob patterns for directories skipped during detection,
	// on top of the built-in denylist (.git, node_modules, ...).
	Exclude []string `yaml:"exclude" koanf:"exclude"`

	// TimeoutSeconds bounds a single adapter run. 0 disables the timeout.
	TimeoutSeconds int `yaml:"timeout_seconds" koanf:"timeout_seconds"`

	// Strict enables shape validation of adapter output (count and dimension
	// consistency). Off by default: adapters in the wild are sloppy.
	Strict bool `yaml:"strict" koanf:"strict"`

	// HistoryPath is the SQLite file recording recent loads.
	// Empty means <user config dir>/vecscope/history.db.
	HistoryPath string `yaml:"history_path" koanf:"history_path"`

	Server ServerConfig `yaml:"server" koanf:"server"`
}
