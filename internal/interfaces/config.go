package interfaces

import "time"

// Config represents the application configuration
type Config struct {
	Endpoint          string        `toml:"endpoint"`
	Timeout           time.Duration `toml:"timeout"`
	DefaultTone       string        `toml:"default_tone"`
	DefaultLength     string        `toml:"default_length"`
	DefaultPurpose    string        `toml:"default_purpose"`
	Theme             string        `toml:"theme"`
	DownloadDir       string        `toml:"download_dir"`
	DownloadOverwrite bool          `toml:"download_overwrite"`
	Target            string        `toml:"target"`
	ViewTemplate      string        `toml:"view_template"`
	LogLevel          string        `toml:"log_level"`
	LogJSON           bool          `toml:"log_json"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}
