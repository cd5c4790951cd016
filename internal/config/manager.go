package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"sumai-cli/internal/interfaces"
	"sumai-cli/pkg/models"
)

// DefaultEndpoint is where the summarization service listens out of the box
const DefaultEndpoint = "http://localhost:5000/summarize"

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

var _ interfaces.ConfigManager = (*Manager)(nil)

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("SUMAI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	defaults := models.DefaultOptions()

	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("timeout", "60s")
	v.SetDefault("default_tone", string(defaults.Tone))
	v.SetDefault("default_length", string(defaults.Length))
	v.SetDefault("default_purpose", string(defaults.Purpose))
	v.SetDefault("theme", "light")
	v.SetDefault("download_dir", ".")
	v.SetDefault("download_overwrite", false)
	v.SetDefault("target", "stdout")
	v.SetDefault("view_template", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_json", false)
}

// DefaultPath returns ~/.config/sumai/config.toml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "sumai", "config.toml"), nil
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path = ExpandPath(path)

	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Config file doesn't exist, use defaults
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()

	// Apply flag overrides (highest precedence)
	m.applyFlagOverrides(config)

	return config, nil
}

// applyFlagOverrides applies flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	stringFlags := map[string]*string{
		"endpoint":        &config.Endpoint,
		"default_tone":    &config.DefaultTone,
		"default_length":  &config.DefaultLength,
		"default_purpose": &config.DefaultPurpose,
		"theme":           &config.Theme,
		"target":          &config.Target,
		"log_level":       &config.LogLevel,
	}
	for key, field := range stringFlags {
		if val, exists := m.flags[key]; exists && val != nil {
			if str, ok := val.(string); ok && str != "" {
				*field = str
			}
		}
	}

	if val, exists := m.flags["download_dir"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.DownloadDir = ExpandPath(str)
		}
	}

	if val, exists := m.flags["view_template"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.ViewTemplate = ExpandPath(str)
		}
	}

	if val, exists := m.flags["timeout"]; exists && val != nil {
		if d, ok := val.(time.Duration); ok && d != 0 {
			config.Timeout = d
		}
	}

	if val, exists := m.flags["download_overwrite"]; exists && val != nil {
		if b, ok := val.(bool); ok {
			config.DownloadOverwrite = b
		}
	}
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	endpoint, err := url.Parse(config.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return fmt.Errorf("invalid endpoint: %s (scheme must be http or https)", config.Endpoint)
	}
	if endpoint.Host == "" {
		return fmt.Errorf("invalid endpoint: %s (missing host)", config.Endpoint)
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s (must be positive)", config.Timeout)
	}

	opts := models.Options{
		Tone:    models.Tone(config.DefaultTone),
		Length:  models.Length(config.DefaultLength),
		Purpose: models.Purpose(config.DefaultPurpose),
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid default options: %w", err)
	}

	// Validate theme
	validThemes := map[string]bool{
		"light": true,
		"dark":  true,
	}
	if !validThemes[config.Theme] {
		return fmt.Errorf("invalid theme: %s (must be 'light' or 'dark')", config.Theme)
	}

	// Validate target
	validTargets := map[string]bool{
		"clipboard": true,
		"stdout":    true,
	}
	// Also allow file: prefix
	if !validTargets[config.Target] && !strings.HasPrefix(config.Target, "file:") {
		return fmt.Errorf("invalid target: %s (must be 'clipboard', 'stdout', or 'file:/path')", config.Target)
	}

	if config.ViewTemplate != "" {
		if _, err := os.Stat(config.ViewTemplate); err != nil {
			return fmt.Errorf("view_template is not readable: %s: %w", config.ViewTemplate, err)
		}
	}

	return nil
}

// DefaultOptions returns the configured default options
func DefaultOptions(config *interfaces.Config) models.Options {
	return models.Options{
		Tone:    models.Tone(config.DefaultTone),
		Length:  models.Length(config.DefaultLength),
		Purpose: models.Purpose(config.DefaultPurpose),
	}
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		Endpoint:          m.v.GetString("endpoint"),
		Timeout:           m.v.GetDuration("timeout"),
		DefaultTone:       strings.ToLower(m.v.GetString("default_tone")),
		DefaultLength:     strings.ToLower(m.v.GetString("default_length")),
		DefaultPurpose:    strings.ToLower(m.v.GetString("default_purpose")),
		Theme:             strings.ToLower(m.v.GetString("theme")),
		DownloadDir:       ExpandPath(m.v.GetString("download_dir")),
		DownloadOverwrite: m.v.GetBool("download_overwrite"),
		Target:            m.v.GetString("target"),
		ViewTemplate:      ExpandPath(m.v.GetString("view_template")),
		LogLevel:          m.v.GetString("log_level"),
		LogJSON:           m.v.GetBool("log_json"),
	}
}

// ExpandPath expands a leading ~/ to the user home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
