package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"latexmcp/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "latexmcp" // application name used for config directory

// Engines supported by the compile tool. The first entry is the default.
var SupportedEngines = []string{"pdflatex", "xelatex", "lualatex"}

// Config holds user configuration for latexmcp.
type Config struct {
	// Engine is the default LaTeX engine used when a compile request
	// does not name one.
	Engine string `yaml:"engine"`
	// CompileTimeoutSeconds bounds a single compiler invocation.
	CompileTimeoutSeconds int `yaml:"compile_timeout_seconds"`
	// BackupDir, when set, receives cleanup backups instead of a
	// sibling directory next to the cleaned files.
	BackupDir string `yaml:"backup_dir,omitempty"`
	Version   string `yaml:"version"`   // Track config version
	InitTime  int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config paths", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location. A missing file is
// not an error: the server runs fine on defaults.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine:                SupportedEngines[0],
		CompileTimeoutSeconds: 30,
		Version:               "1.0",
		InitTime:              0, // Will be set during first save
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Engine == "" {
		cfg.Engine = SupportedEngines[0]
	}
	if cfg.CompileTimeoutSeconds <= 0 {
		cfg.CompileTimeoutSeconds = 30
	}
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if !IsSupportedEngine(c.Engine) {
		return fmt.Errorf("unsupported engine %q (supported: %v)", c.Engine, SupportedEngines)
	}
	if c.CompileTimeoutSeconds <= 0 {
		return fmt.Errorf("compile_timeout_seconds must be positive, got %d", c.CompileTimeoutSeconds)
	}
	return nil
}

// IsSupportedEngine reports whether name is a known LaTeX engine.
func IsSupportedEngine(name string) bool {
	for _, e := range SupportedEngines {
		if e == name {
			return true
		}
	}
	return false
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
