// Package config handles the global configuration and data directory
// resolution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/pf/config.yml.
type GlobalConfig struct {
	DataPath        string `yaml:"data_path,omitempty"`
	Theme           string `yaml:"theme,omitempty"`
	SerpAPIKey      string `yaml:"serpapi_api_key,omitempty"`
	ScholarAuthorID string `yaml:"scholar_author_id,omitempty"`
	ScholarHL       string `yaml:"scholar_hl,omitempty"`
	LogLevel        string `yaml:"log_level,omitempty"`
	LogFormat       string `yaml:"log_format,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "pf"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Keys lists the settable config keys in file order.
var Keys = []string{
	"data_path",
	"theme",
	"serpapi_api_key",
	"scholar_author_id",
	"scholar_hl",
	"log_level",
	"log_format",
}

// ErrUnknownKey is returned by Set and Get for a key not in Keys.
var ErrUnknownKey = errors.New("unknown config key")

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pf/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.DataPath != "" {
		cfg.DataPath = ExpandPath(cfg.DataPath)
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// Save writes the config to GlobalConfigPath and refreshes the cache.
func (c *GlobalConfig) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return errors.New("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}
	// The file may hold an API key.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	saved := *c
	globalConfigCache = &saved
	return nil
}

// Get returns the value of a config key.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch key {
	case "data_path":
		return c.DataPath, nil
	case "theme":
		return c.Theme, nil
	case "serpapi_api_key":
		return c.SerpAPIKey, nil
	case "scholar_author_id":
		return c.ScholarAuthorID, nil
	case "scholar_hl":
		return c.ScholarHL, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set validates and assigns a config key.
func (c *GlobalConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "data_path":
		c.DataPath = ExpandPath(value)
	case "theme":
		if err := ValidateTheme(value); err != nil {
			return err
		}
		c.Theme = value
	case "serpapi_api_key":
		c.SerpAPIKey = value
	case "scholar_author_id":
		c.ScholarAuthorID = value
	case "scholar_hl":
		c.ScholarHL = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetSerpAPIKey returns the SerpApi key, preferring SERPAPI_API_KEY.
func GetSerpAPIKey() string {
	if key := os.Getenv("SERPAPI_API_KEY"); key != "" {
		return key
	}
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.SerpAPIKey
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// HelpfulConfigMessage returns a hint for when no data directory is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No portfolio data directory found.

Tip: pass --data, set %s, or create %s:
  mkdir -p %s
  echo 'data_path: /path/to/site/data' > %s`,
		DataEnvVar,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
