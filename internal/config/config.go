// Package config loads postdeck settings from ~/.postdeck/config.yaml, a .env
// file, POSTDECK_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBaseURL         = "http://localhost:5001"
	DefaultTimeout         = 10 * time.Second
	DefaultPageSize        = 4
	DefaultOutputFormat    = "table"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultCacheTTLSeconds = 60
	DefaultNotificationTTL = 3000 * time.Millisecond
	DefaultMockAddr        = ":5001"
	DefaultMockUsers       = 25
	DefaultMockPosts       = 3

	configFileName = "config.yaml"
)

// Config is the full postdeck configuration.
type Config struct {
	API           APIConfig           `yaml:"api"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
	Cache         CacheConfig         `yaml:"cache"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Mock          MockConfig          `yaml:"mock"`

	configPath string
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   validate:"required,http_url"`
	Timeout   time.Duration `yaml:"timeout"    validate:"gt=0"`
	PageSize  int           `yaml:"page_size"  validate:"min=1,max=100"`
	UserAgent string        `yaml:"user_agent"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" validate:"oneof=table json yaml"`
}

// LoggingConfig controls the zerolog setup.
type LoggingConfig struct {
	Level  string `yaml:"level"  validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
	File   string `yaml:"file"`
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds" validate:"min=1,max=86400"`
	Directory  string `yaml:"directory"`
}

// NotificationsConfig controls toast behaviour.
type NotificationsConfig struct {
	TTL time.Duration `yaml:"ttl" validate:"gt=0"`
}

// MockConfig configures the bundled mock backend.
type MockConfig struct {
	Addr         string `yaml:"addr"           validate:"required"`
	Users        int    `yaml:"users"          validate:"min=0"`
	PostsPerUser int    `yaml:"posts_per_user" validate:"min=0"`
}

// New returns a Config populated with defaults. Paths under the config
// directory are left empty when the home directory cannot be determined.
func New() *Config {
	cfg := &Config{
		API: APIConfig{
			BaseURL:  DefaultBaseURL,
			Timeout:  DefaultTimeout,
			PageSize: DefaultPageSize,
		},
		Output:  OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
		Notifications: NotificationsConfig{TTL: DefaultNotificationTTL},
		Mock: MockConfig{
			Addr:         DefaultMockAddr,
			Users:        DefaultMockUsers,
			PostsPerUser: DefaultMockPosts,
		},
	}

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		cfg.Cache.Directory = filepath.Join(dir, "cache")
	}
	return cfg
}

// ConfigPath returns the file this configuration is loaded from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load builds a configuration from defaults overlaid with the file at path.
// An empty path means the default location, where a missing file is fine; an
// explicit path must exist. Environment overrides and validation are applied
// by the caller (see LoadWithEnv).
func Load(path string) (*Config, error) {
	cfg := New()
	explicit := path != ""
	if explicit {
		cfg.configPath = path
	}
	if cfg.configPath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(cfg.configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", cfg.configPath, err)
	}

	if err := ShallowMergeYAML(cfg, cfg.configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithEnv loads the file at path, applies .env and POSTDECK_* overrides
// and validates the result.
func LoadWithEnv(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err = ApplyEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML to ConfigPath.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no config path set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// LogFile returns the file the interactive browser logs to: the configured
// file, or logs/postdeck.log under the config directory.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	dir, err := GetConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "postdeck.log")
	}
	return filepath.Join(dir, "logs", "postdeck.log")
}
