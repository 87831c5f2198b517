package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/rshade/postdeck/internal/cache"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome         = "POSTDECK_HOME"
	EnvAPIURL       = "POSTDECK_API_URL"
	EnvAPITimeout   = "POSTDECK_API_TIMEOUT"
	EnvPageSize     = "POSTDECK_PAGE_SIZE"
	EnvOutput       = "POSTDECK_OUTPUT"
	EnvLogLevel     = "POSTDECK_LOG_LEVEL"
	EnvLogFormat    = "POSTDECK_LOG_FORMAT"
	EnvLogFile      = "POSTDECK_LOG_FILE"
	EnvCacheEnabled = "POSTDECK_CACHE_ENABLED"
	EnvCacheTTL     = "POSTDECK_CACHE_TTL"
	EnvNotifyTTL    = "POSTDECK_NOTIFY_TTL"
	EnvMockAddr     = "POSTDECK_MOCK_ADDR"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// into the process environment without overriding variables that are
// already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with POSTDECK_* variables found through lookupEnv.
func ApplyEnv(cfg *Config, lookupEnv func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvAPIURL, &cfg.API.BaseURL)
	str(EnvOutput, &cfg.Output.DefaultFormat)
	str(EnvLogLevel, &cfg.Logging.Level)
	str(EnvLogFormat, &cfg.Logging.Format)
	str(EnvLogFile, &cfg.Logging.File)
	str(EnvMockAddr, &cfg.Mock.Addr)

	var errs []error
	if v, ok := lookupEnv(EnvAPITimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAPITimeout, err))
		} else {
			cfg.API.Timeout = d
		}
	}
	if v, ok := lookupEnv(EnvNotifyTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvNotifyTTL, err))
		} else {
			cfg.Notifications.TTL = d
		}
	}
	if v, ok := lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvPageSize, err))
		} else {
			cfg.API.PageSize = n
		}
	}
	if v, ok := lookupEnv(EnvCacheTTL); ok && v != "" {
		n, err := cache.ParseTTL(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvCacheTTL, err))
		} else {
			cfg.Cache.TTLSeconds = n
		}
	}
	if v, ok := lookupEnv(EnvCacheEnabled); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvCacheEnabled, err))
		} else {
			cfg.Cache.Enabled = b
		}
	}

	return errors.Join(errs...)
}
