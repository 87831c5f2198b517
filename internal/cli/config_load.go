package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/config"
)

// annotationLenientConfig marks commands that must run even when the
// configuration on disk is broken, such as config init and validate.
const annotationLenientConfig = "postdeck/lenient-config"

// loadConfig builds the effective configuration (defaults, file, .env,
// environment, flags) and installs it as the global configuration.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(flagConfig)

	dotEnv := []string{".env"}
	if dir, err := config.GetConfigDir(); err == nil {
		dotEnv = append(dotEnv, filepath.Join(dir, ".env"))
	}
	if err := config.LoadDotEnv(dotEnv...); err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	}

	cfg, err := config.LoadWithEnv(path, lookupEnv)
	if err == nil {
		err = applyFlagOverrides(cmd, cfg)
	}
	if err != nil {
		if cmd.Annotations[annotationLenientConfig] == "" {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
		cfg = config.New()
		if path != "" {
			cfg.SetConfigPath(path)
		}
	}

	config.SetGlobalConfig(cfg)
	return cfg, nil
}

// applyFlagOverrides applies persistent flags that were explicitly set. CLI
// flags override environment variables and the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	changed := false
	if cmd.Flags().Changed(flagAPIURL) {
		cfg.API.BaseURL, _ = cmd.Flags().GetString(flagAPIURL)
		changed = true
	}
	if cmd.Flags().Changed(flagOutput) {
		cfg.Output.DefaultFormat, _ = cmd.Flags().GetString(flagOutput)
		changed = true
	}
	if !changed {
		return nil
	}
	return cfg.Validate()
}
