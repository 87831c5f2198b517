package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/cache"
	"github.com/rshade/postdeck/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file, .env and POSTDECK_* environment
variables together, the same way every other command loads them.`,
		Example: `  # Validate current configuration
  postdeck config validate

  # Validate and show detailed information
  postdeck config validate --verbose`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose, os.LookupEnv)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate loads the configuration again, strictly this time, so
// that errors the lenient root loader swallowed are reported.
func runConfigValidate(cmd *cobra.Command, verbose bool, lookupEnv func(string) (string, bool)) error {
	path, _ := cmd.Flags().GetString(flagConfig)
	cfg, err := config.LoadWithEnv(path, lookupEnv)
	if err == nil {
		err = applyFlagOverrides(cmd, cfg)
	}
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration is valid")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration details:")
	fmt.Fprintf(out, "  Config file: %s\n", cfg.ConfigPath())
	fmt.Fprintf(out, "  API URL: %s\n", cfg.API.BaseURL)
	fmt.Fprintf(out, "  API timeout: %s\n", cfg.API.Timeout)
	fmt.Fprintf(out, "  Page size: %d\n", cfg.API.PageSize)
	fmt.Fprintf(out, "  Output format: %s\n", cfg.Output.DefaultFormat)
	fmt.Fprintf(out, "  Logging level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Log file: %s\n", cfg.LogFile())
	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		fmt.Fprintf(out, "  Cache: %s (ttl %s)\n", cfg.Cache.Directory, cache.FormatDuration(ttl))
	} else {
		fmt.Fprintln(out, "  Cache: disabled")
	}
	fmt.Fprintf(out, "  Notification ttl: %s\n", cfg.Notifications.TTL)
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after defaults, the config file, .env,
POSTDECK_* environment variables and flags have been applied, as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeStructured(cmd.OutOrStdout(), outputYAML, config.GetGlobalConfig())
		},
	}
}
