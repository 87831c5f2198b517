// Package cli implements the postdeck command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/postdeck/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Persistent flag names.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagAPIURL = "api-url"
	flagOutput = "output"
)

// annotationLogToFile marks commands that own the terminal, such as the
// browser, so logs go to the log file instead of stderr.
const annotationLogToFile = "postdeck/log-to-file"

// NewRootCmd creates the root Cobra command for the postdeck CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for
// testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "postdeck",
		Short:         "Browse users and manage their posts",
		Long:          "postdeck: a terminal client for the users and posts backend",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(cmd, lookupEnv); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			logMetrics(cmd)
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(flagConfig, "", "config file (default ~/.postdeck/config.yaml)")
	cmd.PersistentFlags().String(flagAPIURL, "", "backend base URL (overrides config and env)")
	cmd.PersistentFlags().StringP(flagOutput, "o", "", "output format: table, json or yaml")

	cmd.AddCommand(
		newUsersCmd(),
		newPostsCmd(),
		NewBrowseCmd(),
		NewVersionCmd(),
		NewSetupCmd(),
		newConfigCmd(),
		newCacheCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Browse users and posts interactively
  postdeck browse

  # List the second page of users, 10 per page
  postdeck users list --page 2 --limit 10

  # Show one user as JSON
  postdeck users get 3 -o json

  # Create a post
  postdeck posts create --user 3 --title "Hello" --body "First post"

  # Delete a post
  postdeck posts delete 12

  # Talk to another backend
  postdeck users count --api-url http://api.internal:5001

  # Initialize configuration
  postdeck config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
