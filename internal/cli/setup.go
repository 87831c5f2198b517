package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/config"
	"github.com/rshade/postdeck/internal/logging"
	"github.com/rshade/postdeck/pkg/version"
)

// StepStatus represents the outcome of a single setup step.
type StepStatus int

const (
	// StepSuccess indicates the step completed successfully.
	StepSuccess StepStatus = iota
	// StepWarning indicates the step completed with a non-fatal issue.
	StepWarning
	// StepSkipped indicates the step was intentionally skipped via flag.
	StepSkipped
	// StepError indicates the step failed.
	StepError
)

// StepResult describes the outcome of executing a single setup step.
type StepResult struct {
	Name     string
	Status   StepStatus
	Message  string
	Critical bool
	Err      error
}

// SetupOptions holds the configuration for the setup command, derived from CLI flags.
type SetupOptions struct {
	SkipBackendCheck bool
	NonInteractive   bool
}

// SetupResult is the aggregate outcome of all setup steps.
type SetupResult struct {
	Steps       []StepResult
	HasErrors   bool
	HasWarnings bool
}

// dirPerm is the permission mode for the postdeck directories.
const dirPerm = 0o700

// formatStatus returns a status marker appropriate for the output mode.
func formatStatus(status StepStatus, nonInteractive bool) string {
	if nonInteractive {
		switch status {
		case StepSuccess:
			return "[OK]"
		case StepWarning:
			return "[WARN]"
		case StepSkipped:
			return "[SKIP]"
		case StepError:
			return "[ERR]"
		default:
			return "[??]"
		}
	}

	switch status {
	case StepSuccess:
		return "\u2713" // ✓
	case StepWarning:
		return "!"
	case StepSkipped:
		return "-"
	case StepError:
		return "\u2717" // ✗
	default:
		return "?"
	}
}

// NewSetupCmd creates the top-level setup command that bootstraps the postdeck environment.
func NewSetupCmd() *cobra.Command {
	var opts SetupOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Bootstrap the postdeck environment",
		Long: `Sets up postdeck by creating its directories, initializing the
configuration file and checking that the backend answers.

This command is idempotent. An existing configuration file is preserved.`,
		Example: `  # Full setup
  postdeck setup

  # CI/CD setup (no TTY-dependent output)
  postdeck setup --non-interactive

  # Setup without contacting the backend
  postdeck setup --skip-backend-check`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NonInteractive, "non-interactive", false,
		"Disable TTY-dependent output (status symbols)")
	cmd.Flags().BoolVar(&opts.SkipBackendCheck, "skip-backend-check", false,
		"Skip the backend reachability check")

	return cmd
}

// runSetup runs every step in order. A failing step does not stop the
// following ones; only a critical failure makes the command fail.
func runSetup(cmd *cobra.Command, opts *SetupOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logging.FromContext(ctx)

	if !opts.NonInteractive && !isTerminal(os.Stdin) {
		opts.NonInteractive = true
	}

	result := &SetupResult{}
	record := func(steps ...StepResult) {
		for _, s := range steps {
			printStep(cmd, s, opts.NonInteractive)
			result.Steps = append(result.Steps, s)
		}
	}

	record(stepDisplayVersion())

	baseDir, err := config.GetConfigDir()
	if err != nil {
		record(StepResult{
			Name:     "Directory creation",
			Status:   StepError,
			Message:  fmt.Sprintf("Cannot locate the config directory: %v", err),
			Critical: true,
			Err:      err,
		})
	} else {
		record(stepCreateDirectories(baseDir)...)
		record(stepInitConfig(filepath.Join(baseDir, "config.yaml")))
	}

	if opts.SkipBackendCheck {
		record(StepResult{
			Name:    "Backend check",
			Status:  StepSkipped,
			Message: "Skipped backend check",
		})
	} else {
		record(stepCheckBackend(cmd))
	}

	for _, s := range result.Steps {
		if s.Status == StepError && s.Critical {
			result.HasErrors = true
		}
		if s.Status == StepWarning {
			result.HasWarnings = true
		}
	}

	printSummary(cmd, result)

	if result.HasErrors {
		log.Error().
			Ctx(ctx).
			Str("component", "setup").
			Msg("setup completed with critical errors")
		return errors.New("setup failed: one or more critical steps failed")
	}

	return nil
}

// printStep outputs a single step's status line.
func printStep(cmd *cobra.Command, step StepResult, nonInteractive bool) {
	marker := formatStatus(step.Status, nonInteractive)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, step.Message)
}

// printSummary outputs the final completion message.
func printSummary(cmd *cobra.Command, result *SetupResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	if result.HasErrors {
		fmt.Fprintln(out, "Setup completed with errors. Review the messages above for remediation steps.")
	} else {
		fmt.Fprintln(out, "Setup complete! Run 'postdeck browse' to get started.")
	}
}

// stepDisplayVersion reports the postdeck version and Go runtime.
func stepDisplayVersion() StepResult {
	return StepResult{
		Name:    "Version display",
		Status:  StepSuccess,
		Message: fmt.Sprintf("postdeck v%s (%s)", version.GetVersion(), runtime.Version()),
	}
}

// stepCreateDirectories creates the config, cache and log directories.
// Returns one StepResult per directory.
func stepCreateDirectories(baseDir string) []StepResult {
	dirs := []string{
		baseDir,
		filepath.Join(baseDir, "cache"),
		filepath.Join(baseDir, "logs"),
	}

	results := make([]StepResult, 0, len(dirs))
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			results = append(results, StepResult{
				Name:     "Directory creation",
				Status:   StepSuccess,
				Message:  fmt.Sprintf("Directory exists: %s", dir),
				Critical: true,
			})
			continue
		}

		if err := os.MkdirAll(dir, dirPerm); err != nil {
			results = append(results, StepResult{
				Name:   "Directory creation",
				Status: StepError,
				Message: fmt.Sprintf(
					"Failed to create %s: %v\n  Try: export %s=/path/to/writable/directory",
					dir, err, config.EnvHome,
				),
				Critical: true,
				Err:      err,
			})
			continue
		}

		results = append(results, StepResult{
			Name:     "Directory creation",
			Status:   StepSuccess,
			Message:  fmt.Sprintf("Created %s", dir),
			Critical: true,
		})
	}

	return results
}

// stepInitConfig writes the default config file if none exists at path.
func stepInitConfig(path string) StepResult {
	if _, err := os.Stat(path); err == nil {
		return StepResult{
			Name:     "Config initialization",
			Status:   StepSuccess,
			Message:  fmt.Sprintf("Config already exists (%s)", path),
			Critical: true,
		}
	}

	cfg := config.New()
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return StepResult{
			Name:     "Config initialization",
			Status:   StepError,
			Message:  fmt.Sprintf("Failed to initialize config: %v", err),
			Critical: true,
			Err:      err,
		}
	}

	return StepResult{
		Name:     "Config initialization",
		Status:   StepSuccess,
		Message:  fmt.Sprintf("Initialized config (%s)", path),
		Critical: true,
	}
}

// stepCheckBackend asks the backend for its user count. An unreachable
// backend is a warning: the configuration may simply point elsewhere.
func stepCheckBackend(cmd *cobra.Command) StepResult {
	baseURL := config.GetGlobalConfig().API.BaseURL

	client, err := newAPIClient(cmd)
	if err != nil {
		return StepResult{
			Name:    "Backend check",
			Status:  StepWarning,
			Message: fmt.Sprintf("Invalid backend URL %s: %v", baseURL, err),
			Err:     err,
		}
	}

	n, err := client.CountUsers(cmd.Context())
	if err != nil {
		return StepResult{
			Name:   "Backend check",
			Status: StepWarning,
			Message: fmt.Sprintf(
				"Backend at %s did not answer: %v\n  Try: postdeck setup --api-url http://host:port, or run mock-api",
				baseURL, err,
			),
			Err: err,
		}
	}

	return StepResult{
		Name:    "Backend check",
		Status:  StepSuccess,
		Message: fmt.Sprintf("Backend at %s is serving %s users", baseURL, formatCount(n)),
	}
}
