// Command mock-api serves a seeded in-memory users and posts backend for
// local development.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/config"
	"github.com/rshade/postdeck/internal/logging"
	"github.com/rshade/postdeck/internal/mockapi"
	"github.com/rshade/postdeck/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop is called explicitly above.
	}
}

type serveOptions struct {
	configPath   string
	addr         string
	users        int
	postsPerUser int
	debug        bool
}

func newRootCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:     "mock-api",
		Short:   "Serve a seeded users and posts backend",
		Version: version.GetVersion(),
		Example: `  # Default: 25 users with 3 posts each on :5001
  mock-api

  # A larger data set on another port
  mock-api --addr :8080 --users 500 --posts-per-user 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ~/.postdeck/config.yaml)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides mock.addr)")
	cmd.Flags().IntVar(&opts.users, "users", 0, "number of seeded users (overrides mock.users)")
	cmd.Flags().IntVar(&opts.postsPerUser, "posts-per-user", 0, "posts seeded per user (overrides mock.posts_per_user)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log every request")

	return cmd
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	cfg, err := config.LoadWithEnv(opts.configPath, os.LookupEnv)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if cmd.Flags().Changed("addr") {
		cfg.Mock.Addr = opts.addr
	}
	if cmd.Flags().Changed("users") {
		cfg.Mock.Users = opts.users
	}
	if cmd.Flags().Changed("posts-per-user") {
		cfg.Mock.PostsPerUser = opts.postsPerUser
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := cfg.Logging.ToLoggingConfig()
	if opts.debug {
		logCfg.Level = "debug"
	}
	logResult := logging.NewLoggerWithPath(logCfg, cmd.ErrOrStderr())
	defer func() { _ = logResult.Close() }()
	logger := logging.ComponentLogger(logResult.Logger, "mock-api")

	users, posts := mockapi.Seed(cfg.Mock.Users, cfg.Mock.PostsPerUser)
	server := mockapi.New(users, posts, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ln, err := net.Listen("tcp", cfg.Mock.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Mock.Addr, err)
	}

	logger.Info().
		Int("users", len(users)).
		Int("posts", len(posts)).
		Str("version", version.GetVersion()).
		Msg("seeded mock backend")

	return mockapi.Serve(cmd.Context(), ln, server.InstrumentedHandler(reg), logger)
}
