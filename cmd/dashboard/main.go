package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/fpl-dashboard/internal/config"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
	"github.com/preston-bernstein/fpl-dashboard/internal/server"
)

const serviceName = "fpl-dashboard"

// Overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Fantasy football league analytics dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, envFiles)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files loaded before the environment is read")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the dashboard, JSON API and background poller",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd, envFiles)
			},
		},
		&cobra.Command{
			Use:   "snapshot",
			Short: "Fetch the league once and write today's snapshot",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSnapshot(cmd, envFiles)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, version)
			},
		},
	)
	return root
}

func loadConfig(cmd *cobra.Command, envFiles []string) (config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return config.Config{}, nil, fmt.Errorf("load env files: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: version,
		Output:  cmd.ErrOrStderr(),
	})
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, envFiles []string) error {
	cfg, logger, err := loadConfig(cmd, envFiles)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	srv.Run(ctx, stop)
	return nil
}

func runSnapshot(cmd *cobra.Command, envFiles []string) error {
	cfg, logger, err := loadConfig(cmd, envFiles)
	if err != nil {
		return err
	}
	cycle, err := server.WriteSnapshot(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote snapshot %s (%d managers)\n", cycle.Date, cycle.Managers)
	return nil
}
