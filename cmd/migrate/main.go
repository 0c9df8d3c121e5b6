package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/postgres"
	"github.com/rentdesk/rentdesk/migrations"
	"github.com/spf13/cobra"
)

const migrateTimeout = 2 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the rentdesk database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newUpCmd(), newStatusCmd())
	return root
}

func newUpCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := migrations.All()
			if err != nil {
				return err
			}

			if dryRun {
				for _, m := range all {
					fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n%s\n", m.Version, m.SQL)
				}
				return nil
			}

			return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator, log *logger.Logger) error {
				applied, err := m.Up(ctx, all)
				if err != nil {
					return err
				}
				log.Infow("migrations applied", "count", len(applied), "versions", applied)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print migration SQL without executing it")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations not applied yet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := migrations.All()
			if err != nil {
				return err
			}

			return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator, _ *logger.Logger) error {
				pending, err := m.Pending(ctx, all)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
					return nil
				}
				for _, p := range pending {
					fmt.Fprintf(cmd.OutOrStdout(), "pending %s\n", p.Version)
				}
				return nil
			})
		},
	}
}

func withMigrator(parent context.Context, fn func(context.Context, *postgres.Migrator, *logger.Logger) error) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Infow("connecting to database", "host", cfg.Postgres.Host, "dbname", cfg.Postgres.DBName)
	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer db.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, migrateTimeout)
	defer cancel()

	return fn(ctx, postgres.NewMigrator(db, log), log)
}
