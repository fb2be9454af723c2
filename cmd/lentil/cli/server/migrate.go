package server

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mwantia/lentil/internal/bootstrap"
	"github.com/mwantia/lentil/pkg/db/migrations"
	"github.com/mwantia/lentil/pkg/log"
	"github.com/spf13/cobra"

	config "github.com/mwantia/lentil/internal/config/server"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage metadata store migrations",
		Long:  "Apply, roll back or inspect the schema migrations of the configured metadata store.",
	}

	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateRollbackCommand())
	cmd.AddCommand(newMigrateStatusCommand())

	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrations.Migrator, l log.LoggerService) error {
				if err := m.Migrate(cmd.Context()); err != nil {
					return err
				}

				l.Info("All migrations applied")
				return nil
			})
		},
	}
}

func newMigrateRollbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrations.Migrator, l log.LoggerService) error {
				if err := m.Rollback(cmd.Context()); err != nil {
					return err
				}

				l.Info("Rolled back last migration")
				return nil
			})
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrations.Migrator, l log.LoggerService) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tAPPLIED\tDESCRIPTION")
				for _, status := range statuses {
					fmt.Fprintf(w, "%d\t%t\t%s\n", status.Version, status.Applied, status.Description)
				}
				return w.Flush()
			})
		},
	}
}

func withMigrator(cmd *cobra.Command, fn func(*migrations.Migrator, log.LoggerService) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server configuration: %w", err)
	}

	l := log.NewTerminalLoggerService("migrate", cfg.Log, cmd.ErrOrStderr())

	st, err := bootstrap.OpenStore(ctx, cfg.Metadata, l)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(migrations.NewMigrator(st.DB()), l)
}
