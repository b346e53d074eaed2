package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	libdb "energytrack/backend/libs/db"
	"energytrack/backend/services/cost-service/internal/config"
	"energytrack/backend/services/cost-service/internal/db"
)

func newMigrateCmd(_ *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the cost service schema",
	}
	for _, direction := range []libdb.MigrationDirection{libdb.MigrateUp, libdb.MigrateDown, libdb.MigrateStatus} {
		cmd.AddCommand(newMigrateDirectionCmd(direction))
	}
	return cmd
}

func newMigrateDirectionCmd(direction libdb.MigrationDirection) *cobra.Command {
	short := map[libdb.MigrationDirection]string{
		libdb.MigrateUp:     "Apply all pending migrations",
		libdb.MigrateDown:   "Roll back the latest migration",
		libdb.MigrateStatus: "Show applied and pending migrations",
	}[direction]

	return &cobra.Command{
		Use:   string(direction),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			sqlDB, err := db.NewPostgres(cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			defer sqlDB.Close()

			return db.Migrate(cmd.Context(), sqlDB, direction)
		},
	}
}
