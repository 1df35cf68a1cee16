package main

import (
	"fmt"

	"credit-application-system/internal/infrastructure/database/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := initializeApp(opts.configPath)
			if err != nil {
				return err
			}

			dbPool, err := initializeDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeDatabase(dbPool, logger)

			applied, err := postgres.Migrate(cmd.Context(), dbPool, logger)
			if err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
			return nil
		},
	}
}
