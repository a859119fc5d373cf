package main

import (
	"freight/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			_, db, logger, err := bootstrap(*envFile)
			if err != nil {
				return err
			}

			if err = postgres.Migrate(c.Context(), db); err != nil {
				return err
			}
			logger.InfoContext(c.Context(), "Schema migrated")
			return nil
		},
	}
}
