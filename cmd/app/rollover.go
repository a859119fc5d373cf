package main

import (
	"freight/cmd"

	"github.com/spf13/cobra"
)

func rolloverCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rollover",
		Short: "Reset worker week counters once, outside the schedule",
		RunE: func(c *cobra.Command, _ []string) error {
			config, db, logger, err := bootstrap(*envFile)
			if err != nil {
				return err
			}

			app, err := cmd.NewCompositionRoot(config, db, logger)
			if err != nil {
				return err
			}
			return app.CreateWeekRolloverJob().Run(c.Context())
		},
	}
}
