package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sumesh-12/energy-demand-prediction/internal/logging"
	"github.com/sumesh-12/energy-demand-prediction/internal/store"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the accounts database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return errors.New("database.url (FORECASTER_DATABASE_URL) is not set")
			}
			log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			defer log.Sync()
			return store.Migrate(cfg.Database.URL, down, log)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "revert all migrations")
	return cmd
}
