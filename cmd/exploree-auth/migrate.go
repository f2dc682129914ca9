package main

import (
	"context"

	"github.com/Exploree-Solutions/exploree-auth/config"
	"github.com/Exploree-Solutions/exploree-auth/repository"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		logger, cleanup, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.CreateSchema(context.Background(), db); err != nil {
			return err
		}

		logger.Info("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
