package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/Exploree-Solutions/exploree-auth/config"
	"github.com/Exploree-Solutions/exploree-auth/repository"
	"github.com/Exploree-Solutions/exploree-auth/server"
	"github.com/spf13/cobra"
)

var serveDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
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

		repo := repository.NewRepositoryManager(db)
		repo.MustValidate()

		auther := auth.NewAuthenticator(repo.Users(), cfg).WithLogger(logger)

		srv := server.New(repo, auther, cfg,
			server.WithLogger(logger),
			server.WithDebug(serveDebug),
		)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-quit
			logger.Info("shutting down")
			if err := srv.Shutdown(); err != nil {
				logger.Error("shutdown error: %v", err)
			}
		}()

		return srv.Listen(":" + cfg.Port)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "log request payloads and errors verbosely")
	rootCmd.AddCommand(serveCmd)
}
