package main

import (
	"context"
	"os"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/Exploree-Solutions/exploree-auth/config"
	"github.com/Exploree-Solutions/exploree-auth/repository"
	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/cobra"
)

const seedAdminEmail = "admin@exploree.com"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the bootstrap admin account",
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

		ctx := context.Background()

		if err := repository.CreateSchema(ctx, db); err != nil {
			return err
		}

		repo := repository.NewRepositoryManager(db)
		repo.MustValidate()

		password := os.Getenv("SEED_ADMIN_PASSWORD")
		if password == "" {
			password = "ChangeMe123!"
		}

		handler := auth.NewRegisterUserHandler(repo)
		user, err := handler.Execute(ctx, auth.RegisterUserMessage{
			FullName: "System Admin",
			Email:    seedAdminEmail,
			Password: password,
			Role:     auth.RoleSystemAdmin,
		})
		if err != nil {
			if goerrors.Is(err, auth.ErrEmailTaken) {
				logger.Info("admin account already exists")
				return nil
			}
			return err
		}

		// The bootstrap password is not meant to survive first login.
		user.ForcePasswordReset = true
		if err := repo.Users().Update(ctx, user, "force_password_reset"); err != nil {
			return err
		}

		logger.Info("seeded admin account %s", user.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
