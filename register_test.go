package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/Exploree-Solutions/exploree-auth/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupRepo(t *testing.T) auth.RepositoryManager {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, repository.CreateSchema(context.Background(), db))

	t.Cleanup(func() { _ = db.Close() })

	return repository.NewRepositoryManager(db)
}

// profileFailRepo refuses every profile write so the surrounding transaction
// has to roll back.
type profileFailRepo struct {
	auth.RepositoryManager
}

func (r profileFailRepo) Profiles() auth.Profiles {
	return failingProfiles{r.RepositoryManager.Profiles()}
}

type failingProfiles struct {
	auth.Profiles
}

func (failingProfiles) CreateTx(ctx context.Context, tx bun.Tx, profile *auth.Profile) error {
	return errors.New("profile write refused")
}

func TestRegisterUserHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and profile", func(t *testing.T) {
		repo := setupRepo(t)
		handler := auth.NewRegisterUserHandler(repo)

		user, err := handler.Execute(ctx, auth.RegisterUserMessage{
			FullName:    "Test User",
			Email:       "Test@Example.com",
			Password:    "securePassword123!",
			PhoneNumber: "0911234567",
			Company:     "Acme",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		_, parseErr := uuid.Parse(user.ID)
		assert.NoError(t, parseErr)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, auth.RoleUser, user.Role)
		assert.Equal(t, auth.UserStatusActive, user.Status)
		assert.NotEqual(t, "securePassword123!", user.PasswordHash)

		profile, err := repo.Profiles().GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "+251911234567", profile.PhoneNumber)
		assert.Equal(t, "Acme", profile.Company)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		repo := setupRepo(t)
		handler := auth.NewRegisterUserHandler(repo)

		msg := auth.RegisterUserMessage{
			FullName: "Test User",
			Email:    "test@example.com",
			Password: "securePassword123!",
		}

		_, err := handler.Execute(ctx, msg)
		require.NoError(t, err)

		msg.FullName = "Someone Else"
		_, err = handler.Execute(ctx, msg)

		assert.Equal(t, auth.ErrEmailTaken, err)
	})

	t.Run("duplicate detection is case insensitive", func(t *testing.T) {
		repo := setupRepo(t)
		handler := auth.NewRegisterUserHandler(repo)

		_, err := handler.Execute(ctx, auth.RegisterUserMessage{
			FullName: "Test User",
			Email:    "test@example.com",
			Password: "securePassword123!",
		})
		require.NoError(t, err)

		_, err = handler.Execute(ctx, auth.RegisterUserMessage{
			FullName: "Test User",
			Email:    "TEST@EXAMPLE.COM",
			Password: "securePassword123!",
		})

		assert.Equal(t, auth.ErrEmailTaken, err)
	})

	t.Run("explicit role and status are honored", func(t *testing.T) {
		repo := setupRepo(t)
		handler := auth.NewRegisterUserHandler(repo)

		user, err := handler.Execute(ctx, auth.RegisterUserMessage{
			FullName: "Admin User",
			Email:    "admin@example.com",
			Password: "securePassword123!",
			Role:     auth.RoleSystemAdmin,
			Status:   auth.UserStatusInactive,
		})

		require.NoError(t, err)
		assert.Equal(t, auth.RoleSystemAdmin, user.Role)
		assert.Equal(t, auth.UserStatusInactive, user.Status)
	})

	t.Run("same email derives the same id", func(t *testing.T) {
		repoA := setupRepo(t)
		repoB := setupRepo(t)

		userA, err := auth.NewRegisterUserHandler(repoA).Execute(ctx, auth.RegisterUserMessage{
			FullName: "Test User",
			Email:    "same@example.com",
			Password: "securePassword123!",
		})
		require.NoError(t, err)

		userB, err := auth.NewRegisterUserHandler(repoB).Execute(ctx, auth.RegisterUserMessage{
			FullName: "Test User",
			Email:    "same@example.com",
			Password: "securePassword123!",
		})
		require.NoError(t, err)

		assert.Equal(t, userA.ID, userB.ID)
	})

	t.Run("profile write failure rolls back the user row", func(t *testing.T) {
		repo := setupRepo(t)
		handler := auth.NewRegisterUserHandler(profileFailRepo{repo})

		_, err := handler.Execute(ctx, auth.RegisterUserMessage{
			FullName: "Test User",
			Email:    "test@example.com",
			Password: "securePassword123!",
			Company:  "Acme",
		})
		require.Error(t, err)

		count, err := repo.Users().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("cancelled context aborts registration", func(t *testing.T) {
		repo := setupRepo(t)
		handler := auth.NewRegisterUserHandler(repo)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := handler.Execute(cancelled, auth.RegisterUserMessage{
			FullName: "Test User",
			Email:    "test@example.com",
			Password: "securePassword123!",
		})

		assert.Error(t, err)
	})
}
