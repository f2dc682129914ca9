package auth_test

import (
	"context"
	"errors"
	"testing"

	auth "github.com/Exploree-Solutions/exploree-auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeUser(t *testing.T, password string) *auth.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return &auth.User{
		ID:           "user-123",
		FullName:     "Test User",
		Email:        "test@example.com",
		PasswordHash: hash,
		Role:         auth.RoleUser,
		Status:       auth.UserStatusActive,
	}
}

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()
	password := "securePassword123!"

	t.Run("successful login returns token and user", func(t *testing.T) {
		user := activeUser(t, password)

		store := &MockUserStore{}
		store.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		store.On("TrackSuccessfulLogin", mock.Anything, user.ID).Return(nil)

		auther := auth.NewAuthenticator(store, newTestConfig())

		token, loggedIn, err := auther.Login(ctx, user.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, loggedIn.ID)

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID())
		assert.Equal(t, string(auth.RoleUser), claims.Role())

		store.AssertExpectations(t)
	})

	t.Run("unknown email yields the generic credential error", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, goerrors.New("not found", goerrors.CategoryNotFound))

		auther := auth.NewAuthenticator(store, newTestConfig())

		_, _, err := auther.Login(ctx, "nobody@example.com", password)

		assert.Equal(t, auth.ErrInvalidCredentials, err)
	})

	t.Run("wrong password yields the generic credential error", func(t *testing.T) {
		user := activeUser(t, password)

		store := &MockUserStore{}
		store.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		auther := auth.NewAuthenticator(store, newTestConfig())

		_, _, err := auther.Login(ctx, user.Email, "wrongPassword!")

		assert.Equal(t, auth.ErrInvalidCredentials, err)
	})

	t.Run("suspended account is rejected before the password check", func(t *testing.T) {
		user := activeUser(t, password)
		user.Status = auth.UserStatusSuspended

		store := &MockUserStore{}
		store.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		auther := auth.NewAuthenticator(store, newTestConfig())

		_, _, err := auther.Login(ctx, user.Email, "wrongPassword!")
		assert.Equal(t, auth.ErrUserSuspended, err)

		_, _, err = auther.Login(ctx, user.Email, password)
		assert.Equal(t, auth.ErrUserSuspended, err)
	})

	t.Run("inactive account is rejected with its own message", func(t *testing.T) {
		user := activeUser(t, password)
		user.Status = auth.UserStatusInactive

		store := &MockUserStore{}
		store.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		auther := auth.NewAuthenticator(store, newTestConfig())

		_, _, err := auther.Login(ctx, user.Email, password)

		assert.Equal(t, auth.ErrUserInactive, err)
	})

	t.Run("blank status is treated as active", func(t *testing.T) {
		user := activeUser(t, password)
		user.Status = ""

		store := &MockUserStore{}
		store.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		store.On("TrackSuccessfulLogin", mock.Anything, user.ID).Return(nil)

		auther := auth.NewAuthenticator(store, newTestConfig())

		_, _, err := auther.Login(ctx, user.Email, password)

		assert.NoError(t, err)
	})

	t.Run("login tracking failure does not fail the login", func(t *testing.T) {
		user := activeUser(t, password)

		store := &MockUserStore{}
		store.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		store.On("TrackSuccessfulLogin", mock.Anything, user.ID).Return(errors.New("db down"))

		logger := &MockLogger{}
		logger.On("Warn", mock.Anything, mock.Anything).Return()

		auther := auth.NewAuthenticator(store, newTestConfig()).WithLogger(logger)

		token, _, err := auther.Login(ctx, user.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		logger.AssertCalled(t, "Warn", mock.Anything, mock.Anything)
	})

	t.Run("store failure surfaces as internal error", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByEmail", mock.Anything, "test@example.com").
			Return(nil, errors.New("connection refused"))

		auther := auth.NewAuthenticator(store, newTestConfig())

		_, _, err := auther.Login(ctx, "test@example.com", password)

		assert.Error(t, err)
		assert.NotEqual(t, auth.ErrInvalidCredentials, err)
	})
}
