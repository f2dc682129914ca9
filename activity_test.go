package auth_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetClientInfo(t *testing.T) {
	app := fiber.New()

	var info auth.ClientInfo
	app.Get("/", func(c *fiber.Ctx) error {
		info = auth.GetClientInfo(c)
		return c.SendString("ok")
	})

	t.Run("headers are carried through", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		req.Header.Set(fiber.HeaderUserAgent, "exploree-test/1.0")

		_, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, "203.0.113.7", info.IPAddress)
		assert.Equal(t, "exploree-test/1.0", info.UserAgent)
	})

	t.Run("missing user agent falls back to unknown", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)

		_, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, "unknown", info.UserAgent)
	})
}

func TestRecordActivity(t *testing.T) {
	t.Run("fills in id and timestamp", func(t *testing.T) {
		var recorded *auth.ActivityLog

		sink := auth.ActivitySinkFunc(func(ctx context.Context, entry *auth.ActivityLog) error {
			recorded = entry
			return nil
		})

		auth.RecordActivity(context.Background(), sink, nil, &auth.ActivityLog{
			UserID: "user-123",
			Type:   auth.ActivityLogin,
		})

		assert.NotNil(t, recorded)
		assert.NotEmpty(t, recorded.ID)
		assert.False(t, recorded.CreatedAt.IsZero())
		assert.Equal(t, auth.ActivityLogin, recorded.Type)
	})

	t.Run("sink failure is swallowed and logged", func(t *testing.T) {
		sink := auth.ActivitySinkFunc(func(ctx context.Context, entry *auth.ActivityLog) error {
			return errors.New("db down")
		})

		logger := &MockLogger{}
		logger.On("Warn", mock.Anything, mock.Anything).Return()

		auth.RecordActivity(context.Background(), sink, logger, &auth.ActivityLog{
			UserID: "user-123",
			Type:   auth.ActivityLogout,
		})

		logger.AssertCalled(t, "Warn", mock.Anything, mock.Anything)
	})

	t.Run("nil sink is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			auth.RecordActivity(context.Background(), nil, nil, &auth.ActivityLog{
				UserID: "user-123",
				Type:   auth.ActivityRegister,
			})
		})
	})

	t.Run("nil entry is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			auth.RecordActivity(context.Background(), nil, nil, nil)
		})
	})
}
