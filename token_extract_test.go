package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runExtraction(t *testing.T, header, cookie string) string {
	t.Helper()

	var got string

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = auth.ExtractToken(c, auth.DefaultExtractors("token")...)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return got
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{
			name:   "bearer header",
			header: "Bearer header-token",
			want:   "header-token",
		},
		{
			name:   "cookie only",
			cookie: "cookie-token",
			want:   "cookie-token",
		},
		{
			name:   "header wins over cookie",
			header: "Bearer header-token",
			cookie: "cookie-token",
			want:   "header-token",
		},
		{
			name:   "header without bearer scheme falls through to cookie",
			header: "Basic dXNlcjpwYXNz",
			cookie: "cookie-token",
			want:   "cookie-token",
		},
		{
			name: "no credentials",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runExtraction(t, tt.header, tt.cookie)
			assert.Equal(t, tt.want, got)
		})
	}
}
