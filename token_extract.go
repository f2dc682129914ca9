package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenExtractor pulls a raw token out of a request, returning "" when the
// transport it covers is absent.
type TokenExtractor func(c *fiber.Ctx) string

// FromAuthHeader reads the Authorization header, stripping the Bearer scheme.
func FromAuthHeader() TokenExtractor {
	return func(c *fiber.Ctx) string {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ""
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return ""
		}

		return strings.TrimSpace(header[len(prefix):])
	}
}

// FromCookie reads the token from the named cookie.
func FromCookie(name string) TokenExtractor {
	return func(c *fiber.Ctx) string {
		return c.Cookies(name)
	}
}

// ExtractToken runs extractors in order and returns the first hit. Header
// credentials win over cookies so API clients can override a stale session.
func ExtractToken(c *fiber.Ctx, extractors ...TokenExtractor) string {
	for _, extract := range extractors {
		if token := extract(c); token != "" {
			return token
		}
	}
	return ""
}

// DefaultExtractors is the standard transport chain: bearer header first,
// session cookie second.
func DefaultExtractors(cookieName string) []TokenExtractor {
	return []TokenExtractor{
		FromAuthHeader(),
		FromCookie(cookieName),
	}
}
