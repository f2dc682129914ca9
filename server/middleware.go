package server

import (
	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/gofiber/fiber/v2"
)

// Protected resolves a token from the bearer header or session cookie,
// validates it, and parks the claims on the request.
func (s *Server) Protected() fiber.Handler {
	extractors := auth.DefaultExtractors(s.AuthCfg.GetCookieName())

	return func(c *fiber.Ctx) error {
		token := auth.ExtractToken(c, extractors...)
		if token == "" {
			return auth.ErrMissingToken
		}

		claims, err := s.Auther.TokenService().Validate(token)
		if err != nil {
			return err
		}

		c.Locals(auth.ClaimsLocalsKey, claims)
		c.SetUserContext(auth.WithClaims(c.UserContext(), claims))

		return c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Must run after Protected.
func (s *Server) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := auth.ClaimsFromFiber(c)
		if claims == nil {
			return auth.ErrMissingToken
		}

		if !claims.IsAdmin() {
			return auth.ErrForbidden
		}

		return c.Next()
	}
}
