package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const claimsContextKey contextKey = "auth:claims"

// ClaimsLocalsKey is where middleware parks validated claims on the request.
const ClaimsLocalsKey = "claims"

// WithClaims stores validated claims on a context.
func WithClaims(ctx context.Context, claims *JWTClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves claims stored with WithClaims.
func ClaimsFromContext(ctx context.Context) (*JWTClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*JWTClaims)
	return claims, ok
}

// ClaimsFromFiber retrieves the claims the auth middleware stored on the
// request, or nil when the request is unauthenticated.
func ClaimsFromFiber(c *fiber.Ctx) *JWTClaims {
	claims, _ := c.Locals(ClaimsLocalsKey).(*JWTClaims)
	return claims
}
