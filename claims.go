package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims exposes the token payload without tying callers to the JWT
// library types.
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	Name() string
	Role() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the wire shape of the token payload. The subject carries the
// user ID; email, name, and role ride along so downstream services can
// authorize without a user lookup.
type JWTClaims struct {
	jwt.RegisteredClaims
	UserEmail string `json:"email,omitempty"`
	UserName  string `json:"name,omitempty"`
	UserRole  string `json:"role,omitempty"`
}

func (c *JWTClaims) Subject() string { return c.RegisteredClaims.Subject }
func (c *JWTClaims) UserID() string  { return c.RegisteredClaims.Subject }
func (c *JWTClaims) Email() string   { return c.UserEmail }
func (c *JWTClaims) Name() string    { return c.UserName }
func (c *JWTClaims) Role() string    { return c.UserRole }

func (c *JWTClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}

// IsAdmin reports whether the claims carry the admin role.
func (c *JWTClaims) IsAdmin() bool {
	return UserRole(c.UserRole).IsAdmin()
}
