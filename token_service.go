package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService issues and validates signed tokens for identities.
type TokenService interface {
	Generate(identity Identity, ttl time.Duration) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (*JWTClaims, error)
}

// TokenServiceImpl signs and verifies HS256 tokens with a shared secret.
type TokenServiceImpl struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

// NewTokenService builds a token service from the auth configuration.
func NewTokenService(cfg Config) *TokenServiceImpl {
	return &TokenServiceImpl{
		signingKey: []byte(cfg.GetSigningKey()),
		issuer:     cfg.GetIssuer(),
		now:        time.Now,
	}
}

// WithClock overrides the time source. Used by tests to step past expiry.
func (ts *TokenServiceImpl) WithClock(now func() time.Time) *TokenServiceImpl {
	ts.now = now
	return ts
}

// Generate issues a token for the identity, valid for ttl from now.
func (ts *TokenServiceImpl) Generate(identity Identity, ttl time.Duration) (string, error) {
	issued := ts.now()

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID(),
			Issuer:    ts.issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
		UserEmail: identity.Email(),
		UserName:  identity.Name(),
		UserRole:  identity.Role(),
	}

	return ts.SignClaims(claims)
}

// SignClaims signs an already populated claim set.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Validate parses and verifies a token string. Only HMAC signatures are
// accepted; a token signed with any other method fails as malformed.
func (ts *TokenServiceImpl) Validate(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, jwt.WithTimeFunc(ts.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(ErrTokenMalformed.Code)
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
