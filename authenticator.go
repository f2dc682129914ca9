package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// UserStore is the slice of persistence the authenticator needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	TrackSuccessfulLogin(ctx context.Context, id string) error
}

// Auther authenticates credentials against the user store and mints tokens.
type Auther struct {
	store        UserStore
	tokenService TokenService
	ttl          time.Duration
	logger       Logger
}

// NewAuthenticator builds the default authenticator. The token TTL comes from
// the configured expiration in hours.
func NewAuthenticator(store UserStore, cfg Config) *Auther {
	return &Auther{
		store:        store,
		tokenService: NewTokenService(cfg),
		ttl:          time.Duration(cfg.GetTokenExpiration()) * time.Hour,
		logger:       defLogger{},
	}
}

// WithLogger replaces the default logger.
func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithTokenService replaces the token service. Used by tests to pin the clock.
func (a *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		a.tokenService = ts
	}
	return a
}

func (a *Auther) TokenService() TokenService {
	return a.tokenService
}

// Login verifies credentials and returns a signed token plus the account.
// The status gate runs before the password comparison: suspended and inactive
// accounts get their status error even on a wrong password, and unknown
// emails share an error with bad passwords.
func (a *Auther) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up account")
	}

	if err := statusAuthError(user.EnsureStatus()); err != nil {
		return "", nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := a.store.TrackSuccessfulLogin(ctx, user.ID); err != nil {
		a.logger.Warn("failed to track login for %s: %v", user.ID, err)
	}

	token, err := a.tokenService.Generate(userIdentity{user}, a.ttl)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// userIdentity adapts a User record to the Identity interface.
type userIdentity struct {
	user *User
}

func (u userIdentity) ID() string    { return u.user.ID }
func (u userIdentity) Name() string  { return u.user.FullName }
func (u userIdentity) Email() string { return u.user.Email }
func (u userIdentity) Role() string  { return string(u.user.Role) }

// NewIdentity wraps a User as an Identity.
func NewIdentity(user *User) Identity {
	return userIdentity{user}
}
