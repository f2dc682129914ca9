package auth_test

import (
	"context"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/stretchr/testify/mock"
)

// MockIdentity implements auth.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Role() string {
	args := m.Called()
	return args.String(0)
}

// MockLogger implements auth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// MockUserStore implements auth.UserStore for testing
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) TrackSuccessfulLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// testConfig implements auth.Config for testing
type testConfig struct {
	signingKey   string
	expiration   int
	issuer       string
	serviceKey   string
	cookieName   string
	cookieSecure bool
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey: "test-signing-key",
		expiration: 24,
		issuer:     "test-issuer",
		serviceKey: "test-service-key",
		cookieName: "token",
	}
}

func (c *testConfig) GetSigningKey() string   { return c.signingKey }
func (c *testConfig) GetTokenExpiration() int { return c.expiration }
func (c *testConfig) GetIssuer() string       { return c.issuer }
func (c *testConfig) GetServiceKey() string   { return c.serviceKey }
func (c *testConfig) GetCookieName() string   { return c.cookieName }
func (c *testConfig) GetCookieSecure() bool   { return c.cookieSecure }
