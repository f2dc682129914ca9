package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// ServiceKeyHeader carries the shared key on service-to-service calls.
const ServiceKeyHeader = "X-Exploree-Service-Key"

// ServiceAuthorizer checks the shared key trusted internal services present.
// When no key is configured the check always fails; there is no open mode.
type ServiceAuthorizer struct {
	key []byte
}

func NewServiceAuthorizer(cfg Config) *ServiceAuthorizer {
	return &ServiceAuthorizer{key: []byte(cfg.GetServiceKey())}
}

// Authorize reports whether the presented key matches the configured one.
// Both sides must be non-empty. Comparison is constant time.
func (sa *ServiceAuthorizer) Authorize(presented string) bool {
	if len(sa.key) == 0 || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare(sa.key, []byte(presented)) == 1
}

// AuthorizeRequest checks the service key header on a request.
func (sa *ServiceAuthorizer) AuthorizeRequest(c *fiber.Ctx) bool {
	return sa.Authorize(c.Get(ServiceKeyHeader))
}
