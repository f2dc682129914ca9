package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ActivityType labels an audit trail entry.
type ActivityType string

const (
	ActivityLogin          ActivityType = "LOGIN"
	ActivityLogout         ActivityType = "LOGOUT"
	ActivityRegister       ActivityType = "REGISTER"
	ActivityPasswordChange ActivityType = "PASSWORD_CHANGE"
	ActivityProfileUpdate  ActivityType = "PROFILE_UPDATE"
	ActivityAdminAction    ActivityType = "ADMIN_ACTION"
)

// ClientInfo is the request metadata attached to activity entries.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// GetClientInfo resolves the caller's address, preferring the first
// X-Forwarded-For hop so entries survive the reverse proxy.
func GetClientInfo(c *fiber.Ctx) ClientInfo {
	ip := c.Get("X-Forwarded-For")
	if ip != "" {
		if idx := strings.Index(ip, ","); idx >= 0 {
			ip = ip[:idx]
		}
		ip = strings.TrimSpace(ip)
	}

	if ip == "" {
		ip = c.Get("X-Real-Ip")
	}

	if ip == "" {
		ip = c.IP()
	}

	if ip == "" {
		ip = "unknown"
	}

	agent := c.Get(fiber.HeaderUserAgent)
	if agent == "" {
		agent = "unknown"
	}

	return ClientInfo{
		IPAddress: ip,
		UserAgent: agent,
	}
}

// ActivitySink receives audit entries. Implementations must tolerate
// concurrent calls.
type ActivitySink interface {
	Record(ctx context.Context, entry *ActivityLog) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, entry *ActivityLog) error

func (f ActivitySinkFunc) Record(ctx context.Context, entry *ActivityLog) error {
	return f(ctx, entry)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(ctx context.Context, entry *ActivityLog) error {
	return nil
}

func normalizeActivitySink(sink ActivitySink) ActivitySink {
	if sink == nil {
		return noopActivitySink{}
	}
	return sink
}

// RecordActivity writes an audit entry, filling in the ID and timestamp.
// Failures are logged and swallowed; the audit trail never blocks or fails
// the operation that produced it.
func RecordActivity(ctx context.Context, sink ActivitySink, logger Logger, entry *ActivityLog) {
	if entry == nil {
		return
	}

	if logger == nil {
		logger = defLogger{}
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := normalizeActivitySink(sink).Record(ctx, entry); err != nil {
		logger.Warn("activity record failed: type=%s user=%s err=%v", entry.Type, entry.UserID, err)
	}
}
