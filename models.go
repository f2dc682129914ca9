package auth

import (
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"github.com/uptrace/bun"
)

// User is the account record. PasswordHash never leaves the service.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u" json:"-"`

	ID                 string     `bun:"id,pk" json:"id"`
	FullName           string     `bun:"full_name,notnull" json:"fullName"`
	Email              string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash       string     `bun:"password_hash,notnull" json:"-"`
	Role               UserRole   `bun:"role,notnull,default:'USER'" json:"role"`
	Status             UserStatus `bun:"status,notnull,default:'ACTIVE'" json:"status"`
	ForcePasswordReset bool       `bun:"force_password_reset,notnull,default:false" json:"forcePasswordReset"`
	LastLoginAt        *time.Time `bun:"last_login_at,nullzero" json:"lastLoginAt,omitempty"`
	CreatedAt          time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt          time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// EnsureStatus backfills the zero value so records created before the status
// column existed still authenticate.
func (u *User) EnsureStatus() UserStatus {
	if u.Status == "" {
		return UserStatusActive
	}
	return u.Status
}

// Profile holds the extended account attributes kept outside the credential
// record. Created in the same transaction as the user.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p" json:"-"`

	ID          string    `bun:"id,pk" json:"id"`
	UserID      string    `bun:"user_id,notnull,unique" json:"userId"`
	PhoneNumber string    `bun:"phone_number" json:"phoneNumber,omitempty"`
	Company     string    `bun:"company" json:"company,omitempty"`
	Bio         string    `bun:"bio" json:"bio,omitempty"`
	AvatarURL   string    `bun:"avatar_url" json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// ActivityLog is one audit trail entry. Writes are best effort.
type ActivityLog struct {
	bun.BaseModel `bun:"table:activity_logs,alias:al" json:"-"`

	ID        string         `bun:"id,pk" json:"id"`
	UserID    string         `bun:"user_id,notnull" json:"userId"`
	Type      ActivityType   `bun:"type,notnull" json:"type"`
	Details   string         `bun:"details" json:"details,omitempty"`
	Metadata  map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	IPAddress string         `bun:"ip_address" json:"ipAddress,omitempty"`
	UserAgent string         `bun:"user_agent" json:"userAgent,omitempty"`
	CreatedAt time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// WaitlistEntry records interest in a service that has not launched yet.
// Unique per (email, service).
type WaitlistEntry struct {
	bun.BaseModel `bun:"table:waitlist_entries,alias:w" json:"-"`

	ID        string    `bun:"id,pk" json:"id"`
	Email     string    `bun:"email,notnull" json:"email"`
	Service   string    `bun:"service,notnull" json:"service"`
	Name      string    `bun:"name" json:"name,omitempty"`
	UserID    string    `bun:"user_id" json:"userId,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// WaitlistServices is the closed set of services accepting signups.
var WaitlistServices = []string{"jobs", "tender", "events", "opportunities"}

// ValidService reports whether s names a waitlistable service.
func ValidService(s string) bool {
	for _, svc := range WaitlistServices {
		if svc == s {
			return true
		}
	}
	return false
}

// defaultPhoneRegion is used when a number has no international prefix.
const defaultPhoneRegion = "ET"

// NormalizePhone formats a phone number to E.164. Numbers that cannot be
// parsed are stored as given; a bad phone never blocks registration.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
