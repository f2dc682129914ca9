package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// UserListCriteria filters and pages the admin user listing.
type UserListCriteria struct {
	Search    string
	Role      UserRole
	Status    UserStatus
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ActivityListCriteria filters and pages the admin activity listing.
type ActivityListCriteria struct {
	UserID string
	Type   ActivityType
	Page   int
	Limit  int
}

// Users is the account persistence surface.
type Users interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CreateTx(ctx context.Context, tx bun.Tx, user *User) error
	Update(ctx context.Context, user *User, columns ...string) error
	UpdateTx(ctx context.Context, tx bun.Tx, user *User, columns ...string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, criteria UserListCriteria) ([]*User, int, error)
	TrackSuccessfulLogin(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status UserStatus) (int, error)
	CountByRole(ctx context.Context, role UserRole) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	CountForcePasswordReset(ctx context.Context) (int, error)
}

// Profiles is the extended attribute persistence surface.
type Profiles interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	CreateTx(ctx context.Context, tx bun.Tx, profile *Profile) error
	UpdateTx(ctx context.Context, tx bun.Tx, profile *Profile, columns ...string) error
}

// ActivityLogs is the audit trail persistence surface.
type ActivityLogs interface {
	Record(ctx context.Context, entry *ActivityLog) error
	List(ctx context.Context, criteria ActivityListCriteria) ([]*ActivityLog, int, error)
	Recent(ctx context.Context, limit int) ([]*ActivityLog, error)
	CountSince(ctx context.Context, activityType ActivityType, since time.Time) (int, error)
}

// Waitlist is the service waitlist persistence surface.
type Waitlist interface {
	GetByEmailAndService(ctx context.Context, email, service string) (*WaitlistEntry, error)
	Create(ctx context.Context, entry *WaitlistEntry) error
	CountByService(ctx context.Context, service string) (int, error)
}

// RepositoryManager aggregates the repositories and exposes transaction
// scoping for operations that span more than one table.
type RepositoryManager interface {
	Users() Users
	Profiles() Profiles
	ActivityLogs() ActivityLogs
	Waitlist() Waitlist
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
	MustValidate()
}
