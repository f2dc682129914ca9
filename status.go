package auth

// UserStatus is the account lifecycle status
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// IsValid checks the status against the closed enumeration
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	default:
		return false
	}
}

// ParseStatus safely parses a string into a UserStatus type
func ParseStatus(statusStr string) (UserStatus, bool) {
	status := UserStatus(statusStr)
	return status, status.IsValid()
}

// statusAuthError maps a non-ACTIVE status to its login rejection. The gate
// runs immediately after account lookup, before any password comparison, so
// disabled accounts never pay the hashing cost.
func statusAuthError(status UserStatus) error {
	switch status {
	case UserStatusSuspended:
		return ErrUserSuspended
	case UserStatusInactive:
		return ErrUserInactive
	default:
		return nil
	}
}
