package auth

// UserRole is the account's platform role
type UserRole string

const (
	// RoleUser is the default role assigned at registration
	RoleUser UserRole = "USER"
	// RoleSystemAdmin grants access to the admin console endpoints
	RoleSystemAdmin UserRole = "SYSTEM_ADMIN"
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleSystemAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants admin-console access
func (r UserRole) IsAdmin() bool {
	return r == RoleSystemAdmin
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{RoleUser, RoleSystemAdmin}
}
