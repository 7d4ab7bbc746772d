package enums

import "fmt"

// AdminRole controls what an authenticated operator may do in the admin API.
type AdminRole string

const (
	AdminRoleAdmin  AdminRole = "admin"
	AdminRoleEditor AdminRole = "editor"
	AdminRoleViewer AdminRole = "viewer"
)

var validAdminRoles = []AdminRole{
	AdminRoleAdmin,
	AdminRoleEditor,
	AdminRoleViewer,
}

// String implements fmt.Stringer.
func (r AdminRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known AdminRole.
func (r AdminRole) IsValid() bool {
	for _, candidate := range validAdminRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// CanWrite reports whether the role may mutate catalog data.
func (r AdminRole) CanWrite() bool {
	return r == AdminRoleAdmin || r == AdminRoleEditor
}

// ParseAdminRole converts raw input into an AdminRole.
func ParseAdminRole(value string) (AdminRole, error) {
	for _, candidate := range validAdminRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin role %q", value)
}
