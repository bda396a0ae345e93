package enums

import "fmt"

// UserRole is the marketplace-wide role of an account.
type UserRole string

const (
	UserRoleGuest    UserRole = "guest"
	UserRoleTraveler UserRole = "traveler"
	UserRoleMerchant UserRole = "merchant"
	UserRoleAdmin    UserRole = "admin"
)

var validUserRoles = []UserRole{
	UserRoleGuest,
	UserRoleTraveler,
	UserRoleMerchant,
	UserRoleAdmin,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

// RequiresApproval reports whether new accounts with this role start pending.
func (u UserRole) RequiresApproval() bool {
	return u == UserRoleMerchant
}
