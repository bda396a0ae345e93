package enums

import "fmt"

// AccountStatus tracks merchant approval.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusRejected AccountStatus = "rejected"
)

var validAccountStatuss = []AccountStatus{
	AccountStatusActive,
	AccountStatusPending,
	AccountStatusRejected,
}

// String implements fmt.Stringer.
func (a AccountStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AccountStatus.
func (a AccountStatus) IsValid() bool {
	for _, candidate := range validAccountStatuss {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAccountStatus converts raw input into a AccountStatus.
func ParseAccountStatus(value string) (AccountStatus, error) {
	for _, candidate := range validAccountStatuss {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account status %q", value)
}
