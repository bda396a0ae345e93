package enums

import "fmt"

// AttractionStatus gates catalogue visibility.
type AttractionStatus string

const (
	AttractionStatusActive   AttractionStatus = "active"
	AttractionStatusPending  AttractionStatus = "pending"
	AttractionStatusRejected AttractionStatus = "rejected"
)

var validAttractionStatuss = []AttractionStatus{
	AttractionStatusActive,
	AttractionStatusPending,
	AttractionStatusRejected,
}

// String implements fmt.Stringer.
func (a AttractionStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AttractionStatus.
func (a AttractionStatus) IsValid() bool {
	for _, candidate := range validAttractionStatuss {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAttractionStatus converts raw input into a AttractionStatus.
func ParseAttractionStatus(value string) (AttractionStatus, error) {
	for _, candidate := range validAttractionStatuss {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attraction status %q", value)
}
