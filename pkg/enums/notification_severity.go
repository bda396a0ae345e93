package enums

import "fmt"

// NotificationSeverity drives how a notification is presented.
type NotificationSeverity string

const (
	NotificationSeverityInfo    NotificationSeverity = "info"
	NotificationSeveritySuccess NotificationSeverity = "success"
	NotificationSeverityWarning NotificationSeverity = "warning"
	NotificationSeverityError   NotificationSeverity = "error"
)

var validNotificationSeveritys = []NotificationSeverity{
	NotificationSeverityInfo,
	NotificationSeveritySuccess,
	NotificationSeverityWarning,
	NotificationSeverityError,
}

// String implements fmt.Stringer.
func (n NotificationSeverity) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationSeverity.
func (n NotificationSeverity) IsValid() bool {
	for _, candidate := range validNotificationSeveritys {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationSeverity converts raw input into a NotificationSeverity.
func ParseNotificationSeverity(value string) (NotificationSeverity, error) {
	for _, candidate := range validNotificationSeveritys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification severity %q", value)
}

// SeverityFor picks success or error depending on the outcome of a review.
func SeverityFor(ok bool) NotificationSeverity {
	if ok {
		return NotificationSeveritySuccess
	}
	return NotificationSeverityError
}
