package enums

import "fmt"

// ModerationAction is an admin decision on reported content.
type ModerationAction string

const (
	ModerationActionApprove ModerationAction = "approve"
	ModerationActionDelete  ModerationAction = "delete"
)

var validModerationActions = []ModerationAction{
	ModerationActionApprove,
	ModerationActionDelete,
}

// String implements fmt.Stringer.
func (m ModerationAction) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ModerationAction.
func (m ModerationAction) IsValid() bool {
	for _, candidate := range validModerationActions {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseModerationAction converts raw input into a ModerationAction.
func ParseModerationAction(value string) (ModerationAction, error) {
	for _, candidate := range validModerationActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid moderation action %q", value)
}
