package enums

import "fmt"

// PostStatus is the moderation state of a review.
type PostStatus string

const (
	PostStatusActive   PostStatus = "active"
	PostStatusReported PostStatus = "reported"
	PostStatusHidden   PostStatus = "hidden"
)

var validPostStatuss = []PostStatus{
	PostStatusActive,
	PostStatusReported,
	PostStatusHidden,
}

// String implements fmt.Stringer.
func (p PostStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PostStatus.
func (p PostStatus) IsValid() bool {
	for _, candidate := range validPostStatuss {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePostStatus converts raw input into a PostStatus.
func ParsePostStatus(value string) (PostStatus, error) {
	for _, candidate := range validPostStatuss {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid post status %q", value)
}
