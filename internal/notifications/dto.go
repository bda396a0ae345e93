package notifications

import (
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/enums"
)

// Notification is one inbox entry.
type Notification struct {
	ID        string                     `json:"id"`
	UserID    string                     `json:"userId"`
	Title     string                     `json:"title"`
	Body      string                     `json:"message"`
	Read      bool                       `json:"read"`
	Severity  enums.NotificationSeverity `json:"type"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// Message is what callers hand the dispatcher.
type Message struct {
	Title    string
	Body     string
	Severity enums.NotificationSeverity
}
