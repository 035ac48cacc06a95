package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeReminder NotificationType = "reminder"
)

// Notification is a delivered message, kept until deleted.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]any
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
