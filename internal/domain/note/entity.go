package note

import "time"

// Note is a free-text memo with an optional one-shot reminder.
// RemindedAt is set once the reminder has been delivered.
type Note struct {
	ID         string
	Title      string
	Body       string
	RemindAt   *time.Time
	RemindedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsPending reports whether the reminder is still waiting to fire.
func (n Note) IsPending() bool {
	return n.RemindAt != nil && n.RemindedAt == nil
}
