package note

import "errors"

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrInvalidRemindAt = errors.New("remind_at must be an RFC3339 timestamp")
)
