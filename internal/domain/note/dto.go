package note

import (
	"strings"
	"time"

	"github.com/careroster/roster-backend/internal/pkg/validator"
)

type UpsertNoteRequest struct {
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	RemindAt *string `json:"remind_at,omitempty"`

	remindAt *time.Time
}

func (r *UpsertNoteRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	r.remindAt = nil

	if r.Title == "" {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not exceed 255 characters"})
	}
	if r.RemindAt != nil && strings.TrimSpace(*r.RemindAt) != "" {
		t, ok := validator.IsValidDateTime(strings.TrimSpace(*r.RemindAt))
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "remind_at", Message: ErrInvalidRemindAt.Error()})
		} else {
			utc := t.UTC()
			r.remindAt = &utc
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RemindAtTime is the parsed remind_at, valid after Validate.
func (r *UpsertNoteRequest) RemindAtTime() *time.Time {
	return r.remindAt
}

type NoteResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Body       string  `json:"body"`
	RemindAt   *string `json:"remind_at"`
	RemindedAt *string `json:"reminded_at"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type NoteFilter struct {
	// PendingOnly keeps notes whose reminder has not fired yet.
	PendingOnly bool `json:"pending_only"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
}

func (f *NoteFilter) Validate() error {
	if errs := validator.NormalizePage(&f.Page, &f.Limit); errs != nil {
		return errs
	}
	return nil
}

type ListNoteResponse struct {
	Data       []NoteResponse `json:"data"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}
