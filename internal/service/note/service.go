package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/careroster/roster-backend/internal/domain/note"
	"github.com/careroster/roster-backend/internal/domain/notification"
)

type NoteServiceImpl struct {
	noteRepo            note.NoteRepository
	notificationService notification.Service
	// recipientID receives every reminder.
	recipientID string
}

func NewNoteService(noteRepo note.NoteRepository, notificationService notification.Service, recipientID string) note.NoteService {
	return &NoteServiceImpl{
		noteRepo:            noteRepo,
		notificationService: notificationService,
		recipientID:         recipientID,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func mapNoteToResponse(n note.Note) note.NoteResponse {
	return note.NoteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Body:       n.Body,
		RemindAt:   formatTime(n.RemindAt),
		RemindedAt: formatTime(n.RemindedAt),
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  n.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateNote implements note.NoteService.
func (s *NoteServiceImpl) CreateNote(ctx context.Context, req note.UpsertNoteRequest) (note.NoteResponse, error) {
	if err := req.Validate(); err != nil {
		return note.NoteResponse{}, err
	}

	created, err := s.noteRepo.Create(ctx, note.Note{
		Title:    req.Title,
		Body:     req.Body,
		RemindAt: req.RemindAtTime(),
	})
	if err != nil {
		return note.NoteResponse{}, fmt.Errorf("failed to create note: %w", err)
	}
	return mapNoteToResponse(created), nil
}

// GetNote implements note.NoteService.
func (s *NoteServiceImpl) GetNote(ctx context.Context, id string) (note.NoteResponse, error) {
	n, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			return note.NoteResponse{}, note.ErrNoteNotFound
		}
		return note.NoteResponse{}, fmt.Errorf("failed to get note: %w", err)
	}
	return mapNoteToResponse(n), nil
}

// ListNotes implements note.NoteService.
func (s *NoteServiceImpl) ListNotes(ctx context.Context, filter note.NoteFilter) (note.ListNoteResponse, error) {
	if err := filter.Validate(); err != nil {
		return note.ListNoteResponse{}, err
	}

	notes, total, err := s.noteRepo.List(ctx, filter)
	if err != nil {
		return note.ListNoteResponse{}, fmt.Errorf("failed to list notes: %w", err)
	}

	data := make([]note.NoteResponse, 0, len(notes))
	for _, n := range notes {
		data = append(data, mapNoteToResponse(n))
	}

	return note.ListNoteResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateNote implements note.NoteService. Changing remind_at re-arms a
// reminder that already fired.
func (s *NoteServiceImpl) UpdateNote(ctx context.Context, id string, req note.UpsertNoteRequest) (note.NoteResponse, error) {
	if err := req.Validate(); err != nil {
		return note.NoteResponse{}, err
	}

	existing, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			return note.NoteResponse{}, note.ErrNoteNotFound
		}
		return note.NoteResponse{}, fmt.Errorf("failed to get note: %w", err)
	}

	remindAt := req.RemindAtTime()
	if !sameInstant(existing.RemindAt, remindAt) {
		existing.RemindedAt = nil
	}
	existing.Title = req.Title
	existing.Body = req.Body
	existing.RemindAt = remindAt

	updated, err := s.noteRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			return note.NoteResponse{}, note.ErrNoteNotFound
		}
		return note.NoteResponse{}, fmt.Errorf("failed to update note: %w", err)
	}
	return mapNoteToResponse(updated), nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// DeleteNote implements note.NoteService.
func (s *NoteServiceImpl) DeleteNote(ctx context.Context, id string) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			return note.ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// DispatchDueReminders implements note.NoteService. Claimed reminders are not
// retried: a note whose notification fails to queue is logged and skipped.
func (s *NoteServiceImpl) DispatchDueReminders(ctx context.Context, now time.Time) (int, error) {
	due, err := s.noteRepo.ClaimDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to claim due reminders: %w", err)
	}

	sent := 0
	for _, n := range due {
		req := notification.CreateNotificationRequest{
			RecipientID: s.recipientID,
			Type:        notification.TypeReminder,
			Title:       n.Title,
			Message:     n.Body,
			Data: map[string]any{
				"note_id":   n.ID,
				"remind_at": formatTime(n.RemindAt),
			},
		}
		if err := s.notificationService.QueueNotification(ctx, req); err != nil {
			slog.Error("failed to queue reminder", "note_id", n.ID, "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}
