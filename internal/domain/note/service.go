package note

import (
	"context"
	"time"
)

type NoteService interface {
	CreateNote(ctx context.Context, req UpsertNoteRequest) (NoteResponse, error)
	GetNote(ctx context.Context, id string) (NoteResponse, error)
	ListNotes(ctx context.Context, filter NoteFilter) (ListNoteResponse, error)
	UpdateNote(ctx context.Context, id string, req UpsertNoteRequest) (NoteResponse, error)
	DeleteNote(ctx context.Context, id string) error
	// DispatchDueReminders delivers every reminder due at now and returns how
	// many were sent.
	DispatchDueReminders(ctx context.Context, now time.Time) (int, error)
}
