package note

import (
	"context"
	"time"
)

type NoteRepository interface {
	Create(ctx context.Context, n Note) (Note, error)
	GetByID(ctx context.Context, id string) (Note, error)
	List(ctx context.Context, filter NoteFilter) ([]Note, int64, error)
	Update(ctx context.Context, n Note) (Note, error)
	Delete(ctx context.Context, id string) error
	// ClaimDue marks every pending reminder due at or before now as reminded
	// and returns the claimed notes. A note is claimed at most once.
	ClaimDue(ctx context.Context, now time.Time) ([]Note, error)
}
