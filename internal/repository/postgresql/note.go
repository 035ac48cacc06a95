package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careroster/roster-backend/internal/domain/note"
	"github.com/careroster/roster-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const noteColumns = `id, title, body, remind_at, reminded_at, created_at, updated_at`

type noteRepositoryImpl struct {
	db *database.DB
}

func NewNoteRepository(db *database.DB) note.NoteRepository {
	return &noteRepositoryImpl{db: db}
}

func scanNote(row pgx.Row) (note.Note, error) {
	var n note.Note
	err := row.Scan(&n.ID, &n.Title, &n.Body, &n.RemindAt, &n.RemindedAt, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *noteRepositoryImpl) Create(ctx context.Context, n note.Note) (note.Note, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO notes (id, title, body, remind_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + noteColumns

	created, err := scanNote(q.QueryRow(ctx, query, id.String(), n.Title, n.Body, n.RemindAt))
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to create note: %w", err)
	}
	return created, nil
}

func (r *noteRepositoryImpl) GetByID(ctx context.Context, id string) (note.Note, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanNote(q.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return note.Note{}, note.ErrNoteNotFound
		}
		return note.Note{}, fmt.Errorf("failed to get note: %w", err)
	}
	return found, nil
}

func (r *noteRepositoryImpl) List(ctx context.Context, filter note.NoteFilter) ([]note.Note, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `($1::boolean IS FALSE OR (remind_at IS NOT NULL AND reminded_at IS NULL))`

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE `+where, filter.PendingOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE ` + where + `
		ORDER BY remind_at ASC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.Query(ctx, query, filter.PendingOnly, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *noteRepositoryImpl) Update(ctx context.Context, n note.Note) (note.Note, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notes
		SET title = $2, body = $3, remind_at = $4, reminded_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + noteColumns

	saved, err := scanNote(q.QueryRow(ctx, query, n.ID, n.Title, n.Body, n.RemindAt, n.RemindedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return note.Note{}, note.ErrNoteNotFound
		}
		return note.Note{}, fmt.Errorf("failed to update note: %w", err)
	}
	return saved, nil
}

func (r *noteRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepositoryImpl) ClaimDue(ctx context.Context, now time.Time) ([]note.Note, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notes
		SET reminded_at = $1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM notes
			WHERE reminded_at IS NULL AND remind_at IS NOT NULL AND remind_at <= $1
			ORDER BY remind_at
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + noteColumns

	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due reminders: %w", err)
	}
	defer rows.Close()

	var due []note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		due = append(due, n)
	}
	return due, rows.Err()
}
