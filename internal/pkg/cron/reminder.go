package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/careroster/roster-backend/internal/domain/note"
)

type ReminderJobs struct {
	noteService note.NoteService
	interval    time.Duration
	now         func() time.Time
}

func NewReminderJobs(noteService note.NoteService, interval time.Duration) *ReminderJobs {
	return &ReminderJobs{
		noteService: noteService,
		interval:    interval,
		now:         time.Now,
	}
}

func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("dispatch_note_reminders", j.interval, j.DispatchDueReminders)
}

func (j *ReminderJobs) DispatchDueReminders(ctx context.Context) error {
	sent, err := j.noteService.DispatchDueReminders(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to dispatch reminders: %w", err)
	}
	if sent > 0 {
		slog.Info("Cron: reminders dispatched", "count", sent)
	}
	return nil
}
