package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/careroster/roster-backend/internal/domain/notification"
	"github.com/careroster/roster-backend/internal/pkg/sse"
	"github.com/careroster/roster-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memNotificationRepo struct {
	mu    sync.Mutex
	seq   int
	items []*notification.Notification
}

func (m *memNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	return m.CreateBatch(ctx, []*notification.Notification{n})
}

func (m *memNotificationRepo) CreateBatch(_ context.Context, ns []*notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range ns {
		m.seq++
		n.ID = fmt.Sprintf("n-%d", m.seq)
		m.items = append(m.items, n)
	}
	return nil
}

func (m *memNotificationRepo) GetByRecipient(_ context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.Notification
	for _, n := range m.items {
		if n.RecipientID == recipientID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (m *memNotificationRepo) GetUnreadCount(_ context.Context, recipientID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.items {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) MarkAsRead(_ context.Context, ids []string, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.items {
		for _, id := range ids {
			if n.ID == id && n.RecipientID == recipientID {
				n.IsRead = true
			}
		}
	}
	return nil
}

func (m *memNotificationRepo) MarkAllAsRead(_ context.Context, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.items {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *memNotificationRepo) Delete(_ context.Context, id string, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.items {
		if n.ID == id && n.RecipientID == recipientID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (m *memNotificationRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func reminder(title string) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		RecipientID: "admin",
		Type:        notification.TypeReminder,
		Title:       title,
		Message:     "due now",
	}
}

func TestQueueNotification_FlushesAndPublishes(t *testing.T) {
	repo := &memNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{FlushInterval: 10 * time.Millisecond, WorkerCount: 1})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, cleanup := svc.Subscribe(ctx, "admin")
	defer cleanup()

	require.NoError(t, svc.QueueNotification(context.Background(), reminder("Call pharmacy")))

	select {
	case ev := <-events:
		assert.Equal(t, "reminder", ev.Event)
		assert.Equal(t, "Call pharmacy", ev.Data.Title)
		assert.NotEmpty(t, ev.Data.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
	assert.Equal(t, 1, repo.count())
}

func TestStop_FlushesPendingAndFallsBackToDirectInsert(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{FlushInterval: time.Hour, WorkerCount: 1})

	for i := range 3 {
		require.NoError(t, svc.QueueNotification(context.Background(), reminder(fmt.Sprintf("r%d", i))))
	}
	svc.Stop()
	svc.Stop()
	assert.Equal(t, 3, repo.count())

	require.NoError(t, svc.QueueNotification(context.Background(), reminder("late")))
	assert.Equal(t, 4, repo.count())
}

func TestReadAndDelete(t *testing.T) {
	repo := &memNotificationRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{WorkerCount: 1})
	svc.Stop()
	ctx := context.Background()

	require.NoError(t, svc.QueueNotification(ctx, reminder("a")))
	require.NoError(t, svc.QueueNotification(ctx, reminder("b")))

	list, err := svc.GetNotifications(ctx, "admin", 0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 2, list.UnreadCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)

	err = svc.MarkAsRead(ctx, "admin", notification.MarkAsReadRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	require.NoError(t, svc.MarkAllAsRead(ctx, "admin"))
	count, err := svc.GetUnreadCount(ctx, "admin")
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.Delete(ctx, "admin", list.Notifications[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, "someone-else", list.Notifications[1].ID), notification.ErrNotificationNotFound)
}
