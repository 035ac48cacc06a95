package sse

import (
	"sync"
)

// subscriberBuffer is how many undelivered events a slow subscriber may hold
// before new ones are dropped for it.
const subscriberBuffer = 16

// Event represents an SSE event to be sent to subscribers
type Event struct {
	RecipientID string
	Event       string
	Data        any
}

// Hub fans events out to the open streams of each recipient.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for recipientID. The returned cleanup func
// unregisters it and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(recipientID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)

	if h.subscribers[recipientID] == nil {
		h.subscribers[recipientID] = make(map[chan Event]struct{})
	}
	h.subscribers[recipientID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[recipientID], ch)
			close(ch)
			if len(h.subscribers[recipientID]) == 0 {
				delete(h.subscribers, recipientID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends event to every stream of its recipient without blocking.
// It returns the number of streams the event was delivered to.
func (h *Hub) Publish(event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subscribers[event.RecipientID] {
		select {
		case ch <- event:
			delivered++
		default:
			// full: drop for this subscriber
		}
	}
	return delivered
}

// SubscriberCount returns the number of active streams for a recipient
func (h *Hub) SubscriberCount(recipientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[recipientID])
}

// TotalSubscribers returns the number of active streams across all recipients
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
