// Package events fans board changes out to interested parties.
package events

import (
	"sync"

	"skillswap/internal/board"
)

// Hub delivers each change to every subscriber channel. A subscriber whose
// buffer is full misses that change instead of stalling the board.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan board.Change]struct{}
	buffer      int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subscribers: make(map[chan board.Change]struct{}),
		buffer:      buffer,
	}
}

// Subscribe returns a channel of changes and a function that closes it.
func (h *Hub) Subscribe() (<-chan board.Change, func()) {
	ch := make(chan board.Change, h.buffer)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subscribers[ch]; ok {
				delete(h.subscribers, ch)
				close(ch)
			}
			h.mu.Unlock()
		})
	}
}

// Publish is a board.Listener.
func (h *Hub) Publish(change board.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}

// Close ends every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Subscribers is the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
