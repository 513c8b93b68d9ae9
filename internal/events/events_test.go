package events

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"skillswap/internal/board"

	"go.uber.org/zap"
)

func TestHubFanOut(t *testing.T) {
	h := NewHub(4)
	a, unsubA := h.Subscribe()
	b, unsubB := h.Subscribe()
	defer unsubB()

	h.Publish(board.Change{Kind: board.ChangeAdded, ID: "x", Revision: 1, Count: 1})

	for _, ch := range []<-chan board.Change{a, b} {
		select {
		case got := <-ch:
			if got.Kind != board.ChangeAdded || got.ID != "x" {
				t.Errorf("got %+v", got)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for change")
		}
	}

	unsubA()
	unsubA()
	if _, ok := <-a; ok {
		t.Error("channel still open after unsubscribe")
	}
	if h.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", h.Subscribers())
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub(1)
	ch, unsub := h.Subscribe()
	defer unsub()

	h.Publish(board.Change{Revision: 1})
	h.Publish(board.Change{Revision: 2})

	if got := <-ch; got.Revision != 1 {
		t.Errorf("Revision = %d, want 1", got.Revision)
	}
	select {
	case got := <-ch:
		t.Errorf("unexpected change %+v", got)
	default:
	}
}

func TestHubClose(t *testing.T) {
	h := NewHub(1)
	ch, unsub := h.Subscribe()
	h.Close()
	unsub()
	if _, ok := <-ch; ok {
		t.Error("channel open after Close()")
	}
}

type fakeConn struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
	fail     bool
	closed   bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broker down")
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func TestNATSPublisherFlushesOnClose(t *testing.T) {
	conn := &fakeConn{}
	p := NewNATSPublisher(conn, zap.NewNop())

	p.Publish(board.Change{Kind: board.ChangeAdded, ID: "a", Revision: 1, Count: 1})
	p.Publish(board.Change{Kind: board.ChangeRated, ID: "a", Revision: 2, Count: 1})
	p.Close()
	p.Close()

	conn.mu.Lock()
	defer conn.mu.Unlock()
	if len(conn.payloads) != 2 {
		t.Fatalf("published %d changes, want 2", len(conn.payloads))
	}
	if conn.subjects[0] != ChangesSubject {
		t.Errorf("subject = %q, want %q", conn.subjects[0], ChangesSubject)
	}
	var got board.Change
	if err := json.Unmarshal(conn.payloads[1], &got); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if got.Kind != board.ChangeRated || got.Revision != 2 {
		t.Errorf("payload = %+v", got)
	}
	if !conn.closed {
		t.Error("connection not closed")
	}
}

func TestNATSPublisherSurvivesBrokerErrors(t *testing.T) {
	conn := &fakeConn{fail: true}
	p := NewNATSPublisher(conn, zap.NewNop())
	p.Publish(board.Change{Kind: board.ChangeRemoved})
	p.Close()

	// Publishing after Close is a no-op.
	p.Publish(board.Change{Kind: board.ChangeRemoved})
	if len(conn.payloads) != 0 {
		t.Errorf("payloads = %d, want 0", len(conn.payloads))
	}
}
