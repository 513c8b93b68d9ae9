package events

import (
	"encoding/json"
	"sync"
	"time"

	"skillswap/internal/apperr"
	"skillswap/internal/board"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const ChangesSubject = "skills.changed"

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Close()
}

// NATSPublisher forwards board changes to NATS from a background worker so
// a slow broker never delays a mutation.
type NATSPublisher struct {
	conn   Conn
	logger *zap.Logger
	queue  chan board.Change
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// DialNATS connects to url with reconnects enabled.
func DialNATS(url string, timeout time.Duration) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("skillswap"),
		nats.Timeout(timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, apperr.Internal("connecting to NATS", err)
	}
	return conn, nil
}

func NewNATSPublisher(conn Conn, logger *zap.Logger) *NATSPublisher {
	p := &NATSPublisher{
		conn:   conn,
		logger: logger,
		queue:  make(chan board.Change, 256),
		done:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.worker()
	return p
}

// Publish is a board.Listener. It never blocks; when the queue is full the
// change is dropped and logged.
func (p *NATSPublisher) Publish(change board.Change) {
	select {
	case <-p.done:
		return
	default:
	}

	select {
	case p.queue <- change:
	default:
		p.logger.Warn("change queue full, dropping event",
			zap.String("kind", string(change.Kind)),
			zap.Uint64("revision", change.Revision))
	}
}

func (p *NATSPublisher) worker() {
	defer p.wg.Done()
	for {
		select {
		case change := <-p.queue:
			p.send(change)
		case <-p.done:
			// Drain what is already queued.
			for {
				select {
				case change := <-p.queue:
					p.send(change)
				default:
					return
				}
			}
		}
	}
}

func (p *NATSPublisher) send(change board.Change) {
	data, err := json.Marshal(change)
	if err != nil {
		p.logger.Error("failed to marshal change", zap.Error(err))
		return
	}
	if err := p.conn.Publish(ChangesSubject, data); err != nil {
		p.logger.Error("failed to publish change",
			zap.String("kind", string(change.Kind)),
			zap.Error(err))
		return
	}
	p.logger.Debug("published change",
		zap.String("kind", string(change.Kind)),
		zap.String("subject", ChangesSubject))
}

// Close stops the worker after flushing queued changes, then closes the
// connection.
func (p *NATSPublisher) Close() {
	p.once.Do(func() {
		close(p.done)
		p.wg.Wait()
		p.conn.Close()
	})
}
