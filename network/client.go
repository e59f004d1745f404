package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrClosed is returned by Send once the link to the relay is gone
var ErrClosed = errors.New("connection closed")

// ErrQueueFull is returned by Send when the outbound queue is saturated; the snapshot is dropped
var ErrQueueFull = errors.New("send queue full")

// Client is the session's view of a relay link
type Client interface {
	// Send queues the local snapshot without blocking
	Send(Snapshot) error
	// Rosters delivers the newest roster; older undelivered ones are discarded
	Rosters() <-chan Roster
	// ID returns the relay-assigned id, false until the join greeting arrives
	ID() (int, bool)
	// Done is closed when the link ends
	Done() <-chan struct{}
	Close() error
}

// Dial connects to a relay with the binding named by cfg.Kind
func Dial(ctx context.Context, cfg *Config, log *slog.Logger) (Client, error) {
	switch cfg.Kind {
	case KindTCP:
		return DialTCP(ctx, cfg, log)
	case KindWS:
		return DialWS(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown transport kind %d", cfg.Kind)
	}
}

// Inbox is a latest-value mailbox: capacity one, newest wins
type Inbox struct {
	mu sync.Mutex
	ch chan Roster
}

// NewInbox creates an empty inbox
func NewInbox() *Inbox {
	return &Inbox{ch: make(chan Roster, 1)}
}

// Put replaces any undelivered roster with r
func (b *Inbox) Put(r Roster) {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.ch:
	default:
	}
	b.ch <- r
}

// C returns the receive side
func (b *Inbox) C() <-chan Roster {
	return b.ch
}

// TryTake returns the pending roster if one is waiting
func (b *Inbox) TryTake() (Roster, bool) {
	select {
	case r := <-b.ch:
		return r, true
	default:
		return Roster{}, false
	}
}

// joinState records the relay-assigned id once
type joinState struct {
	mu     sync.Mutex
	id     int
	joined bool
}

func (j *joinState) set(id int) {
	j.mu.Lock()
	j.id, j.joined = id, true
	j.mu.Unlock()
}

func (j *joinState) get() (int, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.id, j.joined
}

var (
	_ Client = (*TCPClient)(nil)
	_ Client = (*WSClient)(nil)
)
