package network

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/outrun/core"
)

// TCPClient speaks the framed protocol to a relay over one TCP connection
type TCPClient struct {
	transport *Transport
	inbox     *Inbox
	join      joinState
	log       *slog.Logger

	done     chan struct{}
	doneOnce sync.Once
}

// DialTCP connects to the relay at cfg.Address
// The context bounds the dial only
func DialTCP(ctx context.Context, cfg *Config, log *slog.Logger) (*TCPClient, error) {
	c := &TCPClient{
		inbox: NewInbox(),
		log:   core.Logger(log).With("relay", cfg.Address),
		done:  make(chan struct{}),
	}

	client := *cfg
	client.Role = RoleClient
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < client.ConnectTimeout || client.ConnectTimeout == 0 {
			client.ConnectTimeout = d
		}
	}

	c.transport = NewTransport(&client, c.log)
	c.transport.SetHandlers(nil, c.onDisconnect, c.onMessage)
	if err := c.transport.Start(); err != nil {
		return nil, err
	}
	c.log.Info("connected")
	return c, nil
}

func (c *TCPClient) onDisconnect(PeerID) {
	c.log.Info("relay disconnected")
	c.markDone()
}

func (c *TCPClient) onMessage(_ PeerID, msg *Message) {
	switch msg.Type {
	case MsgRoster:
		r, err := DecodeRoster(msg.Payload)
		if err != nil {
			c.log.Warn("roster dropped", "error", err)
			return
		}
		c.inbox.Put(r)
	case MsgJoin:
		j, err := DecodeJoin(msg.Payload)
		if err != nil {
			c.log.Warn("join dropped", "error", err)
			return
		}
		c.join.set(j.ID)
		c.log.Info("joined", "id", j.ID)
	default:
		c.log.Debug("unexpected message", "type", msg.Type)
	}
}

// Send queues a snapshot
func (c *TCPClient) Send(s Snapshot) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	msg, err := SnapshotMessage(s)
	if err != nil {
		return err
	}
	if !c.transport.SendServer(msg) {
		if c.transport.PeerCount() == 0 {
			return ErrClosed
		}
		return ErrQueueFull
	}
	return nil
}

// Rosters delivers inbound rosters
func (c *TCPClient) Rosters() <-chan Roster {
	return c.inbox.C()
}

// ID returns the relay-assigned id
func (c *TCPClient) ID() (int, bool) {
	return c.join.get()
}

// Done is closed when the relay link drops or Close is called
func (c *TCPClient) Done() <-chan struct{} {
	return c.done
}

// Close tears the link down
func (c *TCPClient) Close() error {
	err := c.transport.Stop()
	c.markDone()
	return err
}

func (c *TCPClient) markDone() {
	c.doneOnce.Do(func() { close(c.done) })
}
