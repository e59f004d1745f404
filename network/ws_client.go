package network

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/outrun/core"
)

// WSClient speaks JSON text frames to a relay over a WebSocket
type WSClient struct {
	conn  *websocket.Conn
	cfg   *Config
	inbox *Inbox
	join  joinState
	log   *slog.Logger

	sendCh    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// WSURL builds the relay endpoint for addr and path
func WSURL(addr, path string, secure bool) string {
	u := url.URL{Scheme: "ws", Host: addr, Path: path}
	if secure {
		u.Scheme = "wss"
	}
	return u.String()
}

// DialWS performs the WebSocket handshake with the relay at cfg.Address
func DialWS(ctx context.Context, cfg *Config, log *slog.Logger) (*WSClient, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.ConnectTimeout,
		TLSClientConfig:  cfg.TLS,
		ReadBufferSize:   cfg.ReadBufferSize,
		WriteBufferSize:  cfg.WriteBufferSize,
	}

	target := WSURL(cfg.Address, cfg.Path, cfg.TLS != nil)
	conn, _, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	if cfg.ReadLimit > 0 {
		conn.SetReadLimit(cfg.ReadLimit)
	}

	c := &WSClient{
		conn:   conn,
		cfg:    cfg,
		inbox:  NewInbox(),
		log:    core.Logger(log).With("relay", target),
		sendCh: make(chan []byte, cfg.SendQueueSize),
		done:   make(chan struct{}),
	}
	c.log.Info("connected")

	core.Go(c.readLoop)
	core.Go(c.writeLoop)
	return c, nil
}

func (c *WSClient) extendRead() {
	if c.cfg.ReadTimeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	}
}

func (c *WSClient) readLoop() {
	defer c.shutdown()

	c.extendRead()
	c.conn.SetPongHandler(func(string) error {
		c.extendRead()
		return nil
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn("relay read failed", "error", err)
			}
			return
		}
		c.extendRead()
		if kind != websocket.TextMessage {
			continue
		}
		c.handle(data)
	}
}

func (c *WSClient) handle(data []byte) {
	t, err := ClassifyInbound(data)
	if err != nil {
		c.log.Warn("message dropped", "error", err)
		return
	}

	switch t {
	case MsgRoster:
		r, err := DecodeRoster(data)
		if err != nil {
			c.log.Warn("roster dropped", "error", err)
			return
		}
		c.inbox.Put(r)
	case MsgJoin:
		j, err := DecodeJoin(data)
		if err != nil {
			c.log.Warn("join dropped", "error", err)
			return
		}
		c.join.set(j.ID)
		c.log.Info("joined", "id", j.ID)
	}
}

// writeLoop is the only writer of data frames
func (c *WSClient) writeLoop() {
	defer c.shutdown()

	var ping <-chan time.Time
	if c.cfg.HeartbeatInterval > 0 {
		t := time.NewTicker(c.cfg.HeartbeatInterval)
		defer t.Stop()
		ping = t.C
	}

	for {
		select {
		case <-c.done:
			return
		case data := <-c.sendCh:
			c.setWriteDeadline()
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug("relay write failed", "error", err)
				return
			}
		case <-ping:
			c.setWriteDeadline()
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *WSClient) setWriteDeadline() {
	if c.cfg.WriteTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
}

// Send queues a snapshot
func (c *WSClient) Send(s Snapshot) error {
	data, err := EncodeSnapshot(s)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.sendCh <- data:
		return nil
	default:
		return ErrQueueFull
	}
}

// Rosters delivers inbound rosters
func (c *WSClient) Rosters() <-chan Roster {
	return c.inbox.C()
}

// ID returns the relay-assigned id
func (c *WSClient) ID() (int, bool) {
	return c.join.get()
}

// Done is closed when the relay link drops or Close is called
func (c *WSClient) Done() <-chan struct{} {
	return c.done
}

// Close sends a close frame and drops the connection
func (c *WSClient) Close() error {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	c.shutdown()
	return nil
}

func (c *WSClient) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
