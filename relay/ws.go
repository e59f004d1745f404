package relay

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/outrun/core"
	"github.com/lixenwraith/outrun/network"
)

// wsConn owns one WebSocket; writeLoop is its only data writer
type wsConn struct {
	conn   *websocket.Conn
	cfg    *network.Config
	sendCh chan []byte
	done   chan struct{}
	once   sync.Once
}

func (c *wsConn) queue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.sendCh <- data:
		return true
	default:
		return false
	}
}

func (c *wsConn) SendJoin(j network.Join) bool {
	data, err := network.EncodeJoin(j)
	if err != nil {
		return false
	}
	return c.queue(data)
}

func (c *wsConn) SendRoster(ro network.Roster) bool {
	data, err := network.EncodeRoster(ro)
	if err != nil {
		return false
	}
	return c.queue(data)
}

func (c *wsConn) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *wsConn) deadline() {
	if c.cfg.WriteTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
}

func (c *wsConn) writeLoop() {
	defer c.close()

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
			c.deadline()
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ping:
			c.deadline()
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// WSHandler upgrades requests and attaches each socket to r
type WSHandler struct {
	relay    *Relay
	cfg      *network.Config
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewWSHandler creates the upgrade endpoint
func NewWSHandler(r *Relay, cfg *network.Config, log *slog.Logger) *WSHandler {
	return &WSHandler{
		relay: r,
		cfg:   cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// Browser clients connect from other origins
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: core.Logger(log).With("transport", "ws"),
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", req.RemoteAddr, "error", err)
		return
	}
	if h.cfg.ReadLimit > 0 {
		conn.SetReadLimit(h.cfg.ReadLimit)
	}

	c := &wsConn{
		conn:   conn,
		cfg:    h.cfg,
		sendCh: make(chan []byte, h.cfg.SendQueueSize),
		done:   make(chan struct{}),
	}
	id := h.relay.Join(c)
	core.Go(c.writeLoop)

	defer func() {
		h.relay.Leave(id)
		c.close()
	}()

	extend := func() {
		if h.cfg.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
		}
	}
	extend()
	conn.SetPongHandler(func(string) error {
		extend()
		return nil
	})

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("read ended", "id", id, "error", err)
			}
			return
		}
		extend()
		if kind != websocket.TextMessage {
			continue
		}
		s, err := network.DecodeSnapshot(data)
		if err != nil {
			h.log.Warn("snapshot dropped", "id", id, "error", err)
			continue
		}
		h.relay.Update(id, s)
	}
}
