package network

import (
	"bufio"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/outrun/core"
)

// ErrPeerLimit is returned when a connection would exceed MaxPeers
var ErrPeerLimit = errors.New("max peers reached")

// PeerID identifies one connection for its lifetime, assigned from 1
type PeerID uint32

// ConnState represents connection lifecycle state
type ConnState uint8

const (
	StateDisconnected ConnState = iota
	StateConnected
	StateDisconnecting
)

// Peer is one framed TCP connection
type Peer struct {
	ID       PeerID
	Addr     string
	State    atomic.Uint32 // ConnState
	LastSeen atomic.Int64  // UnixNano

	OutSeq atomic.Uint32
	InSeq  atomic.Uint32

	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
	cfg    *Config

	sendCh    chan *Message
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(id PeerID, conn net.Conn, cfg *Config) *Peer {
	p := &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, cfg.ReadBufferSize),
		writer:  bufio.NewWriterSize(conn, cfg.WriteBufferSize),
		cfg:     cfg,
		sendCh:  make(chan *Message, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.State.Store(uint32(StateConnected))
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send queues a message, false when the peer is gone or its queue is full
func (p *Peer) Send(msg *Message) bool {
	if ConnState(p.State.Load()) != StateConnected {
		return false
	}

	msg.Seq = p.OutSeq.Add(1)
	msg.Ack = p.InSeq.Load()

	select {
	case p.sendCh <- msg:
		return true
	default:
		return false
	}
}

// Close tears the connection down once
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		p.State.Store(uint32(StateDisconnecting))
		close(p.closeCh)
		p.conn.Close()
	})
}

// Done is closed when the peer shuts down
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

func (p *Peer) readLoop(handler func(PeerID, *Message), log *slog.Logger) {
	defer p.Close()

	for {
		if p.cfg.ReadTimeout > 0 {
			p.conn.SetReadDeadline(time.Now().Add(p.cfg.ReadTimeout))
		}
		msg, err := Decode(p.reader)
		if err != nil {
			select {
			case <-p.closeCh:
			default:
				log.Debug("peer read ended", "peer", p.ID, "error", err)
			}
			return
		}

		p.LastSeen.Store(time.Now().UnixNano())
		if msg.Seq > p.InSeq.Load() {
			p.InSeq.Store(msg.Seq)
		}

		switch msg.Type {
		case MsgHeartbeat:
		case MsgDisconnect:
			return
		default:
			handler(p.ID, msg)
		}
	}
}

// writeLoop drains the send queue and keeps an idle link alive with heartbeats
func (p *Peer) writeLoop(log *slog.Logger) {
	defer p.Close()

	var beat <-chan time.Time
	if p.cfg.HeartbeatInterval > 0 {
		t := time.NewTicker(p.cfg.HeartbeatInterval)
		defer t.Stop()
		beat = t.C
	}

	write := func(msg *Message) bool {
		if p.cfg.WriteTimeout > 0 {
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
		}
		if err := msg.Encode(p.writer); err != nil {
			log.Debug("peer write failed", "peer", p.ID, "error", err)
			return false
		}
		return true
	}

	for {
		select {
		case <-p.closeCh:
			return
		case msg := <-p.sendCh:
			if !write(msg) {
				return
			}
			// Coalesce whatever queued meanwhile into one flush
			for pending := len(p.sendCh); pending > 0; pending-- {
				if !write(<-p.sendCh) {
					return
				}
			}
			if err := p.writer.Flush(); err != nil {
				return
			}
		case <-beat:
			hb := NewMessage(MsgHeartbeat, nil)
			hb.Seq = p.OutSeq.Add(1)
			hb.Ack = p.InSeq.Load()
			if !write(hb) || p.writer.Flush() != nil {
				return
			}
		}
	}
}

// PeerManager owns every live peer of a transport
type PeerManager struct {
	mu     sync.RWMutex
	peers  map[PeerID]*Peer
	nextID atomic.Uint32
	config *Config
	log    *slog.Logger

	onConnect    func(PeerID)
	onDisconnect func(PeerID)
	onMessage    func(PeerID, *Message)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config, log *slog.Logger) *PeerManager {
	return &PeerManager{
		peers:  make(map[PeerID]*Peer),
		config: cfg,
		log:    core.Logger(log),
	}
}

// SetHandlers configures event callbacks, before the first connection
func (pm *PeerManager) SetHandlers(
	onConnect func(PeerID),
	onDisconnect func(PeerID),
	onMessage func(PeerID, *Message),
) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// AddConnection registers a peer and starts its I/O loops
func (pm *PeerManager) AddConnection(conn net.Conn) (PeerID, error) {
	pm.mu.Lock()
	if pm.config.MaxPeers > 0 && len(pm.peers) >= pm.config.MaxPeers {
		pm.mu.Unlock()
		conn.Close()
		return 0, ErrPeerLimit
	}

	id := PeerID(pm.nextID.Add(1))
	peer := newPeer(id, conn, pm.config)
	pm.peers[id] = peer
	pm.mu.Unlock()

	pm.log.Debug("peer connected", "peer", id, "addr", peer.Addr)

	// onConnect runs before the read loop so greetings precede any roster traffic
	if pm.onConnect != nil {
		pm.onConnect(id)
	}

	core.Go(func() { peer.readLoop(pm.handleMessage, pm.log) })
	core.Go(func() { peer.writeLoop(pm.log) })
	core.Go(func() { pm.monitorPeer(peer) })

	return id, nil
}

func (pm *PeerManager) handleMessage(id PeerID, msg *Message) {
	if pm.onMessage != nil {
		pm.onMessage(id, msg)
	}
}

func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	_, tracked := pm.peers[peer.ID]
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	pm.log.Debug("peer disconnected", "peer", peer.ID)
	if tracked && pm.onDisconnect != nil {
		pm.onDisconnect(peer.ID)
	}
}

// Send transmits a message to one peer
func (pm *PeerManager) Send(id PeerID, msg *Message) bool {
	pm.mu.RLock()
	peer, ok := pm.peers[id]
	pm.mu.RUnlock()

	if !ok {
		return false
	}
	return peer.Send(msg)
}

// Broadcast sends a copy of msg to every peer
func (pm *PeerManager) Broadcast(msg *Message) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	for _, peer := range pm.peers {
		clone := *msg
		peer.Send(&clone)
	}
}

// Peer retrieves a live peer
func (pm *PeerManager) Peer(id PeerID) (*Peer, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	p, ok := pm.peers[id]
	return p, ok
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers
func (pm *PeerManager) Close() {
	pm.mu.Lock()
	peers := pm.peers
	pm.peers = make(map[PeerID]*Peer)
	pm.mu.Unlock()

	for _, peer := range peers {
		peer.Close()
	}
}

func dial(addr string, cfg *Config) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}

	if cfg.TLS != nil {
		return tls.DialWithDialer(dialer, "tcp", addr, cfg.TLS)
	}
	return dialer.Dial("tcp", addr)
}
