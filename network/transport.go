package network

import (
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/outrun/core"
)

// ErrNotRunning is returned by operations on a stopped transport
var ErrNotRunning = errors.New("transport not running")

// Transport runs framed TCP I/O for one role
type Transport struct {
	config   *Config
	listener net.Listener
	peers    *PeerManager
	log      *slog.Logger

	// Relay side of a client transport
	server PeerID

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config, log *slog.Logger) *Transport {
	log = core.Logger(log).With("transport", "tcp")
	return &Transport{
		config: cfg,
		peers:  NewPeerManager(cfg, log),
		log:    log,
		stopCh: make(chan struct{}),
	}
}

// SetHandlers configures message and connection callbacks
func (t *Transport) SetHandlers(
	onConnect func(PeerID),
	onDisconnect func(PeerID),
	onMessage func(PeerID, *Message),
) {
	t.peers.SetHandlers(onConnect, onDisconnect, onMessage)
}

// Start listens (server) or dials the relay (client)
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil
	}

	switch t.config.Role {
	case RoleServer:
		return t.startServer()
	case RoleClient:
		return t.startClient()
	default:
		return nil
	}
}

func (t *Transport) startServer() error {
	var ln net.Listener
	var err error

	if t.config.TLS != nil {
		ln, err = tls.Listen("tcp", t.config.Address, t.config.TLS)
	} else {
		ln, err = net.Listen("tcp", t.config.Address)
	}
	if err != nil {
		t.running.Store(false)
		return err
	}

	t.listener = ln
	t.log.Info("listening", "addr", ln.Addr().String())

	t.wg.Add(1)
	core.Go(t.acceptLoop)
	return nil
}

func (t *Transport) acceptLoop() {
	defer t.wg.Done()

	for {
		conn, err := t.listener.Accept()
		if err != nil {
			select {
			case <-t.stopCh:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			t.log.Warn("accept failed", "error", err)
			continue
		}

		if _, err := t.peers.AddConnection(conn); err != nil {
			t.log.Warn("connection rejected", "addr", conn.RemoteAddr().String(), "error", err)
		}
	}
}

func (t *Transport) startClient() error {
	conn, err := dial(t.config.Address, t.config)
	if err != nil {
		t.running.Store(false)
		return err
	}

	id, err := t.peers.AddConnection(conn)
	if err != nil {
		t.running.Store(false)
		return err
	}
	t.server = id
	return nil
}

// Addr returns the bound listen address, nil before a server starts
func (t *Transport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Stop closes the listener and every peer
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	close(t.stopCh)
	if t.listener != nil {
		t.listener.Close()
	}
	t.peers.Close()
	t.wg.Wait()
	return nil
}

// Send transmits to a specific peer
func (t *Transport) Send(id PeerID, msg *Message) bool {
	return t.peers.Send(id, msg)
}

// SendServer transmits to the relay from a client transport
func (t *Transport) SendServer(msg *Message) bool {
	return t.peers.Send(t.server, msg)
}

// Broadcast sends to all peers
func (t *Transport) Broadcast(msg *Message) {
	t.peers.Broadcast(msg)
}

// Disconnect drops one peer
func (t *Transport) Disconnect(id PeerID) {
	if p, ok := t.peers.Peer(id); ok {
		p.Close()
	}
}

// PeerCount returns connected peer count
func (t *Transport) PeerCount() int {
	return t.peers.PeerCount()
}

// IsRunning returns transport state
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
