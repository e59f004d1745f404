package network

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/lixenwraith/outrun/parameter"
)

// Role defines which side of the relay link a transport serves
type Role uint8

const (
	RoleNone   Role = iota // Network disabled, single player
	RoleClient             // Dials the relay
	RoleServer             // Relay side, accepts connections
)

// Kind selects the wire binding
type Kind uint8

const (
	KindTCP Kind = iota // Length-framed messages over TCP
	KindWS              // JSON text frames over WebSocket
)

func (k Kind) String() string {
	switch k {
	case KindTCP:
		return "tcp"
	case KindWS:
		return "ws"
	default:
		return "unknown"
	}
}

// ParseKind maps a flag value to a transport kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "tcp", "":
		return KindTCP, nil
	case "ws", "websocket":
		return KindWS, nil
	default:
		return 0, fmt.Errorf("unknown transport %q", s)
	}
}

// Config holds network configuration
type Config struct {
	Role Role
	Kind Kind

	// Address to bind (server) or connect to (client)
	Address string

	// WebSocket path, ignored by TCP
	Path string

	// TLS configuration (nil = plaintext)
	TLS *tls.Config

	// Connection limits
	MaxPeers int

	// Timing
	ConnectTimeout    time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
	ReadLimit       int64
}

// DefaultConfig returns defaults for a disabled network
func DefaultConfig() *Config {
	return &Config{
		Role:              RoleNone,
		Kind:              KindTCP,
		Address:           parameter.RelayDefaultAddress,
		Path:              parameter.RelayWSPath,
		MaxPeers:          16,
		ConnectTimeout:    5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		ReadBufferSize:    64 * 1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     parameter.SnapshotQueueSize,
		ReadLimit:         parameter.WSReadLimit,
	}
}

// ClientConfig returns config for dialing a relay at addr
func ClientConfig(kind Kind, addr string) *Config {
	cfg := DefaultConfig()
	cfg.Role = RoleClient
	cfg.Kind = kind
	cfg.Address = addr
	return cfg
}

// ServerConfig returns config for a relay listening on addr
func ServerConfig(kind Kind, addr string) *Config {
	cfg := DefaultConfig()
	cfg.Role = RoleServer
	cfg.Kind = kind
	cfg.Address = addr
	return cfg
}
