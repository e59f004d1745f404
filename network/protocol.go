package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MessageType identifies the payload carried by a TCP frame
type MessageType uint8

const (
	// Control
	MsgHeartbeat  MessageType = 0x01
	MsgDisconnect MessageType = 0x03

	// Position sync
	MsgSnapshot MessageType = 0x10 // Client to relay, {"offset","z"}
	MsgRoster   MessageType = 0x11 // Relay to client, {"cars":[...]}

	// Coordination
	MsgJoin MessageType = 0x21 // Relay to client, assigned id
)

func (t MessageType) String() string {
	switch t {
	case MsgHeartbeat:
		return "heartbeat"
	case MsgDisconnect:
		return "disconnect"
	case MsgSnapshot:
		return "snapshot"
	case MsgRoster:
		return "roster"
	case MsgJoin:
		return "join"
	default:
		return fmt.Sprintf("type(0x%02x)", uint8(t))
	}
}

// HeaderSize is the fixed frame header: [Type:1][Flags:1][Seq:4][Ack:4][Len:2]
const HeaderSize = 12

// MaxPayloadSize is bounded by the 16-bit length field
const MaxPayloadSize = 1<<16 - 1

// Frame flags
const (
	FlagNone uint8 = 0x00
)

// ErrPayloadTooLarge is returned when a payload does not fit the length field
var ErrPayloadTooLarge = errors.New("payload exceeds maximum size")

// Message is one framed TCP message
type Message struct {
	Type    MessageType
	Flags   uint8
	Seq     uint32 // Sender's sequence number
	Ack     uint32 // Last sequence received from the peer
	Payload []byte
}

// Encode writes header and payload in one call so frames never interleave
func (m *Message) Encode(w io.Writer) error {
	n := len(m.Payload)
	if n > MaxPayloadSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, n)
	}

	buf := make([]byte, HeaderSize+n)
	buf[0] = byte(m.Type)
	buf[1] = m.Flags
	binary.BigEndian.PutUint32(buf[2:6], m.Seq)
	binary.BigEndian.PutUint32(buf[6:10], m.Ack)
	binary.BigEndian.PutUint16(buf[10:12], uint16(n))
	copy(buf[HeaderSize:], m.Payload)

	_, err := w.Write(buf)
	return err
}

// Decode reads one frame
func Decode(r io.Reader) (*Message, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	m := &Message{
		Type:  MessageType(header[0]),
		Flags: header[1],
		Seq:   binary.BigEndian.Uint32(header[2:6]),
		Ack:   binary.BigEndian.Uint32(header[6:10]),
	}

	if n := binary.BigEndian.Uint16(header[10:12]); n > 0 {
		m.Payload = make([]byte, n)
		if _, err := io.ReadFull(r, m.Payload); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewMessage creates a message with the given type and payload
func NewMessage(t MessageType, payload []byte) *Message {
	return &Message{Type: t, Flags: FlagNone, Payload: payload}
}

// SnapshotMessage frames a client snapshot
func SnapshotMessage(s Snapshot) (*Message, error) {
	data, err := EncodeSnapshot(s)
	if err != nil {
		return nil, err
	}
	return NewMessage(MsgSnapshot, data), nil
}

// RosterMessage frames a relay roster
func RosterMessage(r Roster) (*Message, error) {
	data, err := EncodeRoster(r)
	if err != nil {
		return nil, err
	}
	return NewMessage(MsgRoster, data), nil
}

// JoinMessage frames the relay greeting
func JoinMessage(j Join) (*Message, error) {
	data, err := EncodeJoin(j)
	if err != nil {
		return nil, err
	}
	return NewMessage(MsgJoin, data), nil
}
