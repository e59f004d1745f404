package network

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLayout(t *testing.T) {
	m := &Message{Type: MsgRoster, Seq: 0x01020304, Ack: 0x0a0b0c0d, Payload: []byte("xy")}
	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))

	want := []byte{0x11, 0x00, 1, 2, 3, 4, 0x0a, 0x0b, 0x0c, 0x0d, 0, 2, 'x', 'y'}
	assert.Equal(t, want, buf.Bytes())

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestFrameSequence(t *testing.T) {
	var buf bytes.Buffer
	snap, err := SnapshotMessage(Snapshot{Offset: 1, Z: 2})
	require.NoError(t, err)
	require.NoError(t, snap.Encode(&buf))
	require.NoError(t, NewMessage(MsgHeartbeat, nil).Encode(&buf))

	first, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, MsgSnapshot, first.Type)
	s, err := DecodeSnapshot(first.Payload)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Offset: 1, Z: 2}, s)

	second, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, MsgHeartbeat, second.Type)
	assert.Nil(t, second.Payload)

	_, err = Decode(&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestFrameTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMessage(MsgJoin, []byte(`{"id":1}`)).Encode(&buf))
	short := bytes.NewReader(buf.Bytes()[:buf.Len()-2])

	_, err := Decode(short)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestPayloadTooLarge(t *testing.T) {
	m := NewMessage(MsgRoster, make([]byte, MaxPayloadSize+1))
	assert.ErrorIs(t, m.Encode(io.Discard), ErrPayloadTooLarge)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "roster", MsgRoster.String())
	assert.Equal(t, "type(0x7f)", MessageType(0x7f).String())
}
