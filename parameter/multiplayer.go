package parameter

import "time"

// Relay
const (
	// RelayTickInterval is how often the relay fans rosters out
	RelayTickInterval = time.Second / 60

	// RelayDefaultAddress is the relay listen address
	RelayDefaultAddress = ":7777"

	// RelayWSPath serves the websocket binding
	RelayWSPath = "/ws"
)

// Client sync
const (
	// SnapshotQueueSize buffers outbound snapshots before they are dropped
	SnapshotQueueSize = 64

	// WSReadLimit caps inbound websocket frames
	WSReadLimit = 1 << 20
)
