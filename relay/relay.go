// Package relay fans every client's last reported position out to all other clients at a fixed rate
package relay

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/lixenwraith/outrun/core"
	"github.com/lixenwraith/outrun/network"
	"github.com/lixenwraith/outrun/parameter"
)

// Conn is one attached client as seen by the relay
// Both sends must not block; false means the message was dropped
type Conn interface {
	SendJoin(network.Join) bool
	SendRoster(network.Roster) bool
}

type client struct {
	id     int
	conn   Conn
	offset float64
	z      float64
}

// Relay owns the client set
type Relay struct {
	mu      sync.Mutex
	clients map[int]*client
	nextID  int

	interval time.Duration
	log      *slog.Logger

	dropped int
}

// New creates a relay broadcasting every interval, the default rate when zero
func New(interval time.Duration, log *slog.Logger) *Relay {
	if interval <= 0 {
		interval = parameter.RelayTickInterval
	}
	return &Relay{
		clients:  make(map[int]*client),
		interval: interval,
		log:      core.Logger(log),
	}
}

// Join registers conn, greets it with its id and returns the id
// The greeting is queued before the client can appear in any broadcast
func (r *Relay) Join(conn Conn) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	conn.SendJoin(network.Join{ID: id})
	r.clients[id] = &client{id: id, conn: conn}

	r.log.Info("client joined", "id", id, "clients", len(r.clients))
	return id
}

// Leave forgets a client; unknown ids are ignored
func (r *Relay) Leave(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return
	}
	delete(r.clients, id)
	r.log.Info("client left", "id", id, "clients", len(r.clients))
}

// Update stores the last reported position of a client
func (r *Relay) Update(id int, s network.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[id]; ok {
		c.offset, c.z = s.Offset, s.Z
	}
}

// Broadcast sends every client a roster of all other clients, ordered by id
func (r *Relay) Broadcast() {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	all := make([]network.CarState, len(ids))
	for i, id := range ids {
		c := r.clients[id]
		all[i] = network.CarState{ID: id, Offset: c.offset, Z: c.z}
	}

	for i, id := range ids {
		cars := make([]network.CarState, 0, len(all)-1)
		cars = append(cars, all[:i]...)
		cars = append(cars, all[i+1:]...)
		if !r.clients[id].conn.SendRoster(network.Roster{Cars: cars}) {
			r.dropped++
			r.log.Debug("roster dropped", "id", id)
		}
	}
}

// Count returns the number of attached clients
func (r *Relay) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Dropped returns how many rosters were discarded on full queues
func (r *Relay) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Run broadcasts on every tick until ctx ends
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Broadcast()
		}
	}
}
