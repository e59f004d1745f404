package relay

import (
	"log/slog"
	"sync"

	"github.com/lixenwraith/outrun/core"
	"github.com/lixenwraith/outrun/network"
)

// tcpConn adapts one framed peer to Conn
type tcpConn struct {
	t    *network.Transport
	peer network.PeerID
}

func (c tcpConn) SendJoin(j network.Join) bool {
	msg, err := network.JoinMessage(j)
	if err != nil {
		return false
	}
	return c.t.Send(c.peer, msg)
}

func (c tcpConn) SendRoster(ro network.Roster) bool {
	msg, err := network.RosterMessage(ro)
	if err != nil {
		return false
	}
	return c.t.Send(c.peer, msg)
}

// AttachTCP routes a server transport's peers into r
// Call before t.Start
func AttachTCP(r *Relay, t *network.Transport, log *slog.Logger) {
	log = core.Logger(log)

	var mu sync.Mutex
	ids := make(map[network.PeerID]int)

	lookup := func(peer network.PeerID) (int, bool) {
		mu.Lock()
		defer mu.Unlock()
		id, ok := ids[peer]
		return id, ok
	}

	onConnect := func(peer network.PeerID) {
		id := r.Join(tcpConn{t: t, peer: peer})
		mu.Lock()
		ids[peer] = id
		mu.Unlock()
	}

	onDisconnect := func(peer network.PeerID) {
		mu.Lock()
		id, ok := ids[peer]
		delete(ids, peer)
		mu.Unlock()
		if ok {
			r.Leave(id)
		}
	}

	onMessage := func(peer network.PeerID, msg *network.Message) {
		if msg.Type != network.MsgSnapshot {
			log.Debug("unexpected message", "peer", peer, "type", msg.Type)
			return
		}
		id, ok := lookup(peer)
		if !ok {
			return
		}
		s, err := network.DecodeSnapshot(msg.Payload)
		if err != nil {
			log.Warn("snapshot dropped", "id", id, "error", err)
			return
		}
		r.Update(id, s)
	}

	t.SetHandlers(onConnect, onDisconnect, onMessage)
}
