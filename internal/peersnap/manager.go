package peersnap

import "tickarena/internal/sim"

// Manager owns one Buffer per remote peer the local client currently
// knows about, keyed by PlayerId.
type Manager struct {
	peers map[sim.PlayerId]*Buffer
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{peers: make(map[sim.PlayerId]*Buffer)}
}

// Peer returns the buffer for id, creating one on first reference (the
// moment a PeerGreeting or PeerAuth for an unseen id arrives).
func (m *Manager) Peer(id sim.PlayerId) *Buffer {
	b, ok := m.peers[id]
	if !ok {
		b = NewBuffer()
		m.peers[id] = b
	}
	return b
}

// Remove discards a peer's buffer, e.g. on PeerDisconnected.
func (m *Manager) Remove(id sim.PlayerId) {
	delete(m.peers, id)
}

// ApplyAll pushes activeTick forward for every known peer and returns
// the resulting render state for each.
func (m *Manager) ApplyAll(activeTick uint64) map[sim.PlayerId]sim.Player {
	out := make(map[sim.PlayerId]sim.Player, len(m.peers))
	for id, b := range m.peers {
		b.ApplyUpTo(activeTick)
		if p, ok := b.Latest(); ok {
			out[id] = p
		}
	}
	return out
}
