package serverauth

import (
	"tickarena/internal/collections"
	"tickarena/internal/drift"
	"tickarena/internal/sim"
)

// queuedInput is one client's captured input scheduled for a future
// (or current) server sim-tick, waiting in the peer's input queue
// until the server's own sim_tick reaches it.
type queuedInput struct {
	SimTick uint64
	Input   sim.Input
}

// inputQueueCapacity bounds how many future inputs can be queued per
// peer before the oldest is dropped; a well-behaved client never gets
// close, since it sends one update per network tick.
const inputQueueCapacity = 64

// Peer is everything the server tracks about one connected client: its
// player id, its drift-correction handshake state, and its queue of
// not-yet-applied inputs.
type Peer struct {
	ID PlayerID

	Drift *drift.ServerSide

	queue *collections.CircularBuffer[queuedInput]

	// LastNetTick is the net_tick carried by the most recently received
	// batch from this peer. AcceptBatch records it but does not compare
	// against it, so a repeated batch is not filtered out here.
	LastNetTick uint64

	// PendingRespawn is set when the player is dead and awaiting the
	// next tick's respawn placement.
	PendingRespawn bool

	// LastConsumedSimTick is the client sim-tick of the most recent
	// input this peer actually had applied to its player, carried
	// forward across idle ticks (no input queued yet) so Auth/PeerAuth
	// packets always report the tick the snapshot really corresponds
	// to, never a tick that was merely idled through.
	LastConsumedSimTick uint64
}

// PlayerID is a local alias kept for readability within this package;
// identical to sim.PlayerId.
type PlayerID = sim.PlayerId

// NewPeer creates tracking state for a freshly connected player.
func NewPeer(id PlayerID) *Peer {
	return &Peer{
		ID:    id,
		Drift: drift.NewServerSide(),
		queue: collections.NewCircularBuffer[queuedInput](inputQueueCapacity),
	}
}

// Enqueue schedules input for simTick. If the queue is full, the
// oldest still-queued input is dropped to make room — it would belong
// to a tick far enough in the past that this peer is already being
// treated as badly behind.
func (p *Peer) Enqueue(simTick uint64, input sim.Input) {
	if p.queue.Full() {
		p.queue.PopFront()
	}
	p.queue.PushBack(queuedInput{SimTick: simTick, Input: input})
}

// Due returns the input scheduled for exactly simTick and removes it
// from the queue, or reports ok=false if nothing is queued for that
// tick yet (the server then runs the tick with an idle input, per the
// "at most one input per tick" consumption rule: a tick with nothing
// queued simply contributes no movement). consumedSimTick is the
// client tick the player's state now reflects: simTick itself when an
// input was actually due, or the peer's last genuinely consumed tick
// when this tick idled, so callers always have a tick to stamp
// outgoing Auth/PeerAuth packets with.
func (p *Peer) Due(simTick uint64) (input sim.Input, consumedSimTick uint64, ok bool) {
	if p.queue.Len() > 0 {
		if front := p.queue.Front(); front.SimTick == simTick {
			p.queue.PopFront()
			p.LastConsumedSimTick = front.SimTick
			return front.Input, front.SimTick, true
		}
	}
	return sim.Input{}, p.LastConsumedSimTick, false
}
