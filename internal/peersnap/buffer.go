// Package peersnap buffers authoritative snapshots for a client's
// remote peers and applies them once the client's local active_tick
// catches up to the snapshot's sim_tick. Snapshots arrive out of band
// from prediction (they ride their own PeerAuth packets) so a FIFO
// per peer, rather than a single latest-wins cell, is needed: applying
// snapshots out of order would make a peer briefly jump backward.
package peersnap

import (
	"tickarena/internal/collections"
	"tickarena/internal/sim"
)

// entry is one buffered PeerAuth record: the player state the server
// had at SimTick, destined to be visible to the local client once its
// own active_tick reaches SimTick.
type entry struct {
	SimTick uint64
	Player  sim.Player
}

// bufferCapacity bounds how far a peer's snapshots can queue up before
// the oldest is dropped to make room; a peer this far behind has
// worse problems than a stale render, and this keeps the buffer a
// genuinely fixed-capacity structure rather than an unbounded queue.
const bufferCapacity = 32

// Buffer is one remote peer's snapshot FIFO.
type Buffer struct {
	ring *collections.CircularBuffer[entry]
	last sim.Player
	seen bool
}

// NewBuffer creates an empty buffer for one peer.
func NewBuffer() *Buffer {
	return &Buffer{ring: collections.NewCircularBuffer[entry](bufferCapacity)}
}

// Push enqueues a newly received PeerAuth snapshot. If the buffer is
// full, the oldest queued snapshot is dropped to make room — it would
// have been superseded by this one before ever becoming due anyway.
func (b *Buffer) Push(simTick uint64, p sim.Player) {
	if b.ring.Full() {
		b.ring.PopFront()
	}
	b.ring.PushBack(entry{SimTick: simTick, Player: p})
}

// ApplyUpTo dequeues every buffered snapshot whose SimTick is <=
// activeTick and returns the player state from the most recent one
// (later snapshots in the same call supersede earlier ones), or
// reports ok=false if nothing was due yet. The peer's last-applied
// state is cached so callers can always render something even on a
// tick with nothing new due.
func (b *Buffer) ApplyUpTo(activeTick uint64) (sim.Player, bool) {
	applied := false
	for b.ring.Len() > 0 {
		e := b.ring.Front()
		if e.SimTick > activeTick {
			break
		}
		b.ring.PopFront()
		b.last = e.Player
		b.seen = true
		applied = true
	}
	return b.last, applied
}

// Latest returns the most recently applied player state, or the zero
// value and false if ApplyUpTo has never applied anything yet (e.g. a
// peer that just connected and has no snapshot due).
func (b *Buffer) Latest() (sim.Player, bool) {
	return b.last, b.seen
}

// Len reports how many snapshots are currently queued, un-applied.
func (b *Buffer) Len() int { return b.ring.Len() }
