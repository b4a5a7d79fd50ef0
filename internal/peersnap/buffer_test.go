package peersnap

import (
	"testing"

	"tickarena/internal/sim"
)

func TestBufferAppliesInOrderUpToActiveTick(t *testing.T) {
	b := NewBuffer()

	if _, ok := b.Latest(); ok {
		t.Fatalf("expected no snapshot before anything is pushed")
	}

	b.Push(10, sim.NewPlayer(1, sim.Vec2{X: 1}, 0))
	b.Push(12, sim.NewPlayer(1, sim.Vec2{X: 2}, 0))
	b.Push(15, sim.NewPlayer(1, sim.Vec2{X: 3}, 0))

	p, applied := b.ApplyUpTo(13)
	if !applied {
		t.Fatalf("expected an application at active tick 13")
	}
	if p.Pos.X != 2 {
		t.Fatalf("expected tick-12 snapshot to win at active tick 13, got X=%v", p.Pos.X)
	}
	if b.Len() != 1 {
		t.Fatalf("expected 1 snapshot still queued, got %d", b.Len())
	}

	p, applied = b.ApplyUpTo(20)
	if !applied || p.Pos.X != 3 {
		t.Fatalf("expected tick-15 snapshot to apply at active tick 20, got %+v applied=%v", p, applied)
	}
	if b.Len() != 0 {
		t.Fatalf("expected buffer drained, got %d", b.Len())
	}
}

func TestBufferApplyUpToNothingDueYet(t *testing.T) {
	b := NewBuffer()
	b.Push(50, sim.NewPlayer(1, sim.Vec2{}, 0))

	if _, applied := b.ApplyUpTo(10); applied {
		t.Fatalf("expected no application before the snapshot's tick is due")
	}
}

func TestManagerTracksMultiplePeers(t *testing.T) {
	m := NewManager()
	m.Peer(1).Push(5, sim.NewPlayer(1, sim.Vec2{X: 1}, 0))
	m.Peer(2).Push(5, sim.NewPlayer(2, sim.Vec2{X: 2}, 0))

	out := m.ApplyAll(10)
	if len(out) != 2 {
		t.Fatalf("expected 2 peers rendered, got %d", len(out))
	}

	m.Remove(1)
	out = m.ApplyAll(10)
	if len(out) != 1 {
		t.Fatalf("expected 1 peer after removal, got %d", len(out))
	}
	if _, ok := out[2]; !ok {
		t.Fatalf("expected peer 2 to remain")
	}
}
