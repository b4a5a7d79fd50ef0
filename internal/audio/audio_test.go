package audio

import (
	"testing"

	"tickarena/internal/sim"
)

func TestNoOpSinkSatisfiesInterface(t *testing.T) {
	var s Sink = NewNoOpSink()
	g := sim.NewGame(sim.NewDefaultMap(), 1)
	s.PlaySounds(g, sim.Vec2{}, sim.Vec2{X: 1})
	if err := s.Close(); err != nil {
		t.Fatalf("expected no-op close to succeed, got %v", err)
	}
}

func TestClampPan(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1.5, 1},
		{-1.5, -1},
	}
	for _, c := range cases {
		if got := clampPan(c.in); got != c.want {
			t.Fatalf("clampPan(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLoadClipMissingFileErrors(t *testing.T) {
	if _, err := loadClip("does_not_exist.ogg"); err == nil {
		t.Fatalf("expected an error loading a missing clip")
	}
}
