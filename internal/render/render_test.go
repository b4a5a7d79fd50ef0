package render

import (
	"os"
	"path/filepath"
	"testing"

	"tickarena/internal/sim"
)

func TestNoOpRendererSatisfiesInterface(t *testing.T) {
	var r Renderer = NewNoOpRenderer()
	g := sim.NewGame(sim.NewDefaultMap(), 1)
	if err := r.Draw(g, 0, 1.0/60.0, 0); err != nil {
		t.Fatalf("expected no-op draw to succeed, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("expected no-op close to succeed, got %v", err)
	}
}

func TestDebugRendererWritesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")

	g := sim.NewGame(sim.NewDefaultMap(), 1)
	p := sim.NewPlayer(1, sim.Vec2{X: 2, Y: 2}, 0.3)
	g.Players.Insert(p.ID, p)

	var r Renderer = NewDebugRenderer(256, 256, path)
	if err := r.Draw(g, p.ID, 1.0/60.0, 0); err != nil {
		t.Fatalf("draw: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected frame written to disk: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty PNG output")
	}
}
