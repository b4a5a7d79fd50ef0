package input

import (
	"testing"

	"tickarena/internal/sim"
)

func TestNoOpSourceSatisfiesInterface(t *testing.T) {
	var src Source = NewNoOpSource()
	in := src.Poll()
	for _, active := range in.Active {
		if active {
			t.Fatalf("expected no actions active, got %+v", in)
		}
	}
	if err := src.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestParseLineActionsAndLook(t *testing.T) {
	in := parseLine("moveright shootheld look=0,1")
	if !in.IsActive(sim.InputMoveRight) {
		t.Fatalf("expected moveright active")
	}
	if !in.IsActive(sim.InputShootHeld) {
		t.Fatalf("expected shootheld active")
	}
	if in.Look != (sim.Vec2{X: 0, Y: 1}) {
		t.Fatalf("expected look (0,1), got %v", in.Look)
	}
}

func TestParseLineUnrecognizedTokenSkipped(t *testing.T) {
	in := parseLine("bogus moveup")
	if !in.IsActive(sim.InputMoveUp) {
		t.Fatalf("expected moveup still recognized despite a bogus token")
	}
}

func TestParseLineDefaultsLookWhenAbsent(t *testing.T) {
	in := parseLine("movedown")
	if in.Look != (sim.Vec2{X: 1, Y: 0}) {
		t.Fatalf("expected default look (1,0), got %v", in.Look)
	}
}
