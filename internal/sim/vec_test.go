package sim

import (
	"math"
	"testing"
)

func TestVec2AddSub(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	if got := a.Add(b); got != (Vec2{4, 6}) {
		t.Fatalf("Add: got %v", got)
	}
	if got := b.Sub(a); got != (Vec2{2, 2}) {
		t.Fatalf("Sub: got %v", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Fatalf("expected unit length, got %v", n.Len())
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Fatalf("expected zero vector to normalize to zero, got %v", got)
	}
}

func TestVec2NormalizeOrFallsBackOnZeroOrNonFinite(t *testing.T) {
	def := Vec2{1, 0}
	if got := (Vec2{}).NormalizeOr(def); got != def {
		t.Fatalf("expected fallback for zero vector, got %v", got)
	}
	nonFinite := Vec2{math.NaN(), 0}
	if got := nonFinite.NormalizeOr(def); got != def {
		t.Fatalf("expected fallback for non-finite vector, got %v", got)
	}
	v := Vec2{0, 2}
	if got := v.NormalizeOr(def); got != (Vec2{0, 1}) {
		t.Fatalf("expected normalized vector unchanged, got %v", got)
	}
}

func TestVec2Reflect(t *testing.T) {
	incoming := Vec2{1, -1}
	normal := Vec2{0, 1}
	got := incoming.Reflect(normal)
	want := Vec2{1, 1}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Fatalf("Reflect: got %v, want %v", got, want)
	}
}

func TestVec2IsFinite(t *testing.T) {
	if !(Vec2{1, 2}).IsFinite() {
		t.Fatal("expected finite vector to report finite")
	}
	if (Vec2{math.Inf(1), 0}).IsFinite() {
		t.Fatal("expected infinite component to report non-finite")
	}
}
