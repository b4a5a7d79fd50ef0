package sim

import "math"

// Vec2 is a 2D vector used throughout the simulation for position,
// velocity and look direction. It is a plain value type so the
// simulation step never allocates for vector math.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len2() float64        { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float64         { return math.Sqrt(a.Len2()) }
func (a Vec2) IsZero() bool         { return a.X == 0 && a.Y == 0 }

func (a Vec2) Equal(b Vec2) bool { return a.X == b.X && a.Y == b.Y }

// Normalize returns a unit vector in the direction of a, or the zero
// vector if a is itself zero. Callers that need a guaranteed-unit
// fallback (e.g. look direction) should use NormalizeOr instead.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// NormalizeOr normalizes a, falling back to def if a is zero or
// non-finite. This is how an ambiguous NaN/zero look vector is made
// safe per the error handling design: substituted with a fixed default
// rather than propagated into the deterministic step.
func (a Vec2) NormalizeOr(def Vec2) Vec2 {
	if !a.IsFinite() || a.IsZero() {
		return def
	}
	return a.Normalize()
}

// IsFinite reports whether both components are finite (not NaN/Inf).
func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0)
}

// Reflect reflects a about the unit normal n: a - 2*(a.n)*n.
func (a Vec2) Reflect(n Vec2) Vec2 {
	d := 2 * a.Dot(n)
	return Vec2{a.X - d*n.X, a.Y - d*n.Y}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
