package sim

import "testing"

func TestCircleVsCircleNoOverlapWhenFarApart(t *testing.T) {
	res := CircleVsCircle(Circle{Pos: Vec2{0, 0}, Radius: 1}, Circle{Pos: Vec2{10, 0}, Radius: 1})
	if res.Colliding {
		t.Fatal("expected no collision between distant circles")
	}
}

func TestCircleVsCircleResolvesOverlap(t *testing.T) {
	res := CircleVsCircle(Circle{Pos: Vec2{0, 0}, Radius: 1}, Circle{Pos: Vec2{1, 0}, Radius: 1})
	if !res.Colliding {
		t.Fatal("expected overlapping circles to collide")
	}
	if res.Resolve.X <= 0 {
		t.Fatalf("expected resolve vector pushing along +X, got %v", res.Resolve)
	}
}

func TestRaycastMapHitsBorderWall(t *testing.T) {
	m := NewDefaultMap()
	res := RaycastMap(m, Vec2{15, 15}, Vec2{1, 0})
	if !res.Hit {
		t.Fatal("expected ray toward the border to hit a stone tile")
	}
}

func TestRayVsCircleHitsAlongDirection(t *testing.T) {
	res := RayVsCircle(Vec2{0, 0}, Vec2{1, 0}, Circle{Pos: Vec2{5, 0}, Radius: 1})
	if !res.Hit {
		t.Fatal("expected ray to hit circle directly ahead")
	}
	if res.Distance <= 0 || res.Distance >= 5 {
		t.Fatalf("expected impact distance in (0,5), got %v", res.Distance)
	}
}

func TestRayVsCircleMissesWhenOffAxis(t *testing.T) {
	res := RayVsCircle(Vec2{0, 0}, Vec2{1, 0}, Circle{Pos: Vec2{5, 5}, Radius: 0.5})
	if res.Hit {
		t.Fatal("expected ray to miss circle far off axis")
	}
}
