package sim

import "math"

// CollisionResult is the outcome of a circle-vs-{circle,AABB} test: an
// overlap flag and a resolve vector that separates the two shapes.
type CollisionResult struct {
	Colliding bool
	Resolve   Vec2
}

// AABB is an axis-aligned bounding box anchored at its minimum corner.
type AABB struct {
	Pos           Vec2
	Width, Height float64
}

// Circle is a position plus radius.
type Circle struct {
	Pos    Vec2
	Radius float64
}

// RaycastResult is the outcome of a ray test.
type RaycastResult struct {
	Hit      bool
	Impact   Vec2
	Normal   Vec2
	Distance float64
}

// CircleVsCircle returns the overlap and separating vector between two
// circles, pushing c1 out of c0 along the line between their centers.
func CircleVsCircle(c0, c1 Circle) CollisionResult {
	delta := c1.Pos.Sub(c0.Pos)
	d := delta.Len()
	radiusSum := c0.Radius + c1.Radius
	if d >= radiusSum || d == 0 {
		return CollisionResult{}
	}
	return CollisionResult{
		Colliding: true,
		Resolve:   delta.Scale((radiusSum - d) / d),
	}
}

// AABBvsCircle returns the overlap and separating vector that pushes
// circle out of aabb, found via nearest-point clamping.
func AABBvsCircle(box AABB, circle Circle) CollisionResult {
	nearest := Vec2{
		X: clamp(circle.Pos.X, box.Pos.X, box.Pos.X+box.Width),
		Y: clamp(circle.Pos.Y, box.Pos.Y, box.Pos.Y+box.Height),
	}
	toCenter := nearest.Sub(circle.Pos)
	dist2 := toCenter.Len2()

	if circle.Radius*circle.Radius < dist2 {
		return CollisionResult{}
	}

	dist := math.Sqrt(dist2)
	if dist == 0 {
		return CollisionResult{Colliding: true}
	}
	return CollisionResult{
		Colliding: true,
		Resolve:   toCenter.Scale(-(circle.Radius - dist) / dist),
	}
}

// RayVsCircle intersects a ray (pos, unit dir) against circle, returning
// the nearest forward hit.
func RayVsCircle(pos, dir Vec2, circle Circle) RaycastResult {
	toCenter := circle.Pos.Sub(pos)
	proj := toCenter.Dot(dir)
	if proj < 0 {
		return RaycastResult{}
	}

	closest := pos.Add(dir.Scale(proj))
	d2 := closest.Sub(circle.Pos).Len2()
	r2 := circle.Radius * circle.Radius
	if d2 > r2 {
		return RaycastResult{}
	}

	back := math.Sqrt(r2 - d2)
	dist := proj - back
	if dist < 0 {
		dist = proj + back
		if dist < 0 {
			return RaycastResult{}
		}
	}

	impact := pos.Add(dir.Scale(dist))
	normal := impact.Sub(circle.Pos).Normalize()
	return RaycastResult{Hit: true, Impact: impact, Normal: normal, Distance: dist}
}

// RayVsAABB intersects a ray (pos, unit dir) against box using the slab
// method, returning the nearest forward hit and its face normal.
func RayVsAABB(pos, dir Vec2, box AABB) RaycastResult {
	min := box.Pos
	max := Vec2{box.Pos.X + box.Width, box.Pos.Y + box.Height}

	tMin, tMax := math.Inf(-1), math.Inf(1)
	normal := Vec2{}

	for axis := 0; axis < 2; axis++ {
		var p, d, lo, hi float64
		if axis == 0 {
			p, d, lo, hi = pos.X, dir.X, min.X, max.X
		} else {
			p, d, lo, hi = pos.Y, dir.Y, min.Y, max.Y
		}

		if d == 0 {
			if p < lo || p > hi {
				return RaycastResult{}
			}
			continue
		}

		t1 := (lo - p) / d
		t2 := (hi - p) / d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}

		if t1 > tMin {
			tMin = t1
			if axis == 0 {
				normal = Vec2{sign, 0}
			} else {
				normal = Vec2{0, sign}
			}
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return RaycastResult{}
		}
	}

	if tMin < 0 {
		if tMax < 0 {
			return RaycastResult{}
		}
		tMin = tMax
	}

	return RaycastResult{
		Hit:      true,
		Impact:   pos.Add(dir.Scale(tMin)),
		Normal:   normal,
		Distance: tMin,
	}
}

// RaycastMap scans every Stone tile the ray could plausibly reach and
// returns the closest hit. Tiles are static, so a linear scan over the
// map's bounding area is acceptable; implementers with large maps may
// want a DDA walk instead, but correctness (closest hit wins) is what
// the spec requires.
func RaycastMap(m *Map, pos, dir Vec2) RaycastResult {
	var best RaycastResult
	bestDist := math.Inf(1)

	for j := 0; j < m.Height; j++ {
		for i := 0; i < m.Width; i++ {
			if m.Data[j*m.Width+i] != TileStone {
				continue
			}
			box := AABB{
				Pos:    Vec2{m.Origin.X + float64(i)*m.TileSize, m.Origin.Y + float64(j)*m.TileSize},
				Width:  m.TileSize,
				Height: m.TileSize,
			}
			res := RayVsAABB(pos, dir, box)
			if res.Hit && res.Distance < bestDist {
				bestDist = res.Distance
				best = res
			}
		}
	}
	return best
}

// staticCollisionOffsets are the 8 tile offsets examined around a
// player for static collision resolution.
var staticCollisionOffsets = [8]Vec2{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// ResolveStaticCollisions examines the 8 neighboring tiles around p and
// pushes it out of any overlapping Stone tile. If p was sliding and the
// resolve vector opposes the slide direction beyond the -0.6 dot
// threshold, the slide is cancelled and dodge_delay begins.
func ResolveStaticCollisions(m *Map, p *Player, playerRadius float64) {
	for _, offset := range staticCollisionOffsets {
		at := p.Pos.Add(offset.Scale(m.TileSize))
		if m.At(at) != TileStone {
			continue
		}

		origin := m.TileOrigin(at)
		box := AABB{Pos: origin, Width: m.TileSize, Height: m.TileSize}
		result := AABBvsCircle(box, Circle{Pos: p.Pos, Radius: playerRadius})
		if !result.Colliding {
			continue
		}

		p.Pos = p.Pos.Add(result.Resolve)

		resolveDir := result.Resolve.Normalize()
		if !resolveDir.IsZero() {
			if p.State == PlayerStateSliding {
				if p.Dodge.Dot(resolveDir) <= -0.6 {
					p.TimeLeftInDodge = 0
					p.TimeLeftInDodgeDelay = dodgeDelayTime
					p.State = PlayerStateDefault
				}
			}
			velDir := p.Velocity.Normalize()
			if !velDir.IsZero() && velDir.Dot(resolveDir) <= -0.6 {
				p.Velocity = Vec2{}
			}
		}
	}
}
