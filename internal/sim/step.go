package sim

import "math"

// Step advances every transient projectile and effect list by one
// tick: hitscan trails fade, grenades fly, bounce and detonate, and
// explosions and footstep markers fade. It runs once per simulated
// tick, after every player's UpdatePlayer call, so a grenade can never
// explode against a player position that hasn't moved yet this tick.
func Step(g *Game, dt float64) {
	stepHitscans(g, dt)
	stepNades(g, dt)
	stepExplosions(g, dt)
	stepSteps(g, dt)

	g.Hitscans.Compact()
	g.Nades.Compact()
	g.Explosions.Compact()
	g.Steps.Compact()
}

func stepHitscans(g *Game, dt float64) {
	g.Hitscans.ForEach(func(i int, hs *HitscanProjectile) {
		hs.TimeLeft -= dt
		if hs.TimeLeft <= 0 {
			g.Hitscans.RemoveAt(i)
		}
	})
}

func stepSteps(g *Game, dt float64) {
	g.Steps.ForEach(func(i int, s *Footstep) {
		s.TimeLeft -= dt
		if s.TimeLeft <= 0 {
			g.Steps.RemoveAt(i)
		}
	})
}

func stepExplosions(g *Game, dt float64) {
	g.Explosions.ForEach(func(i int, e *Explosion) {
		e.TimeLeft -= dt
		if e.TimeLeft <= 0 {
			g.Explosions.RemoveAt(i)
		}
	})
}

// stepNades integrates in-flight grenades, reflects them off the wall
// impact precomputed at launch, and detonates on fuse expiry: an
// explosion marker is left behind and every player with line of sight
// to the detonation point within its radius takes falloff damage.
func stepNades(g *Game, dt float64) {
	g.Nades.ForEach(func(i int, nd *NadeProjectile) {
		nd.TimeLeft -= dt

		nd.Vel -= nadeDeceleration * dt
		if nd.Vel < 0 {
			nd.Vel = 0
		}

		step := nd.Vel * dt
		remaining := nd.ImpactDistance - nd.Traveled
		if step >= remaining && remaining > 0 {
			// Cross the wall boundary this sub-step: land exactly on the
			// impact point and reflect the remainder off its normal.
			nd.Pos = nd.Impact
			nd.Traveled = nd.ImpactDistance
			overshoot := step - remaining
			nd.Dir = nd.Dir.Reflect(nd.ImpactNormal)
			nd.Pos = nd.Pos.Add(nd.Dir.Scale(overshoot))
			nd.Traveled += overshoot
		} else {
			nd.Pos = nd.Pos.Add(nd.Dir.Scale(step))
			nd.Traveled += step
		}

		if nd.TimeLeft <= 0 {
			detonate(g, nd)
			g.Nades.RemoveAt(i)
			return
		}
	})
}

func detonate(g *Game, nd *NadeProjectile) {
	const radius = 2.0

	g.Explosions.Insert(Explosion{
		PlayerIDFrom: nd.PlayerIDFrom,
		Pos:          nd.Pos,
		Radius:       radius,
		TimeLeft:     0.5,
	})
	g.Sounds.Insert(SpatialSound{PlayerIDFrom: nd.PlayerIDFrom, Sound: SoundExplosion, Pos: nd.Pos})

	g.Players.ForEach(func(id uint64, other *Player) {
		if other.Health <= 0 {
			return
		}
		toPlayer := other.Pos.Sub(nd.Pos)
		dist := toPlayer.Len()
		if dist > radius {
			return
		}
		if dist > 0 {
			dir := toPlayer.Scale(1 / dist)
			wallHit := RaycastMap(&g.Map, nd.Pos, dir)
			if wallHit.Hit && wallHit.Distance < dist {
				return
			}
		}
		falloff := 1 - dist/radius
		g.Damage.Insert(DamageEntry{
			PlayerID: other.ID,
			Damage:   explosionBaseDamage * math.Max(0, falloff),
		})
	})
}
