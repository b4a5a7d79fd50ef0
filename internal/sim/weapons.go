package sim

// updateWeapons evaluates fire actions for the current tick's input
// against p's equipped weapon and cooldowns. Called once per player,
// per tick, after movement and collision resolution, matching the
// teacher-derived ordering (move, resolve, act).
func updateWeapons(g *Game, p *Player, input *Input, dt float64) {
	switch p.CurrentWeaponID() {
	case WeaponSniper:
		updateSniper(g, p, input)
	case WeaponNade:
		updateNade(g, p, input, dt)
	}

	if input.IsActive(InputSwitchWeapon) {
		p.CurrentWeapon = 1 - p.CurrentWeapon
	}
}

// updateSniper fires a single hitscan shot on ShootPressed if the
// sniper's cooldown has elapsed: raycast against the map and against
// every other player, register a trail projectile for the nearest
// impact, and if a player is struck before the wall, enqueue damage.
func updateSniper(g *Game, p *Player, input *Input) {
	if p.TimeLeftInWeaponCooldown[WeaponSniper] > 0 {
		return
	}
	if !input.IsActive(InputShootPressed) {
		return
	}

	p.TimeLeftInWeaponCooldown[WeaponSniper] = weaponSniperCooldown

	mapHit := RaycastMap(&g.Map, p.Pos, p.Look)
	impact := p.Pos.Add(p.Look.Scale(64))
	impactDist := mapHit.Distance
	if !mapHit.Hit {
		impactDist = 1e9
	} else {
		impact = mapHit.Impact
	}

	var hitPlayer PlayerId
	bestDist := impactDist

	g.Players.ForEach(func(id uint64, other *Player) {
		if other.ID == p.ID || other.Health <= 0 {
			return
		}
		res := RayVsCircle(p.Pos, p.Look, Circle{Pos: other.Pos, Radius: playerRadius})
		if res.Hit && res.Distance < bestDist {
			bestDist = res.Distance
			hitPlayer = other.ID
			impact = res.Impact
		}
	})

	if hitPlayer != 0 {
		g.Damage.Insert(DamageEntry{PlayerID: hitPlayer, Damage: sniperDamage})
	}

	hs := HitscanProjectile{
		PlayerIDFrom: p.ID,
		PlayerIDTo:   hitPlayer,
		Dir:          p.Look,
		Pos:          p.Pos,
		Impact:       impact,
		TimeLeft:     sniperTrailTime,
	}
	g.Hitscans.Insert(hs)
	g.NewHitscans = append(g.NewHitscans, hs)

	g.Sounds.Insert(SpatialSound{PlayerIDFrom: p.ID, Sound: SoundSniperFire, Pos: p.Pos})
}

// updateNade charges nade_distance while ShootHeld is active, capped at
// nadeMaxDistance, and launches a grenade on ShootReleased. Launch
// speed is a scalar multiple of the charged distance, and the wall
// impact point, normal and distance are precomputed with a single
// raycast so step() never needs to re-test the map for an in-flight
// grenade's terminal bounce.
func updateNade(g *Game, p *Player, input *Input, dt float64) {
	if p.TimeLeftInWeaponCooldown[WeaponNade] > 0 {
		return
	}

	if input.IsActive(InputShootHeld) {
		p.NadeDistance += dt
		if p.NadeDistance > nadeMaxDistance {
			p.NadeDistance = nadeMaxDistance
		}
		return
	}

	if !input.IsActive(InputShootReleased) || p.NadeDistance == 0 {
		return
	}

	distance := p.NadeDistance
	p.NadeDistance = 0
	p.TimeLeftInWeaponCooldown[WeaponNade] = weaponNadeCooldown

	mapHit := RaycastMap(&g.Map, p.Pos, p.Look)

	nd := NadeProjectile{
		PlayerIDFrom: p.ID,
		Dir:          p.Look,
		StartPos:     p.Pos,
		Pos:          p.Pos,
		Vel:          distance * nadeSpeedScale,
		TimeLeft:     nadeExplodeTime,
	}
	if mapHit.Hit {
		nd.Impact = mapHit.Impact
		nd.ImpactNormal = mapHit.Normal
		nd.ImpactDistance = mapHit.Distance
	} else {
		nd.ImpactDistance = 1e9
	}

	g.Nades.Insert(nd)
	g.NewNades = append(g.NewNades, nd)

	g.Sounds.Insert(SpatialSound{PlayerIDFrom: p.ID, Sound: SoundNadeBeep, Pos: p.Pos})
}
