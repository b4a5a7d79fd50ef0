package sim

import "testing"

func TestStepFadesHitscanTrail(t *testing.T) {
	g := newTestGame()
	g.Hitscans.Insert(HitscanProjectile{TimeLeft: 0.01})

	Step(g, 1.0/60.0)

	if g.Hitscans.Len() != 0 {
		t.Fatalf("expected expired hitscan trail to be removed, got %d remaining", g.Hitscans.Len())
	}
}

func TestStepDetonatesNadeOnFuseExpiry(t *testing.T) {
	g := newTestGame()
	g.Nades.Insert(NadeProjectile{
		PlayerIDFrom:   1,
		StartPos:       Vec2{10, 15},
		Pos:            Vec2{10, 15},
		Dir:            Vec2{1, 0},
		Vel:            0,
		TimeLeft:       0.01,
		ImpactDistance: 1e9,
	})

	Step(g, 1.0/60.0)

	if g.Nades.Len() != 0 {
		t.Fatalf("expected detonated nade to be removed, got %d remaining", g.Nades.Len())
	}
	if g.Explosions.Len() != 1 {
		t.Fatalf("expected one explosion marker left behind, got %d", g.Explosions.Len())
	}
}

func TestDetonateDamagesNearbyPlayersWithFalloff(t *testing.T) {
	g := newTestGame()
	victim := NewPlayer(2, Vec2{10.5, 15}, 0)
	g.Players.Insert(2, victim)

	nd := &NadeProjectile{PlayerIDFrom: 1, Pos: Vec2{10, 15}}
	detonate(g, nd)

	if g.Damage.Len() != 1 {
		t.Fatalf("expected one damage entry for the nearby player, got %d", g.Damage.Len())
	}
	var dmg float64
	g.Damage.ForEach(func(i int, e *DamageEntry) { dmg = e.Damage })
	if dmg <= 0 || dmg > explosionBaseDamage {
		t.Fatalf("expected falloff damage in (0, %v], got %v", explosionBaseDamage, dmg)
	}
}

func TestDetonateSkipsPlayersOutOfRadius(t *testing.T) {
	g := newTestGame()
	farAway := NewPlayer(2, Vec2{100, 100}, 0)
	g.Players.Insert(2, farAway)

	nd := &NadeProjectile{PlayerIDFrom: 1, Pos: Vec2{10, 15}}
	detonate(g, nd)

	if g.Damage.Len() != 0 {
		t.Fatalf("expected no damage for a player outside blast radius, got %d entries", g.Damage.Len())
	}
}
