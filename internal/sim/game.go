package sim

import "tickarena/internal/collections"

// Capacity budgets for the game's fixed-size collections, adopted from
// original_source's game.h (MAX_CLIENTS, MAX_PROJECTILES, MAX_STEPS)
// and widened slightly where the hash map invariant in the collections
// design requires capacity >= MaxClients.
const (
	MaxClients              = 32
	MaxHitscanProjectiles   = 64
	MaxNadeProjectiles      = 64
	MaxExplosions           = 64
	MaxSoundsPerTick        = 64
	MaxSteps                = 128
	MaxDamageEntriesPerTick = MaxClients
)

// Game is the whole replicated simulation state: the map, every
// player, and the transient per-tick lists of projectiles, explosions,
// damage events, sounds and steps. The server owns the single
// canonical Game; each client owns a disjoint local Game advanced by
// prediction and periodically overwritten by server snapshots.
type Game struct {
	Map Map

	Players *collections.HashMap[Player]

	Hitscans   *collections.List[HitscanProjectile]
	Nades      *collections.List[NadeProjectile]
	Explosions *collections.List[Explosion]
	Damage     *collections.List[DamageEntry]
	Sounds     *collections.List[SpatialSound]
	Steps      *collections.List[Footstep]

	// NewHitscans/NewNades hold only the projectiles authored this
	// tick, so the server can broadcast new-projectile packets without
	// rescanning the full lists.
	NewHitscans []HitscanProjectile
	NewNades    []NadeProjectile

	Rng *Rng
}

// NewGame constructs an empty game over m, seeded for deterministic
// spawn selection and random draws outside the per-input step.
func NewGame(m *Map, seed uint64) *Game {
	return &Game{
		Map:        *m,
		Players:    collections.NewHashMap[Player](MaxClients),
		Hitscans:   collections.NewList[HitscanProjectile](MaxHitscanProjectiles),
		Nades:      collections.NewList[NadeProjectile](MaxNadeProjectiles),
		Explosions: collections.NewList[Explosion](MaxExplosions),
		Damage:     collections.NewList[DamageEntry](MaxDamageEntriesPerTick),
		Sounds:     collections.NewList[SpatialSound](MaxSoundsPerTick),
		Steps:      collections.NewList[Footstep](MaxSteps),
		Rng:        NewRng(seed),
	}
}

// BeginTick clears the per-tick new-projectile slices. Called once at
// the start of a tick, before any weapon fire can populate them.
func (g *Game) BeginTick() {
	g.NewHitscans = g.NewHitscans[:0]
	g.NewNades = g.NewNades[:0]
}

// DrainEvents clears the drained event lists (sounds, steps) after the
// audio boundary collaborator has consumed them, per the boundary
// contract that the simulation clears them each tick after drain.
func (g *Game) DrainEvents() {
	g.Sounds.Clear()
	g.Steps.Clear()
}

// RandomGrassTile returns a uniformly sampled Grass tile's world-space
// center, used for respawn placement. Spawn selection is the only
// place randomness is allowed to touch the simulation; it never occurs
// inside UpdatePlayer or the per-input step.
func (g *Game) RandomGrassTile() Vec2 {
	var candidates []Vec2
	for j := 0; j < g.Map.Height; j++ {
		for i := 0; i < g.Map.Width; i++ {
			if g.Map.Data[j*g.Map.Width+i] == TileGrass {
				candidates = append(candidates, Vec2{
					X: g.Map.Origin.X + (float64(i)+0.5)*g.Map.TileSize,
					Y: g.Map.Origin.Y + (float64(j)+0.5)*g.Map.TileSize,
				})
			}
		}
	}
	if len(candidates) == 0 {
		return g.Map.Origin
	}
	return candidates[g.Rng.Intn(len(candidates))]
}
