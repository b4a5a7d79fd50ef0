package sim

// SoundKind identifies a cue the audio boundary collaborator should
// play; the simulation only ever appends these to Game.Sounds, it
// never decides how they're mixed.
type SoundKind uint8

const (
	SoundNone SoundKind = iota
	SoundSniperFire
	SoundNadeBeep
	SoundExplosion
	SoundFootstep
)

// HitscanProjectile is a fired-and-resolved sniper shot. Damage is
// applied the tick of firing; the record only lives on to drive its
// visual trail-fade timer.
type HitscanProjectile struct {
	PlayerIDFrom PlayerId
	PlayerIDTo   PlayerId // zero if no player was hit
	Dir          Vec2
	Pos          Vec2
	Impact       Vec2
	TimeLeft     float64
}

// NadeProjectile is a thrown grenade in flight.
type NadeProjectile struct {
	PlayerIDFrom   PlayerId
	Dir            Vec2
	StartPos       Vec2
	Pos            Vec2
	Vel            float64
	Impact         Vec2
	ImpactDistance float64
	ImpactNormal   Vec2
	TimeLeft       float64

	// Traveled is step()'s own bookkeeping, not semantically part of the
	// projectile's replicated state, but it lives on the same struct that
	// rides the wire (see internal/wire) so there is only one
	// NadeProjectile shape to keep in sync. Beeped rides along the same
	// way; no code in this package sets or reads it.
	Traveled float64
	Beeped   bool
}

// Explosion is a fading area-of-effect marker left behind by a
// detonated grenade.
type Explosion struct {
	PlayerIDFrom PlayerId
	Pos          Vec2
	Radius       float64
	TimeLeft     float64
}

// DamageEntry schedules HP loss against a player, drained once per
// tick by the owning loop (client prediction or server authority).
type DamageEntry struct {
	PlayerID PlayerId
	Damage   float64
}

// SpatialSound is a positioned audio cue, drained by the audio
// boundary collaborator.
type SpatialSound struct {
	PlayerIDFrom PlayerId
	Sound        SoundKind
	Pos          Vec2
}

// Footstep is a positioned footstep cue, drained the same way as sounds.
type Footstep struct {
	PlayerIdFrom PlayerId
	Pos          Vec2
	TimeLeft     float64
}
