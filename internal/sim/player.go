package sim

// PlayerId is a non-zero handle allocated monotonically by the server.
// Zero is reserved as the hash map's "empty slot" sentinel and must
// never be assigned to a real player.
type PlayerId = uint64

// PlayerState is a player's movement state machine.
type PlayerState uint8

const (
	PlayerStateDefault PlayerState = iota
	PlayerStateSliding
)

// Weapon identifies one of the two weapon slots a player can carry.
type Weapon uint8

const (
	WeaponSniper Weapon = iota
	WeaponNade
)

// Player is the full replicated per-player record. This is exactly the
// record carried on the wire for Auth/PeerAuth/PlayerSpawn packets, so
// its field layout is also its wire layout (see internal/wire).
type Player struct {
	ID PlayerId

	Pos      Vec2
	Velocity Vec2

	Dodge Vec2
	Look  Vec2

	StepDelay     float64
	StepLeftSide  bool

	TimeLeftInDodge      float64
	TimeLeftInDodgeDelay float64

	Hue float64

	Health float64

	// Index 0 corresponds to WeaponSniper's cooldown slot, index 1 to
	// WeaponNade's, matching the fixed two-weapon loadout.
	TimeLeftInWeaponCooldown [2]float64
	Weapons                  [2]Weapon
	CurrentWeapon            uint32

	NadeDistance float64

	SniperZoom float64

	State PlayerState
}

// CurrentWeaponID returns the weapon in the player's active slot.
func (p *Player) CurrentWeaponID() Weapon {
	return p.Weapons[p.CurrentWeapon]
}

// NewPlayer constructs a player with the default two-weapon loadout at
// the given spawn position, matching a fresh PlayerSpawn record.
func NewPlayer(id PlayerId, spawn Vec2, hue float64) Player {
	return Player{
		ID:     id,
		Pos:    spawn,
		Look:   Vec2{1, 0},
		Hue:    hue,
		Health: 100,
		Weapons: [2]Weapon{
			WeaponSniper,
			WeaponNade,
		},
		CurrentWeapon: 0,
	}
}
