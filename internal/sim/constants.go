package sim

// Movement and combat tuning constants, adopted from original_source's
// game.h so the ported simulation matches the system this spec was
// distilled from.
const (
	moveAcceleration = 50.0
	maxMoveSpeed     = 5.0
	stepDelayTime    = 1.0

	dodgeAcceleration = 100.0
	dodgeDeceleration = 10.0
	maxDodgeSpeed     = 10.0
	dodgeTime         = 0.20
	dodgeDelayTime    = 1.0

	weaponSniperCooldown = 1.0
	weaponNadeCooldown   = 3.0

	sniperTrailTime = 1.0

	nadeExplodeTime  = 2.0
	nadeDeceleration = 10.0
	nadeSpeedScale   = 4.0
	nadeMaxDistance  = 3.0

	playerRadius  = 0.25
	sniperDamage  = 100.0
	explosionBaseDamage = 100.0
)
