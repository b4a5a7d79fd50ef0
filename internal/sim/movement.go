package sim

// UpdatePlayer advances a single player by one tick given its captured
// input. It is a pure function of (g, p, input, dt): no wall-clock
// reads, no randomness, no thread-scheduling dependence, so that
// running it twice from the same state and input yields byte-identical
// results (the determinism property client prediction and server
// reconciliation both depend on).
func UpdatePlayer(g *Game, p *Player, input *Input, dt float64) {
	p.Look = input.Look.NormalizeOr(p.Look)

	if p.TimeLeftInDodgeDelay > 0 {
		p.TimeLeftInDodgeDelay -= dt
		if p.TimeLeftInDodgeDelay < 0 {
			p.TimeLeftInDodgeDelay = 0
		}
	}
	for i := range p.TimeLeftInWeaponCooldown {
		if p.TimeLeftInWeaponCooldown[i] > 0 {
			p.TimeLeftInWeaponCooldown[i] -= dt
			if p.TimeLeftInWeaponCooldown[i] < 0 {
				p.TimeLeftInWeaponCooldown[i] = 0
			}
		}
	}

	inDodge := p.TimeLeftInDodge > 0
	inDodgeDelay := p.TimeLeftInDodgeDelay > 0

	if !inDodge && !inDodgeDelay && input.IsActive(InputMoveDodge) {
		p.Dodge = p.Look
		p.TimeLeftInDodge = dodgeTime
		p.State = PlayerStateSliding
		inDodge = true

		// Redirect the player's current speed along the dodge direction
		// rather than accelerating from whatever velocity they already
		// had, so a dodge always launches at full current speed.
		p.Velocity = p.Dodge.Scale(p.Velocity.Len())
	}

	hasMoved := false

	if inDodge {
		hasMoved = true
		p.Velocity = p.Velocity.Add(p.Dodge.Scale(dodgeAcceleration * dt))
		if speed := p.Velocity.Len(); speed > maxDodgeSpeed {
			p.Velocity = p.Velocity.Normalize().Scale(maxDodgeSpeed)
		}

		p.TimeLeftInDodge -= dt
		if p.TimeLeftInDodge <= 0 {
			p.TimeLeftInDodge = 0
			p.TimeLeftInDodgeDelay = dodgeDelayTime
			p.State = PlayerStateDefault
			inDodge = false
		}
	}

	if !inDodge {
		if p.State == PlayerStateSliding {
			// Decelerating out of a slide that wasn't cut short by a
			// wall: bleed speed at a constant rate until it drops
			// under the normal move cap.
			if speed := p.Velocity.Len(); speed > 0 {
				dir := p.Velocity.Normalize()
				newSpeed := speed - dodgeDeceleration*dt
				if newSpeed <= maxMoveSpeed {
					p.State = PlayerStateDefault
					newSpeed = maxMoveSpeed
				}
				if newSpeed < 0 {
					newSpeed = 0
				}
				p.Velocity = dir.Scale(newSpeed)
			} else {
				p.State = PlayerStateDefault
			}
		}

		dx := 0.0
		if input.IsActive(InputMoveRight) {
			dx++
		}
		if input.IsActive(InputMoveLeft) {
			dx--
		}
		dy := 0.0
		if input.IsActive(InputMoveDown) {
			dy++
		}
		if input.IsActive(InputMoveUp) {
			dy--
		}

		moveDir := Vec2{dx, dy}
		if !moveDir.IsZero() {
			moveDir = moveDir.Normalize()
			p.Velocity = p.Velocity.Add(moveDir.Scale(moveAcceleration * dt))
			if speed := p.Velocity.Len(); speed > maxMoveSpeed {
				p.Velocity = p.Velocity.Normalize().Scale(maxMoveSpeed)
			}
		} else if !p.Velocity.IsZero() {
			dir := p.Velocity.Normalize()
			speed := p.Velocity.Len() - moveAcceleration*dt
			if speed < 0 {
				speed = 0
			}
			p.Velocity = dir.Scale(speed)
		}
	}

	if !p.Velocity.IsZero() {
		p.Pos = p.Pos.Add(p.Velocity.Scale(dt))
		hasMoved = true
	}

	if hasMoved {
		p.StepDelay -= dt
		if p.StepDelay <= 0 {
			p.StepDelay = stepDelayTime
			p.StepLeftSide = !p.StepLeftSide
			emitStep(g, p)
		}
	}

	ResolveStaticCollisions(&g.Map, p, playerRadius)

	updateWeapons(g, p, input, dt)
}

// emitStep appends a spatial Step event at a side-alternating offset
// from the player's position, consumed by the audio boundary collaborator.
func emitStep(g *Game, p *Player) {
	perp := Vec2{-p.Look.Y, p.Look.X}
	side := 1.0
	if p.StepLeftSide {
		side = -1.0
	}
	g.Steps.Insert(Footstep{
		PlayerIdFrom: p.ID,
		Pos:          p.Pos.Add(perp.Scale(side * playerRadius)),
		TimeLeft:     sniperTrailTime,
	})
}
