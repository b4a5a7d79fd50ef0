package sim

import "testing"

func newTestGame() *Game {
	m := NewDefaultMap()
	return NewGame(m, 1)
}

func TestUpdatePlayerMoveRightAccelerates(t *testing.T) {
	g := newTestGame()
	p := NewPlayer(1, Vec2{15, 15}, 0)

	in := &Input{Look: Vec2{1, 0}}
	in.Active[InputMoveRight] = true

	startX := p.Pos.X
	for i := 0; i < 10; i++ {
		UpdatePlayer(g, &p, in, 1.0/60.0)
	}

	if p.Velocity.X <= 0 {
		t.Fatalf("expected positive X velocity after moving right, got %v", p.Velocity)
	}
	if p.Pos.X <= startX {
		t.Fatalf("expected player to move right, pos went from %v to %v", startX, p.Pos.X)
	}
}

func TestUpdatePlayerDecelerateToStopWhenIdle(t *testing.T) {
	g := newTestGame()
	p := NewPlayer(1, Vec2{15, 15}, 0)
	in := &Input{Look: Vec2{1, 0}}
	in.Active[InputMoveRight] = true
	for i := 0; i < 10; i++ {
		UpdatePlayer(g, &p, in, 1.0/60.0)
	}

	idle := &Input{Look: Vec2{1, 0}}
	for i := 0; i < 1000; i++ {
		UpdatePlayer(g, &p, idle, 1.0/60.0)
	}
	if !p.Velocity.IsZero() {
		t.Fatalf("expected velocity to decay to zero when idle, got %v", p.Velocity)
	}
}

func TestUpdatePlayerDodgeEntersSlidingState(t *testing.T) {
	g := newTestGame()
	p := NewPlayer(1, Vec2{15, 15}, 0)
	in := &Input{Look: Vec2{1, 0}}
	in.Active[InputMoveDodge] = true

	UpdatePlayer(g, &p, in, 1.0/60.0)

	if p.State != PlayerStateSliding {
		t.Fatalf("expected sliding state after dodge, got %v", p.State)
	}
	if p.TimeLeftInDodge <= 0 {
		t.Fatalf("expected TimeLeftInDodge set after dodge, got %v", p.TimeLeftInDodge)
	}
}

func TestUpdatePlayerDodgeExceedsMoveSpeed(t *testing.T) {
	g := newTestGame()
	p := NewPlayer(1, Vec2{15, 15}, 0)
	in := &Input{Look: Vec2{1, 0}}
	in.Active[InputMoveDodge] = true

	for i := 0; i < 10; i++ {
		UpdatePlayer(g, &p, in, 1.0/60.0)
	}

	if p.Velocity.Len() <= maxMoveSpeed {
		t.Fatalf("expected dodge to exceed normal move speed, got %v", p.Velocity.Len())
	}
}

func TestUpdatePlayerDodgeRedirectsExistingVelocity(t *testing.T) {
	g := newTestGame()
	p := NewPlayer(1, Vec2{15, 15}, 0)

	right := &Input{Look: Vec2{1, 0}}
	right.Active[InputMoveRight] = true
	for i := 0; i < 30; i++ {
		UpdatePlayer(g, &p, right, 1.0/60.0)
	}
	if p.Velocity.X <= 0 {
		t.Fatalf("expected rightward velocity before dodge, got %v", p.Velocity)
	}
	speedBeforeDodge := p.Velocity.Len()

	up := &Input{Look: Vec2{0, -1}}
	up.Active[InputMoveDodge] = true
	UpdatePlayer(g, &p, up, 1.0/60.0)

	if p.Velocity.X > 0 {
		t.Fatalf("expected rightward velocity component to be fully redirected away, got %v", p.Velocity)
	}
	if p.Velocity.Y >= 0 {
		t.Fatalf("expected dodge to redirect velocity upward (negative Y), got %v", p.Velocity)
	}
	if p.Velocity.Len() < speedBeforeDodge {
		t.Fatalf("expected dodge to preserve at least the pre-dodge speed before accelerating, got %v want >= %v", p.Velocity.Len(), speedBeforeDodge)
	}
}

func TestUpdatePlayerEmitsFootstepWhileMoving(t *testing.T) {
	g := newTestGame()
	p := NewPlayer(1, Vec2{15, 15}, 0)
	in := &Input{Look: Vec2{1, 0}}
	in.Active[InputMoveRight] = true

	for i := 0; i < 600 && g.Steps.Len() == 0; i++ {
		UpdatePlayer(g, &p, in, 1.0/60.0)
	}

	if g.Steps.Len() == 0 {
		t.Fatal("expected at least one footstep event while moving")
	}
}
