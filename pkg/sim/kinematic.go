package sim

import "math"

// Kinematic is the reference single-body movement engine.
type Kinematic struct {
	cfg   Config
	state State
}

// NewKinematic creates an engine at the spawn origin.
func NewKinematic(cfg Config) *Kinematic {
	return &Kinematic{cfg: cfg}
}

// Step advances the body by dt seconds. Non-positive or infinite dt is ignored.
func (k *Kinematic) Step(in Input, dt float64) {
	if !validDt(dt) {
		return
	}
	cfg := &k.cfg
	s := &k.state

	wx, wz, wl := wishDir(in)
	grounded := s.Pos.Y <= cfg.GroundY

	accel := cfg.AirAccel
	if grounded {
		accel = cfg.GroundAccel
	}
	blend := math.Min(1, accel*dt)
	s.Vel.X += (wx*cfg.MoveSpeed - s.Vel.X) * blend
	s.Vel.Z += (wz*cfg.MoveSpeed - s.Vel.Z) * blend

	if in.Dash && s.DashCooldown <= 0 && wl > 0 {
		s.Vel.X = wx / wl * cfg.DashSpeed
		s.Vel.Z = wz / wl * cfg.DashSpeed
		s.DashCooldown = cfg.DashCooldown
	} else if s.DashCooldown > 0 {
		s.DashCooldown = math.Max(0, s.DashCooldown-dt)
	}

	if grounded && in.Jump {
		s.Vel.Y = cfg.JumpVelocity
	}
	if !grounded || s.Vel.Y > 0 {
		s.Vel.Y -= cfg.Gravity * dt
	}

	s.Pos.X += s.Vel.X * dt
	s.Pos.Y += s.Vel.Y * dt
	s.Pos.Z += s.Vel.Z * dt

	if s.Pos.Y < cfg.GroundY {
		s.Pos.Y = cfg.GroundY
		if s.Vel.Y < 0 {
			s.Vel.Y = 0
		}
	}
	if h := cfg.ArenaHalfExtent; h > 0 {
		if s.Pos.X > h || s.Pos.X < -h {
			s.Pos.X = math.Max(-h, math.Min(h, s.Pos.X))
			s.Vel.X = 0
		}
		if s.Pos.Z > h || s.Pos.Z < -h {
			s.Pos.Z = math.Max(-h, math.Min(h, s.Pos.Z))
			s.Vel.Z = 0
		}
	}
}

// State returns a copy of the current state.
func (k *Kinematic) State() State {
	return k.state
}

// SetState replaces the current state.
func (k *Kinematic) SetState(s State) {
	k.state = s
}

// Reset returns the body to the spawn origin at rest.
func (k *Kinematic) Reset() {
	k.state = State{}
	k.state.Pos.Y = k.cfg.GroundY
}

// SetConfig replaces the movement tuning.
func (k *Kinematic) SetConfig(cfg Config) {
	k.cfg = cfg
}

// Config returns the current movement tuning.
func (k *Kinematic) Config() Config {
	return k.cfg
}
