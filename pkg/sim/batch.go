package sim

import "math"

// Batch steps many bodies stored as parallel arrays. A server or a replay
// tool stepping every entity per tick uses StepAll; client prediction takes a
// single-body view with Lane.
type Batch struct {
	cfg Config

	px, py, pz []float64
	vx, vy, vz []float64
	cooldown   []float64
}

// NewBatch creates n bodies at the spawn origin.
func NewBatch(cfg Config, n int) *Batch {
	b := &Batch{cfg: cfg}
	b.Resize(n)
	return b
}

// Len returns the number of bodies.
func (b *Batch) Len() int {
	return len(b.px)
}

// Resize grows or shrinks the batch. New bodies start at the spawn origin.
func (b *Batch) Resize(n int) {
	grow := func(s []float64, fill float64) []float64 {
		for len(s) < n {
			s = append(s, fill)
		}
		return s[:n]
	}
	b.px = grow(b.px, 0)
	b.py = grow(b.py, b.cfg.GroundY)
	b.pz = grow(b.pz, 0)
	b.vx = grow(b.vx, 0)
	b.vy = grow(b.vy, 0)
	b.vz = grow(b.vz, 0)
	b.cooldown = grow(b.cooldown, 0)
}

// StepAll advances every body by dt. inputs[i] drives body i; bodies past
// the end of inputs receive the zero input.
func (b *Batch) StepAll(inputs []Input, dt float64) {
	if !validDt(dt) {
		return
	}
	for i := range b.px {
		var in Input
		if i < len(inputs) {
			in = inputs[i]
		}
		b.step(i, in, dt)
	}
}

// step mirrors Kinematic.Step operation for operation on lane i.
func (b *Batch) step(i int, in Input, dt float64) {
	cfg := &b.cfg
	wx, wz, wl := wishDir(in)
	grounded := b.py[i] <= cfg.GroundY

	accel := cfg.AirAccel
	if grounded {
		accel = cfg.GroundAccel
	}
	blend := math.Min(1, accel*dt)
	b.vx[i] += (wx*cfg.MoveSpeed - b.vx[i]) * blend
	b.vz[i] += (wz*cfg.MoveSpeed - b.vz[i]) * blend

	if in.Dash && b.cooldown[i] <= 0 && wl > 0 {
		b.vx[i] = wx / wl * cfg.DashSpeed
		b.vz[i] = wz / wl * cfg.DashSpeed
		b.cooldown[i] = cfg.DashCooldown
	} else if b.cooldown[i] > 0 {
		b.cooldown[i] = math.Max(0, b.cooldown[i]-dt)
	}

	if grounded && in.Jump {
		b.vy[i] = cfg.JumpVelocity
	}
	if !grounded || b.vy[i] > 0 {
		b.vy[i] -= cfg.Gravity * dt
	}

	b.px[i] += b.vx[i] * dt
	b.py[i] += b.vy[i] * dt
	b.pz[i] += b.vz[i] * dt

	if b.py[i] < cfg.GroundY {
		b.py[i] = cfg.GroundY
		if b.vy[i] < 0 {
			b.vy[i] = 0
		}
	}
	if h := cfg.ArenaHalfExtent; h > 0 {
		if b.px[i] > h || b.px[i] < -h {
			b.px[i] = math.Max(-h, math.Min(h, b.px[i]))
			b.vx[i] = 0
		}
		if b.pz[i] > h || b.pz[i] < -h {
			b.pz[i] = math.Max(-h, math.Min(h, b.pz[i]))
			b.vz[i] = 0
		}
	}
}

func (b *Batch) state(i int) State {
	var s State
	s.Pos.X, s.Pos.Y, s.Pos.Z = b.px[i], b.py[i], b.pz[i]
	s.Vel.X, s.Vel.Y, s.Vel.Z = b.vx[i], b.vy[i], b.vz[i]
	s.DashCooldown = b.cooldown[i]
	return s
}

func (b *Batch) setState(i int, s State) {
	b.px[i], b.py[i], b.pz[i] = s.Pos.X, s.Pos.Y, s.Pos.Z
	b.vx[i], b.vy[i], b.vz[i] = s.Vel.X, s.Vel.Y, s.Vel.Z
	b.cooldown[i] = s.DashCooldown
}

// SetConfig replaces the tuning for every body.
func (b *Batch) SetConfig(cfg Config) {
	b.cfg = cfg
}

// Lane returns a Sim view of body i. Lanes share the batch's config, so
// SetConfig on a lane retunes the whole batch.
func (b *Batch) Lane(i int) Sim {
	if i < 0 || i >= b.Len() {
		panic("sim: lane index out of range")
	}
	return &lane{b: b, i: i}
}

type lane struct {
	b *Batch
	i int
}

func (l *lane) Step(in Input, dt float64) {
	if !validDt(dt) {
		return
	}
	l.b.step(l.i, in, dt)
}

func (l *lane) State() State         { return l.b.state(l.i) }
func (l *lane) SetState(s State)     { l.b.setState(l.i, s) }
func (l *lane) SetConfig(cfg Config) { l.b.SetConfig(cfg) }

func (l *lane) Reset() {
	var s State
	s.Pos.Y = l.b.cfg.GroundY
	l.b.setState(l.i, s)
}
