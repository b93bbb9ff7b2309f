package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/netsync/pkg/protocol"
)

const dt = 1.0 / 60

// scriptedInputs exercises running, turning, jumping, dashing and the
// sanitizing paths in one sequence.
func scriptedInputs() []Input {
	var ins []Input
	for i := 0; i < 240; i++ {
		in := Input{MoveY: 1, Yaw: float64(i) * 0.01}
		switch {
		case i == 10 || i == 90:
			in.Jump = true
		case i == 30 || i == 31 || i == 120:
			in.Dash = true
		case i >= 150 && i < 160:
			in.MoveX = math.NaN()
			in.MoveY = 3
		case i >= 200:
			in.MoveX = -1
			in.MoveY = 0
			in.Yaw = math.Inf(1)
		}
		ins = append(ins, in)
	}
	return ins
}

func assertStateNear(t *testing.T, want, got State, tol float64) {
	t.Helper()
	assert.InDelta(t, want.Pos.X, got.Pos.X, tol, "pos.x")
	assert.InDelta(t, want.Pos.Y, got.Pos.Y, tol, "pos.y")
	assert.InDelta(t, want.Pos.Z, got.Pos.Z, tol, "pos.z")
	assert.InDelta(t, want.Vel.X, got.Vel.X, tol, "vel.x")
	assert.InDelta(t, want.Vel.Y, got.Vel.Y, tol, "vel.y")
	assert.InDelta(t, want.Vel.Z, got.Vel.Z, tol, "vel.z")
	assert.InDelta(t, want.DashCooldown, got.DashCooldown, tol, "dash cooldown")
}

func TestKinematicDeterministic(t *testing.T) {
	a := NewKinematic(DefaultConfig())
	b := NewKinematic(DefaultConfig())
	for _, in := range scriptedInputs() {
		a.Step(in, dt)
		b.Step(in, dt)
	}
	require.Equal(t, a.State(), b.State())
}

func TestBatchMatchesKinematic(t *testing.T) {
	k := NewKinematic(DefaultConfig())
	batch := NewBatch(DefaultConfig(), 3)
	lane := batch.Lane(1)

	for i, in := range scriptedInputs() {
		k.Step(in, dt)
		lane.Step(in, dt)
		assertStateNear(t, k.State(), lane.State(), 1e-9)
		if t.Failed() {
			t.Fatalf("diverged at step %d", i)
		}
	}

	// Other lanes never moved.
	assert.Equal(t, State{}, batch.Lane(0).State())
	assert.Equal(t, State{}, batch.Lane(2).State())
}

func TestBatchStepAll(t *testing.T) {
	batch := NewBatch(DefaultConfig(), 2)
	k := NewKinematic(DefaultConfig())
	ins := scriptedInputs()
	for _, in := range ins[:60] {
		batch.StepAll([]Input{in}, dt)
		k.Step(in, dt)
	}
	assertStateNear(t, k.State(), batch.Lane(0).State(), 1e-9)

	// Lane 1 received only zero inputs and stays at rest.
	assert.Equal(t, State{}, batch.Lane(1).State())
}

func TestNaNAxisIsIgnored(t *testing.T) {
	k := NewKinematic(DefaultConfig())
	k.Step(Input{MoveX: math.NaN(), MoveY: math.NaN()}, dt)
	s := k.State()
	assert.Equal(t, 0.0, s.Pos.X)
	assert.Equal(t, 0.0, s.Pos.Z)
	assert.False(t, math.IsNaN(s.Vel.X))
}

func TestInvalidDtIgnored(t *testing.T) {
	k := NewKinematic(DefaultConfig())
	for _, d := range []float64{0, -1, math.Inf(1)} {
		k.Step(Input{MoveY: 1}, d)
	}
	assert.Equal(t, State{}, k.State())
}

func TestJumpAndLand(t *testing.T) {
	cfg := DefaultConfig()
	k := NewKinematic(cfg)
	k.Step(Input{Jump: true}, dt)
	require.Greater(t, k.State().Pos.Y, 0.0)

	peak := 0.0
	for i := 0; i < 120; i++ {
		k.Step(Input{}, dt)
		peak = math.Max(peak, k.State().Pos.Y)
	}
	s := k.State()
	assert.Equal(t, cfg.GroundY, s.Pos.Y)
	assert.Equal(t, 0.0, s.Vel.Y)
	// v²/2g for the default tuning, with slack for the discrete step.
	assert.InDelta(t, cfg.JumpVelocity*cfg.JumpVelocity/(2*cfg.Gravity), peak, 0.2)
}

func TestJumpRequiresGround(t *testing.T) {
	k := NewKinematic(DefaultConfig())
	k.Step(Input{Jump: true}, dt)
	vy := k.State().Vel.Y
	k.Step(Input{Jump: true}, dt)
	assert.Less(t, k.State().Vel.Y, vy)
}

func TestDashCooldown(t *testing.T) {
	cfg := DefaultConfig()
	k := NewKinematic(cfg)

	k.Step(Input{MoveY: 1, Dash: true}, dt)
	s := k.State()
	assert.InDelta(t, cfg.DashSpeed, s.Vel.Z, 1e-9)
	assert.Equal(t, cfg.DashCooldown, s.DashCooldown)

	// A second dash during the cooldown only ticks it down.
	k.Step(Input{MoveY: 1, Dash: true}, dt)
	assert.InDelta(t, cfg.DashCooldown-dt, k.State().DashCooldown, 1e-12)

	for i := 0; i < 70; i++ {
		k.Step(Input{}, dt)
	}
	assert.Equal(t, 0.0, k.State().DashCooldown)
}

func TestDashNeedsDirection(t *testing.T) {
	k := NewKinematic(DefaultConfig())
	k.Step(Input{Dash: true}, dt)
	assert.Equal(t, 0.0, k.State().DashCooldown)
}

func TestArenaClamp(t *testing.T) {
	cfg := DefaultConfig()
	k := NewKinematic(cfg)
	k.SetState(State{
		Pos: protocol.Vec3{X: cfg.ArenaHalfExtent - 0.01},
		Vel: protocol.Vec3{X: cfg.MoveSpeed},
	})
	k.Step(Input{MoveX: 1}, dt)

	s := k.State()
	assert.Equal(t, cfg.ArenaHalfExtent, s.Pos.X)
	assert.Equal(t, 0.0, s.Vel.X)
}

func TestResetAndConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroundY = 2
	k := NewKinematic(DefaultConfig())
	k.Step(Input{MoveY: 1}, dt)
	k.SetConfig(cfg)
	k.Reset()
	assert.Equal(t, State{Pos: protocol.Vec3{Y: 2}}, k.State())
	assert.Equal(t, cfg, k.Config())

	batch := NewBatch(DefaultConfig(), 1)
	lane := batch.Lane(0)
	lane.Step(Input{MoveY: 1}, dt)
	lane.SetConfig(cfg)
	lane.Reset()
	assert.Equal(t, k.State(), lane.State())
}

func TestBatchResize(t *testing.T) {
	batch := NewBatch(DefaultConfig(), 1)
	batch.Lane(0).SetState(State{DashCooldown: 0.5})
	batch.Resize(4)
	assert.Equal(t, 4, batch.Len())
	assert.Equal(t, 0.5, batch.Lane(0).State().DashCooldown)
	batch.Resize(1)
	assert.Equal(t, 1, batch.Len())
	assert.Panics(t, func() { batch.Lane(1) })
}
