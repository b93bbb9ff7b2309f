// Package sim implements the fixed-tick player movement simulation shared by
// client prediction and the server.
//
// Two engines implement the Sim interface: Kinematic steps a single body, and
// Batch steps many bodies stored as parallel arrays and hands out per-body
// lanes. Both produce the same state for the same inputs, which is what lets
// the client swap engines mid-session without a visible correction.
package sim

import (
	"math"

	"github.com/vango-dev/netsync/pkg/protocol"
)

// Sim advances movement state by one fixed tick at a time.
type Sim interface {
	// Step advances the state by dt seconds under the given input.
	Step(in Input, dt float64)

	// State returns a copy of the current state.
	State() State

	// SetState replaces the current state.
	SetState(s State)

	// Reset returns the body to the zero state at the spawn origin.
	Reset()

	// SetConfig replaces the movement tuning.
	SetConfig(cfg Config)
}

// State is the simulated movement state of one body.
type State struct {
	Pos          protocol.Vec3
	Vel          protocol.Vec3
	DashCooldown float64
}

// StateFromSnapshot extracts the simulated fields of an authoritative snapshot.
func StateFromSnapshot(s *protocol.StateSnapshot) State {
	return State{Pos: s.Pos, Vel: s.Vel, DashCooldown: s.DashCooldown}
}

// Input is the movement-relevant part of one input sample.
type Input struct {
	MoveX float64 // Strafe axis, clamped to [-1, 1]
	MoveY float64 // Forward axis, clamped to [-1, 1]
	Yaw   float64 // Radians; forward is +Z at yaw 0
	Jump  bool
	Dash  bool
}

// InputFromCmd converts a wire InputCmd into a simulation input.
func InputFromCmd(cmd *protocol.InputCmd) Input {
	return Input{
		MoveX: float64(cmd.MoveX),
		MoveY: float64(cmd.MoveY),
		Yaw:   float64(cmd.Yaw),
		Jump:  cmd.Buttons.Has(protocol.ButtonJump),
		Dash:  cmd.Buttons.Has(protocol.ButtonDash),
	}
}

// Config tunes the movement model.
type Config struct {
	// MoveSpeed is the target horizontal speed at full input, in units/s.
	// Default: 7.
	MoveSpeed float64

	// GroundAccel is how quickly velocity approaches the target on the ground, in 1/s.
	// Default: 12.
	GroundAccel float64

	// AirAccel is the same rate while airborne.
	// Default: 2.
	AirAccel float64

	// Gravity is the downward acceleration, in units/s².
	// Default: 20.
	Gravity float64

	// JumpVelocity is the upward speed applied on jump.
	// Default: 7.
	JumpVelocity float64

	// DashSpeed is the horizontal speed set by a dash.
	// Default: 18.
	DashSpeed float64

	// DashCooldown is the time between dashes, in seconds.
	// Default: 1.
	DashCooldown float64

	// GroundY is the height of the floor plane.
	// Default: 0.
	GroundY float64

	// ArenaHalfExtent bounds |X| and |Z|.
	// Default: 50.
	ArenaHalfExtent float64
}

// DefaultConfig returns the movement tuning the server runs with.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:       7,
		GroundAccel:     12,
		AirAccel:        2,
		Gravity:         20,
		JumpVelocity:    7,
		DashSpeed:       18,
		DashCooldown:    1,
		GroundY:         0,
		ArenaHalfExtent: 50,
	}
}

// sanitizeAxis maps NaN to zero and clamps to [-1, 1].
func sanitizeAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// sanitizeAngle maps non-finite angles to zero.
func sanitizeAngle(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// wishDir returns the desired horizontal direction for an input and its
// length, which is at most 1.
func wishDir(in Input) (wx, wz, wl float64) {
	mx := sanitizeAxis(in.MoveX)
	my := sanitizeAxis(in.MoveY)
	sin, cos := math.Sincos(sanitizeAngle(in.Yaw))

	wx = cos*mx + sin*my
	wz = -sin*mx + cos*my
	wl = math.Hypot(wx, wz)
	if wl > 1 {
		wx /= wl
		wz /= wl
		wl = 1
	}
	return wx, wz, wl
}

func validDt(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 0)
}
