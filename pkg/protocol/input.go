package protocol

import (
	"math"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

// Buttons is the bitset of held actions in an InputCmd.
type Buttons uint16

const (
	ButtonJump Buttons = 1 << iota
	ButtonDash
	ButtonFire
	ButtonReload
	ButtonCrouch

	// ButtonsAll covers every defined button.
	ButtonsAll = ButtonCrouch<<1 - 1
)

// Has returns true if all bits of b are held.
func (bs Buttons) Has(b Buttons) bool {
	return bs&b == b
}

// InputCmd is one fixed-tick sample of player input.
type InputCmd struct {
	InputSeq     uint32
	ClientTick   uint32  // Client's estimate of the server tick when sampled
	MoveX        float32 // Strafe axis in [-1, 1]
	MoveY        float32 // Forward axis in [-1, 1]
	Yaw          float32 // Radians
	Pitch        float32 // Radians, clamped to [-π/2, π/2]
	Buttons      Buttons
	WeaponSlot   uint8
	ClientTimeMs float64
}

// MarshalInputCmd encodes an InputCmd payload.
func MarshalInputCmd(cmd *InputCmd) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		schema.InputCmdStart(b)
		putUint32(b, schema.InputCmdVTInputSeq, cmd.InputSeq)
		schema.InputCmdAddClientTick(b, cmd.ClientTick)
		schema.InputCmdAddMoveX(b, cmd.MoveX)
		schema.InputCmdAddMoveY(b, cmd.MoveY)
		schema.InputCmdAddYaw(b, cmd.Yaw)
		schema.InputCmdAddPitch(b, cmd.Pitch)
		schema.InputCmdAddButtons(b, uint16(cmd.Buttons))
		schema.InputCmdAddWeaponSlot(b, cmd.WeaponSlot)
		schema.InputCmdAddClientTimeMs(b, cmd.ClientTimeMs)
		return schema.InputCmdEnd(b)
	})
}

// EncodeInputCmd encodes an InputCmd and wraps it in an envelope.
func EncodeInputCmd(cmd *InputCmd, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgInputCmd, MarshalInputCmd(cmd), msgSeq, serverSeqAck)
}

// ParseInputCmd decodes and validates an InputCmd payload.
func ParseInputCmd(payload []byte) (*InputCmd, error) {
	return parseTable(payload, func(buf []byte) (*InputCmd, error) {
		t := schema.GetRootAsInputCmd(buf, 0)
		if err := requireFields(t.Table(), "InputCmd", schema.InputCmdVTInputSeq); err != nil {
			return nil, err
		}
		cmd := &InputCmd{
			InputSeq:     t.InputSeq(),
			ClientTick:   t.ClientTick(),
			MoveX:        t.MoveX(),
			MoveY:        t.MoveY(),
			Yaw:          t.Yaw(),
			Pitch:        t.Pitch(),
			Buttons:      Buttons(t.Buttons()),
			WeaponSlot:   t.WeaponSlot(),
			ClientTimeMs: t.ClientTimeMs(),
		}
		if err := ValidateInputCmd(cmd); err != nil {
			return nil, err
		}
		return cmd, nil
	})
}

// ValidateInputCmd checks axis ranges, angle finiteness and button bits.
func ValidateInputCmd(cmd *InputCmd) error {
	for _, axis := range []struct {
		name string
		v    float32
	}{{"move_x", cmd.MoveX}, {"move_y", cmd.MoveY}} {
		if !IsFinite(float64(axis.v)) || axis.v < -1 || axis.v > 1 {
			return invalid(axis.name, axis.v)
		}
	}
	if !IsFinite(float64(cmd.Yaw)) {
		return invalid("yaw", cmd.Yaw)
	}
	if !IsFinite(float64(cmd.Pitch)) || math.Abs(float64(cmd.Pitch)) > math.Pi/2+1e-6 {
		return invalid("pitch", cmd.Pitch)
	}
	if cmd.Buttons&^ButtonsAll != 0 {
		return invalid("buttons", uint16(cmd.Buttons))
	}
	if cmd.WeaponSlot >= MaxWeaponSlots {
		return invalid("weapon_slot", cmd.WeaponSlot)
	}
	if !IsFinite(cmd.ClientTimeMs) {
		return invalid("client_time_ms", cmd.ClientTimeMs)
	}
	return nil
}
