package protocol

import (
	"math"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

// NoInputSeq is the LastProcessedInputSeq sentinel for "no input processed yet".
const NoInputSeq int32 = -1

// Vec3 is a position or velocity in protocol coordinates (Y up).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Lerp interpolates from v to o by alpha.
func (v Vec3) Lerp(o Vec3, alpha float64) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*alpha,
		v.Y + (o.Y-v.Y)*alpha,
		v.Z + (o.Z-v.Z)*alpha,
	}
}

// StateSnapshot is the authoritative state of one entity at one server tick.
type StateSnapshot struct {
	ServerTick            uint32
	LastProcessedInputSeq int32 // NoInputSeq until the server has applied an input
	Pos                   Vec3
	Vel                   Vec3
	DashCooldown          float64 // Seconds until dash is available
	Health                int32
	Kills                 int32
	Deaths                int32
	WeaponSlot            uint8
	Ammo                  int32
	ClientID              string // Empty when the stream carries one unnamed entity
}

// DeltaField is a bit in a StateSnapshotDelta's field mask.
type DeltaField uint32

const (
	DeltaPosX DeltaField = 1 << iota
	DeltaPosY
	DeltaPosZ
	DeltaVelX
	DeltaVelY
	DeltaVelZ
	DeltaDashCooldown
	DeltaHealth
	DeltaKills
	DeltaDeaths
	DeltaWeaponSlot
	DeltaAmmo
	DeltaLastProcessedInputSeq

	// DeltaAll covers every defined field.
	DeltaAll = DeltaLastProcessedInputSeq<<1 - 1
)

// Has returns true if the mask contains every bit of f.
func (m DeltaField) Has(f DeltaField) bool {
	return m&f == f
}

// StateSnapshotDelta carries only the fields of a snapshot that changed
// relative to the keyframe at BaseTick. Fields whose Mask bit is clear are
// zero and must not be read.
type StateSnapshotDelta struct {
	ServerTick            uint32
	BaseTick              uint32
	Mask                  DeltaField
	LastProcessedInputSeq int32
	Pos                   Vec3
	Vel                   Vec3
	DashCooldown          float64
	Health                int32
	Kills                 int32
	Deaths                int32
	WeaponSlot            uint8
	Ammo                  int32
	ClientID              string
}

// MarshalStateSnapshot encodes a StateSnapshot payload.
func MarshalStateSnapshot(s *StateSnapshot) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		clientID := createString(b, s.ClientID)

		schema.StateSnapshotStart(b)
		putUint32(b, schema.StateSnapshotVTServerTick, s.ServerTick)
		putInt32(b, schema.StateSnapshotVTLastProcessedInputSeq, s.LastProcessedInputSeq)
		putFloat64(b, schema.StateSnapshotVTPosX, s.Pos.X)
		putFloat64(b, schema.StateSnapshotVTPosY, s.Pos.Y)
		putFloat64(b, schema.StateSnapshotVTPosZ, s.Pos.Z)
		putFloat64(b, schema.StateSnapshotVTVelX, s.Vel.X)
		putFloat64(b, schema.StateSnapshotVTVelY, s.Vel.Y)
		putFloat64(b, schema.StateSnapshotVTVelZ, s.Vel.Z)
		schema.StateSnapshotAddDashCooldown(b, s.DashCooldown)
		schema.StateSnapshotAddHealth(b, s.Health)
		schema.StateSnapshotAddKills(b, s.Kills)
		schema.StateSnapshotAddDeaths(b, s.Deaths)
		schema.StateSnapshotAddWeaponSlot(b, s.WeaponSlot)
		schema.StateSnapshotAddAmmo(b, s.Ammo)
		schema.StateSnapshotAddClientId(b, clientID)
		return schema.StateSnapshotEnd(b)
	})
}

// BuildStateSnapshot encodes a StateSnapshot and wraps it in an envelope.
func BuildStateSnapshot(s *StateSnapshot, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgStateSnapshot, MarshalStateSnapshot(s), msgSeq, serverSeqAck)
}

// ParseStateSnapshot decodes and validates a StateSnapshot payload.
func ParseStateSnapshot(payload []byte) (*StateSnapshot, error) {
	return parseTable(payload, func(buf []byte) (*StateSnapshot, error) {
		t := schema.GetRootAsStateSnapshot(buf, 0)
		if err := requireFields(t.Table(), "StateSnapshot",
			schema.StateSnapshotVTServerTick,
			schema.StateSnapshotVTLastProcessedInputSeq,
			schema.StateSnapshotVTPosX, schema.StateSnapshotVTPosY, schema.StateSnapshotVTPosZ,
			schema.StateSnapshotVTVelX, schema.StateSnapshotVTVelY, schema.StateSnapshotVTVelZ,
		); err != nil {
			return nil, err
		}

		clientID, err := checkID("client_id", t.ClientId(), false)
		if err != nil {
			return nil, err
		}

		s := &StateSnapshot{
			ServerTick:            t.ServerTick(),
			LastProcessedInputSeq: t.LastProcessedInputSeq(),
			Pos:                   Vec3{X: t.PosX(), Y: t.PosY(), Z: t.PosZ()},
			Vel:                   Vec3{X: t.VelX(), Y: t.VelY(), Z: t.VelZ()},
			DashCooldown:          t.DashCooldown(),
			Health:                t.Health(),
			Kills:                 t.Kills(),
			Deaths:                t.Deaths(),
			WeaponSlot:            t.WeaponSlot(),
			Ammo:                  t.Ammo(),
			ClientID:              clientID,
		}
		if err := ValidateStateSnapshot(s); err != nil {
			return nil, err
		}
		return s, nil
	})
}

// ValidateStateSnapshot checks that every numeric field is finite and in range.
func ValidateStateSnapshot(s *StateSnapshot) error {
	if err := checkRange("last_processed_input_seq", int64(s.LastProcessedInputSeq), int64(NoInputSeq), math.MaxInt32); err != nil {
		return err
	}
	if err := checkVec3("pos", s.Pos, MaxCoordinate); err != nil {
		return err
	}
	if err := checkVec3("vel", s.Vel, MaxSpeed); err != nil {
		return err
	}
	if !IsFinite(s.DashCooldown) || s.DashCooldown < 0 {
		return invalid("dash_cooldown", s.DashCooldown)
	}
	return checkStats(s.Health, s.Kills, s.Deaths, s.WeaponSlot, s.Ammo)
}

func checkStats(health, kills, deaths int32, slot uint8, ammo int32) error {
	if err := checkRange("health", int64(health), 0, MaxHealth); err != nil {
		return err
	}
	if err := checkRange("kills", int64(kills), 0, MaxScore); err != nil {
		return err
	}
	if err := checkRange("deaths", int64(deaths), 0, MaxScore); err != nil {
		return err
	}
	if err := checkRange("weapon_slot", int64(slot), 0, MaxWeaponSlots-1); err != nil {
		return err
	}
	return checkRange("ammo", int64(ammo), 0, MaxAmmo)
}

// MarshalStateSnapshotDelta encodes a StateSnapshotDelta payload. Only the
// fields selected by the mask are written.
func MarshalStateSnapshotDelta(d *StateSnapshotDelta) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		clientID := createString(b, d.ClientID)

		schema.StateSnapshotDeltaStart(b)
		putUint32(b, schema.StateSnapshotDeltaVTServerTick, d.ServerTick)
		putUint32(b, schema.StateSnapshotDeltaVTBaseTick, d.BaseTick)
		putUint32(b, schema.StateSnapshotDeltaVTMask, uint32(d.Mask))

		m := d.Mask
		if m.Has(DeltaLastProcessedInputSeq) {
			putInt32(b, schema.StateSnapshotDeltaVTLastProcessedInputSeq, d.LastProcessedInputSeq)
		}
		if m.Has(DeltaPosX) {
			putFloat64(b, schema.StateSnapshotDeltaVTPosX, d.Pos.X)
		}
		if m.Has(DeltaPosY) {
			putFloat64(b, schema.StateSnapshotDeltaVTPosY, d.Pos.Y)
		}
		if m.Has(DeltaPosZ) {
			putFloat64(b, schema.StateSnapshotDeltaVTPosZ, d.Pos.Z)
		}
		if m.Has(DeltaVelX) {
			putFloat64(b, schema.StateSnapshotDeltaVTVelX, d.Vel.X)
		}
		if m.Has(DeltaVelY) {
			putFloat64(b, schema.StateSnapshotDeltaVTVelY, d.Vel.Y)
		}
		if m.Has(DeltaVelZ) {
			putFloat64(b, schema.StateSnapshotDeltaVTVelZ, d.Vel.Z)
		}
		if m.Has(DeltaDashCooldown) {
			putFloat64(b, schema.StateSnapshotDeltaVTDashCooldown, d.DashCooldown)
		}
		if m.Has(DeltaHealth) {
			putInt32(b, schema.StateSnapshotDeltaVTHealth, d.Health)
		}
		if m.Has(DeltaKills) {
			putInt32(b, schema.StateSnapshotDeltaVTKills, d.Kills)
		}
		if m.Has(DeltaDeaths) {
			putInt32(b, schema.StateSnapshotDeltaVTDeaths, d.Deaths)
		}
		if m.Has(DeltaWeaponSlot) {
			putByte(b, schema.StateSnapshotDeltaVTWeaponSlot, d.WeaponSlot)
		}
		if m.Has(DeltaAmmo) {
			putInt32(b, schema.StateSnapshotDeltaVTAmmo, d.Ammo)
		}
		schema.StateSnapshotDeltaAddClientId(b, clientID)
		return schema.StateSnapshotDeltaEnd(b)
	})
}

// BuildStateSnapshotDelta encodes a StateSnapshotDelta and wraps it in an envelope.
func BuildStateSnapshotDelta(d *StateSnapshotDelta, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgStateSnapshotDelta, MarshalStateSnapshotDelta(d), msgSeq, serverSeqAck)
}

// deltaSlots maps each mask bit to the vtable slot that must be present.
var deltaSlots = []struct {
	field DeltaField
	vt    flatbuffers.VOffsetT
}{
	{DeltaPosX, schema.StateSnapshotDeltaVTPosX},
	{DeltaPosY, schema.StateSnapshotDeltaVTPosY},
	{DeltaPosZ, schema.StateSnapshotDeltaVTPosZ},
	{DeltaVelX, schema.StateSnapshotDeltaVTVelX},
	{DeltaVelY, schema.StateSnapshotDeltaVTVelY},
	{DeltaVelZ, schema.StateSnapshotDeltaVTVelZ},
	{DeltaDashCooldown, schema.StateSnapshotDeltaVTDashCooldown},
	{DeltaHealth, schema.StateSnapshotDeltaVTHealth},
	{DeltaKills, schema.StateSnapshotDeltaVTKills},
	{DeltaDeaths, schema.StateSnapshotDeltaVTDeaths},
	{DeltaWeaponSlot, schema.StateSnapshotDeltaVTWeaponSlot},
	{DeltaAmmo, schema.StateSnapshotDeltaVTAmmo},
	{DeltaLastProcessedInputSeq, schema.StateSnapshotDeltaVTLastProcessedInputSeq},
}

// ParseStateSnapshotDelta decodes and validates a StateSnapshotDelta payload.
// Every field named by the mask must be present; unknown mask bits and a
// base tick ahead of the server tick are rejected.
func ParseStateSnapshotDelta(payload []byte) (*StateSnapshotDelta, error) {
	return parseTable(payload, func(buf []byte) (*StateSnapshotDelta, error) {
		t := schema.GetRootAsStateSnapshotDelta(buf, 0)
		tab := t.Table()
		if err := requireFields(tab, "StateSnapshotDelta",
			schema.StateSnapshotDeltaVTServerTick,
			schema.StateSnapshotDeltaVTBaseTick,
			schema.StateSnapshotDeltaVTMask,
		); err != nil {
			return nil, err
		}

		mask := DeltaField(t.Mask())
		if mask&^DeltaAll != 0 {
			return nil, invalid("mask", uint32(mask))
		}
		for _, ds := range deltaSlots {
			if mask.Has(ds.field) && !schema.Has(tab, ds.vt) {
				return nil, requireFields(tab, "StateSnapshotDelta", ds.vt)
			}
		}
		if t.BaseTick() > t.ServerTick() {
			return nil, invalid("base_tick", t.BaseTick())
		}

		clientID, err := checkID("client_id", t.ClientId(), false)
		if err != nil {
			return nil, err
		}

		d := &StateSnapshotDelta{
			ServerTick:            t.ServerTick(),
			BaseTick:              t.BaseTick(),
			Mask:                  mask,
			LastProcessedInputSeq: t.LastProcessedInputSeq(),
			Pos:                   Vec3{X: t.PosX(), Y: t.PosY(), Z: t.PosZ()},
			Vel:                   Vec3{X: t.VelX(), Y: t.VelY(), Z: t.VelZ()},
			DashCooldown:          t.DashCooldown(),
			Health:                t.Health(),
			Kills:                 t.Kills(),
			Deaths:                t.Deaths(),
			WeaponSlot:            t.WeaponSlot(),
			Ammo:                  t.Ammo(),
			ClientID:              clientID,
		}
		if !mask.Has(DeltaLastProcessedInputSeq) {
			d.LastProcessedInputSeq = 0
		}
		if err := validateDelta(d); err != nil {
			return nil, err
		}
		return d, nil
	})
}

func validateDelta(d *StateSnapshotDelta) error {
	if err := checkRange("last_processed_input_seq", int64(d.LastProcessedInputSeq), int64(NoInputSeq), math.MaxInt32); err != nil {
		return err
	}
	if err := checkVec3("pos", d.Pos, MaxCoordinate); err != nil {
		return err
	}
	if err := checkVec3("vel", d.Vel, MaxSpeed); err != nil {
		return err
	}
	if !IsFinite(d.DashCooldown) || d.DashCooldown < 0 {
		return invalid("dash_cooldown", d.DashCooldown)
	}
	return checkStats(d.Health, d.Kills, d.Deaths, d.WeaponSlot, d.Ammo)
}
