package protocol

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

// GameEventKind identifies a one-shot authoritative game event.
type GameEventKind uint8

const (
	EventHitConfirm GameEventKind = iota + 1
	EventProjectileSpawn
	EventProjectileRemove
	EventKill
	EventRespawn

	eventKindEnd
)

// String returns the string representation of the event kind.
func (k GameEventKind) String() string {
	switch k {
	case EventHitConfirm:
		return "HitConfirm"
	case EventProjectileSpawn:
		return "ProjectileSpawn"
	case EventProjectileRemove:
		return "ProjectileRemove"
	case EventKill:
		return "Kill"
	case EventRespawn:
		return "Respawn"
	default:
		return "Unknown"
	}
}

// RemoveReason explains why a projectile left the world.
type RemoveReason uint8

const (
	RemoveExpired RemoveReason = iota
	RemoveHitPlayer
	RemoveHitWorld
)

// GameEvent is a single authoritative event. Which fields are meaningful
// depends on Kind: HitConfirm uses ShooterID/TargetID/Damage/Headshot,
// projectile events use ProjectileID/Pos/Vel (and Reason on removal).
type GameEvent struct {
	Kind         GameEventKind
	ShooterID    string
	TargetID     string
	ProjectileID uint32
	Damage       int32
	Headshot     bool
	Pos          Vec3
	Vel          Vec3
	Reason       RemoveReason
}

// GameEventBatch groups every event the server produced in one tick.
type GameEventBatch struct {
	ServerTick uint32
	Events     []GameEvent
}

// MarshalGameEventBatch encodes a GameEventBatch payload.
func MarshalGameEventBatch(batch *GameEventBatch) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		offsets := make([]flatbuffers.UOffsetT, len(batch.Events))
		for i := range batch.Events {
			offsets[i] = buildGameEvent(b, &batch.Events[i])
		}

		schema.GameEventBatchStartEventsVector(b, len(offsets))
		for i := len(offsets) - 1; i >= 0; i-- {
			b.PrependUOffsetT(offsets[i])
		}
		events := b.EndVector(len(offsets))

		schema.GameEventBatchStart(b)
		putUint32(b, schema.GameEventBatchVTServerTick, batch.ServerTick)
		schema.GameEventBatchAddEvents(b, events)
		return schema.GameEventBatchEnd(b)
	})
}

func buildGameEvent(b *flatbuffers.Builder, ev *GameEvent) flatbuffers.UOffsetT {
	shooter := createString(b, ev.ShooterID)
	target := createString(b, ev.TargetID)

	schema.GameEventStart(b)
	putByte(b, schema.GameEventVTKind, byte(ev.Kind))
	schema.GameEventAddShooterId(b, shooter)
	schema.GameEventAddTargetId(b, target)
	schema.GameEventAddProjectileId(b, ev.ProjectileID)
	schema.GameEventAddDamage(b, ev.Damage)
	schema.GameEventAddHeadshot(b, ev.Headshot)
	schema.GameEventAddPosX(b, ev.Pos.X)
	schema.GameEventAddPosY(b, ev.Pos.Y)
	schema.GameEventAddPosZ(b, ev.Pos.Z)
	schema.GameEventAddVelX(b, ev.Vel.X)
	schema.GameEventAddVelY(b, ev.Vel.Y)
	schema.GameEventAddVelZ(b, ev.Vel.Z)
	schema.GameEventAddReason(b, byte(ev.Reason))
	return schema.GameEventEnd(b)
}

// BuildGameEventBatch encodes a GameEventBatch and wraps it in an envelope.
func BuildGameEventBatch(batch *GameEventBatch, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgGameEvent, MarshalGameEventBatch(batch), msgSeq, serverSeqAck)
}

// ParseGameEventBatch decodes and validates a GameEvent payload.
func ParseGameEventBatch(payload []byte) (*GameEventBatch, error) {
	return parseTable(payload, func(buf []byte) (*GameEventBatch, error) {
		t := schema.GetRootAsGameEventBatch(buf, 0)
		if err := requireFields(t.Table(), "GameEventBatch",
			schema.GameEventBatchVTServerTick,
			schema.GameEventBatchVTEvents,
		); err != nil {
			return nil, err
		}

		n := t.EventsLength()
		if n > MaxEventsInBatch {
			return nil, invalid("events length", n)
		}

		batch := &GameEventBatch{
			ServerTick: t.ServerTick(),
			Events:     make([]GameEvent, 0, n),
		}
		var row schema.GameEvent
		for i := 0; i < n; i++ {
			t.Events(&row, i)
			ev, err := readGameEvent(&row)
			if err != nil {
				return nil, err
			}
			batch.Events = append(batch.Events, ev)
		}
		return batch, nil
	})
}

func readGameEvent(row *schema.GameEvent) (GameEvent, error) {
	if err := requireFields(row.Table(), "GameEvent", schema.GameEventVTKind); err != nil {
		return GameEvent{}, err
	}
	kind := GameEventKind(row.Kind())
	if kind == 0 || kind >= eventKindEnd {
		return GameEvent{}, invalid("kind", row.Kind())
	}
	shooter, err := checkID("shooter_id", row.ShooterId(), false)
	if err != nil {
		return GameEvent{}, err
	}
	target, err := checkID("target_id", row.TargetId(), false)
	if err != nil {
		return GameEvent{}, err
	}

	ev := GameEvent{
		Kind:         kind,
		ShooterID:    shooter,
		TargetID:     target,
		ProjectileID: row.ProjectileId(),
		Damage:       row.Damage(),
		Headshot:     row.Headshot(),
		Pos:          Vec3{X: row.PosX(), Y: row.PosY(), Z: row.PosZ()},
		Vel:          Vec3{X: row.VelX(), Y: row.VelY(), Z: row.VelZ()},
		Reason:       RemoveReason(row.Reason()),
	}
	if err := checkRange("damage", int64(ev.Damage), 0, MaxHealth); err != nil {
		return GameEvent{}, err
	}
	if err := checkVec3("pos", ev.Pos, MaxCoordinate); err != nil {
		return GameEvent{}, err
	}
	if err := checkVec3("vel", ev.Vel, MaxSpeed); err != nil {
		return GameEvent{}, err
	}
	return ev, nil
}
