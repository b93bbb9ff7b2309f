package protocol

import (
	"math"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

// PlayerProfile describes a connected player for scoreboards and name tags.
type PlayerProfile struct {
	ClientID string
	Name     string
	Team     uint8
	Kills    int32
	Deaths   int32
	PingMs   uint16
}

// FireWeaponRequest asks the server to fire the held weapon.
type FireWeaponRequest struct {
	InputSeq   uint32 // Input the shot was sampled with, for lag compensation
	ClientTick uint32
	WeaponSlot uint8
	Origin     Vec3
	Dir        Vec3 // Unit vector
}

// WeaponFiredEvent reports an authoritative shot.
type WeaponFiredEvent struct {
	ShooterID  string
	ServerTick uint32
	WeaponSlot uint8
	Origin     Vec3
	Dir        Vec3
	Hit        bool
	TargetID   string
}

// WeaponReloadEvent reports a completed or started reload.
type WeaponReloadEvent struct {
	ClientID   string
	ServerTick uint32
	WeaponSlot uint8
	Ammo       int32
	ReloadMs   uint32
}

// MarshalPlayerProfile encodes a PlayerProfile payload.
func MarshalPlayerProfile(p *PlayerProfile) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		clientID := b.CreateString(p.ClientID)
		name := b.CreateString(p.Name)

		schema.PlayerProfileStart(b)
		schema.PlayerProfileAddClientId(b, clientID)
		schema.PlayerProfileAddName(b, name)
		schema.PlayerProfileAddTeam(b, p.Team)
		schema.PlayerProfileAddKills(b, p.Kills)
		schema.PlayerProfileAddDeaths(b, p.Deaths)
		schema.PlayerProfileAddPingMs(b, p.PingMs)
		return schema.PlayerProfileEnd(b)
	})
}

// ParsePlayerProfile decodes and validates a PlayerProfile payload.
func ParsePlayerProfile(payload []byte) (*PlayerProfile, error) {
	return parseTable(payload, func(buf []byte) (*PlayerProfile, error) {
		t := schema.GetRootAsPlayerProfile(buf, 0)
		if err := requireFields(t.Table(), "PlayerProfile",
			schema.PlayerProfileVTClientId,
			schema.PlayerProfileVTName,
		); err != nil {
			return nil, err
		}
		clientID, err := checkID("client_id", t.ClientId(), true)
		if err != nil {
			return nil, err
		}
		name, err := checkID("name", t.Name(), false)
		if err != nil {
			return nil, err
		}
		p := &PlayerProfile{
			ClientID: clientID,
			Name:     name,
			Team:     t.Team(),
			Kills:    t.Kills(),
			Deaths:   t.Deaths(),
			PingMs:   t.PingMs(),
		}
		if err := checkRange("kills", int64(p.Kills), 0, MaxScore); err != nil {
			return nil, err
		}
		if err := checkRange("deaths", int64(p.Deaths), 0, MaxScore); err != nil {
			return nil, err
		}
		return p, nil
	})
}

// MarshalFireWeaponRequest encodes a FireWeaponRequest payload.
func MarshalFireWeaponRequest(r *FireWeaponRequest) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		schema.FireWeaponRequestStart(b)
		putUint32(b, schema.FireWeaponRequestVTInputSeq, r.InputSeq)
		schema.FireWeaponRequestAddClientTick(b, r.ClientTick)
		schema.FireWeaponRequestAddWeaponSlot(b, r.WeaponSlot)
		putFloat64(b, schema.FireWeaponRequestVTOriginX, r.Origin.X)
		putFloat64(b, schema.FireWeaponRequestVTOriginY, r.Origin.Y)
		putFloat64(b, schema.FireWeaponRequestVTOriginZ, r.Origin.Z)
		putFloat64(b, schema.FireWeaponRequestVTDirX, r.Dir.X)
		putFloat64(b, schema.FireWeaponRequestVTDirY, r.Dir.Y)
		putFloat64(b, schema.FireWeaponRequestVTDirZ, r.Dir.Z)
		return schema.FireWeaponRequestEnd(b)
	})
}

// BuildFireWeaponRequest encodes a FireWeaponRequest and wraps it in an envelope.
func BuildFireWeaponRequest(r *FireWeaponRequest, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgFireWeaponRequest, MarshalFireWeaponRequest(r), msgSeq, serverSeqAck)
}

// ParseFireWeaponRequest decodes and validates a FireWeaponRequest payload.
// The direction must be a unit vector within a small tolerance.
func ParseFireWeaponRequest(payload []byte) (*FireWeaponRequest, error) {
	return parseTable(payload, func(buf []byte) (*FireWeaponRequest, error) {
		t := schema.GetRootAsFireWeaponRequest(buf, 0)
		if err := requireFields(t.Table(), "FireWeaponRequest",
			schema.FireWeaponRequestVTInputSeq,
			schema.FireWeaponRequestVTOriginX, schema.FireWeaponRequestVTOriginY, schema.FireWeaponRequestVTOriginZ,
			schema.FireWeaponRequestVTDirX, schema.FireWeaponRequestVTDirY, schema.FireWeaponRequestVTDirZ,
		); err != nil {
			return nil, err
		}
		r := &FireWeaponRequest{
			InputSeq:   t.InputSeq(),
			ClientTick: t.ClientTick(),
			WeaponSlot: t.WeaponSlot(),
			Origin:     Vec3{X: t.OriginX(), Y: t.OriginY(), Z: t.OriginZ()},
			Dir:        Vec3{X: t.DirX(), Y: t.DirY(), Z: t.DirZ()},
		}
		if err := checkVec3("origin", r.Origin, MaxCoordinate); err != nil {
			return nil, err
		}
		if err := checkVec3("dir", r.Dir, 1); err != nil {
			return nil, err
		}
		if math.Abs(r.Dir.Len()-1) > 1e-3 {
			return nil, invalid("dir length", r.Dir.Len())
		}
		if r.WeaponSlot >= MaxWeaponSlots {
			return nil, invalid("weapon_slot", r.WeaponSlot)
		}
		return r, nil
	})
}

// MarshalWeaponFiredEvent encodes a WeaponFiredEvent payload.
func MarshalWeaponFiredEvent(ev *WeaponFiredEvent) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		shooter := b.CreateString(ev.ShooterID)
		target := createString(b, ev.TargetID)

		schema.WeaponFiredEventStart(b)
		schema.WeaponFiredEventAddShooterId(b, shooter)
		putUint32(b, schema.WeaponFiredEventVTServerTick, ev.ServerTick)
		schema.WeaponFiredEventAddWeaponSlot(b, ev.WeaponSlot)
		schema.WeaponFiredEventAddOriginX(b, ev.Origin.X)
		schema.WeaponFiredEventAddOriginY(b, ev.Origin.Y)
		schema.WeaponFiredEventAddOriginZ(b, ev.Origin.Z)
		schema.WeaponFiredEventAddDirX(b, ev.Dir.X)
		schema.WeaponFiredEventAddDirY(b, ev.Dir.Y)
		schema.WeaponFiredEventAddDirZ(b, ev.Dir.Z)
		schema.WeaponFiredEventAddHit(b, ev.Hit)
		schema.WeaponFiredEventAddTargetId(b, target)
		return schema.WeaponFiredEventEnd(b)
	})
}

// BuildWeaponFiredEvent encodes a WeaponFiredEvent and wraps it in an envelope.
func BuildWeaponFiredEvent(ev *WeaponFiredEvent, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgWeaponFiredEvent, MarshalWeaponFiredEvent(ev), msgSeq, serverSeqAck)
}

// ParseWeaponFiredEvent decodes and validates a WeaponFiredEvent payload.
func ParseWeaponFiredEvent(payload []byte) (*WeaponFiredEvent, error) {
	return parseTable(payload, func(buf []byte) (*WeaponFiredEvent, error) {
		t := schema.GetRootAsWeaponFiredEvent(buf, 0)
		if err := requireFields(t.Table(), "WeaponFiredEvent",
			schema.WeaponFiredEventVTShooterId,
			schema.WeaponFiredEventVTServerTick,
		); err != nil {
			return nil, err
		}
		shooter, err := checkID("shooter_id", t.ShooterId(), true)
		if err != nil {
			return nil, err
		}
		target, err := checkID("target_id", t.TargetId(), false)
		if err != nil {
			return nil, err
		}
		ev := &WeaponFiredEvent{
			ShooterID:  shooter,
			ServerTick: t.ServerTick(),
			WeaponSlot: t.WeaponSlot(),
			Origin:     Vec3{X: t.OriginX(), Y: t.OriginY(), Z: t.OriginZ()},
			Dir:        Vec3{X: t.DirX(), Y: t.DirY(), Z: t.DirZ()},
			Hit:        t.Hit(),
			TargetID:   target,
		}
		if err := checkVec3("origin", ev.Origin, MaxCoordinate); err != nil {
			return nil, err
		}
		if err := checkVec3("dir", ev.Dir, 1); err != nil {
			return nil, err
		}
		return ev, nil
	})
}

// MarshalWeaponReloadEvent encodes a WeaponReloadEvent payload.
func MarshalWeaponReloadEvent(ev *WeaponReloadEvent) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		clientID := b.CreateString(ev.ClientID)

		schema.WeaponReloadEventStart(b)
		schema.WeaponReloadEventAddClientId(b, clientID)
		putUint32(b, schema.WeaponReloadEventVTServerTick, ev.ServerTick)
		schema.WeaponReloadEventAddWeaponSlot(b, ev.WeaponSlot)
		schema.WeaponReloadEventAddAmmo(b, ev.Ammo)
		schema.WeaponReloadEventAddReloadMs(b, ev.ReloadMs)
		return schema.WeaponReloadEventEnd(b)
	})
}

// BuildWeaponReloadEvent encodes a WeaponReloadEvent and wraps it in an envelope.
func BuildWeaponReloadEvent(ev *WeaponReloadEvent, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgWeaponReloadEvent, MarshalWeaponReloadEvent(ev), msgSeq, serverSeqAck)
}

// ParseWeaponReloadEvent decodes and validates a WeaponReloadEvent payload.
func ParseWeaponReloadEvent(payload []byte) (*WeaponReloadEvent, error) {
	return parseTable(payload, func(buf []byte) (*WeaponReloadEvent, error) {
		t := schema.GetRootAsWeaponReloadEvent(buf, 0)
		if err := requireFields(t.Table(), "WeaponReloadEvent",
			schema.WeaponReloadEventVTClientId,
			schema.WeaponReloadEventVTServerTick,
		); err != nil {
			return nil, err
		}
		clientID, err := checkID("client_id", t.ClientId(), true)
		if err != nil {
			return nil, err
		}
		ev := &WeaponReloadEvent{
			ClientID:   clientID,
			ServerTick: t.ServerTick(),
			WeaponSlot: t.WeaponSlot(),
			Ammo:       t.Ammo(),
			ReloadMs:   t.ReloadMs(),
		}
		if err := checkRange("ammo", int64(ev.Ammo), 0, MaxAmmo); err != nil {
			return nil, err
		}
		if ev.WeaponSlot >= MaxWeaponSlots {
			return nil, invalid("weapon_slot", ev.WeaponSlot)
		}
		return ev, nil
	})
}
