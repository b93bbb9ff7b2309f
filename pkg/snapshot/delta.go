// Package snapshot reconstructs and buffers authoritative entity state.
//
// A DeltaDecoder turns the keyframe and delta stream of one connection into
// full snapshots, keeping the last keyframe per entity. A Buffer holds the
// most recent snapshots of one entity and samples them at a render time that
// trails the network by a fixed interpolation delay.
//
// Neither type is safe for concurrent use. The client session owns one
// decoder and one buffer per entity and serializes access to them.
package snapshot

import (
	"github.com/vango-dev/netsync/pkg/protocol"
)

// DefaultKey is the entity key used for snapshots that carry no client id.
const DefaultKey = ""

// DeltaDecoder reconstructs full snapshots from keyframes and deltas.
type DeltaDecoder struct {
	bases map[string]*protocol.StateSnapshot
}

// NewDeltaDecoder creates an empty decoder.
func NewDeltaDecoder() *DeltaDecoder {
	return &DeltaDecoder{bases: make(map[string]*protocol.StateSnapshot)}
}

// Apply consumes a *protocol.StateSnapshot or *protocol.StateSnapshotDelta.
//
// A full snapshot becomes the keyframe for its entity and is returned as is.
// A delta is applied to the keyframe of its entity and the result returned.
// Apply returns nil when the delta has no keyframe, when the keyframe's tick
// differs from the delta's base tick, or for any other message type. The
// caller waits for the next keyframe in that case.
func (d *DeltaDecoder) Apply(msg any) *protocol.StateSnapshot {
	switch m := msg.(type) {
	case *protocol.StateSnapshot:
		if m == nil {
			return nil
		}
		d.store(m)
		return m
	case *protocol.StateSnapshotDelta:
		if m == nil {
			return nil
		}
		base := d.base(m.ClientID)
		if base == nil || base.ServerTick != m.BaseTick {
			return nil
		}
		return applyDelta(base, m)
	default:
		return nil
	}
}

// store keeps s as the keyframe for its entity unless a newer keyframe is
// already cached.
func (d *DeltaDecoder) store(s *protocol.StateSnapshot) {
	if cur, ok := d.bases[s.ClientID]; ok && cur.ServerTick > s.ServerTick {
		return
	}
	keyframe := *s
	d.bases[s.ClientID] = &keyframe
}

// base finds the keyframe for key. An unnamed delta falls back to the only
// cached keyframe when exactly one exists.
func (d *DeltaDecoder) base(key string) *protocol.StateSnapshot {
	if b, ok := d.bases[key]; ok {
		return b
	}
	if key == DefaultKey && len(d.bases) == 1 {
		for _, b := range d.bases {
			return b
		}
	}
	return nil
}

// BaseTick returns the tick of the keyframe cached for key.
func (d *DeltaDecoder) BaseTick(key string) (uint32, bool) {
	b, ok := d.bases[key]
	if !ok {
		return 0, false
	}
	return b.ServerTick, true
}

// Forget drops the keyframe for one entity.
func (d *DeltaDecoder) Forget(key string) {
	delete(d.bases, key)
}

// Len returns the number of cached keyframes.
func (d *DeltaDecoder) Len() int {
	return len(d.bases)
}

// Reset drops every cached keyframe.
func (d *DeltaDecoder) Reset() {
	clear(d.bases)
}

// applyDelta returns base with every masked field replaced by the delta's value.
func applyDelta(base *protocol.StateSnapshot, delta *protocol.StateSnapshotDelta) *protocol.StateSnapshot {
	out := *base
	out.ServerTick = delta.ServerTick
	if delta.ClientID != "" {
		out.ClientID = delta.ClientID
	}

	m := delta.Mask
	if m.Has(protocol.DeltaPosX) {
		out.Pos.X = delta.Pos.X
	}
	if m.Has(protocol.DeltaPosY) {
		out.Pos.Y = delta.Pos.Y
	}
	if m.Has(protocol.DeltaPosZ) {
		out.Pos.Z = delta.Pos.Z
	}
	if m.Has(protocol.DeltaVelX) {
		out.Vel.X = delta.Vel.X
	}
	if m.Has(protocol.DeltaVelY) {
		out.Vel.Y = delta.Vel.Y
	}
	if m.Has(protocol.DeltaVelZ) {
		out.Vel.Z = delta.Vel.Z
	}
	if m.Has(protocol.DeltaDashCooldown) {
		out.DashCooldown = delta.DashCooldown
	}
	if m.Has(protocol.DeltaHealth) {
		out.Health = delta.Health
	}
	if m.Has(protocol.DeltaKills) {
		out.Kills = delta.Kills
	}
	if m.Has(protocol.DeltaDeaths) {
		out.Deaths = delta.Deaths
	}
	if m.Has(protocol.DeltaWeaponSlot) {
		out.WeaponSlot = delta.WeaponSlot
	}
	if m.Has(protocol.DeltaAmmo) {
		out.Ammo = delta.Ammo
	}
	if m.Has(protocol.DeltaLastProcessedInputSeq) {
		out.LastProcessedInputSeq = delta.LastProcessedInputSeq
	}
	return &out
}

// Diff builds the delta that turns base into next. Only fields that differ
// are masked in. Servers, test harnesses and the replay tool use it to
// produce delta streams.
func Diff(base, next *protocol.StateSnapshot) *protocol.StateSnapshotDelta {
	d := &protocol.StateSnapshotDelta{
		ServerTick: next.ServerTick,
		BaseTick:   base.ServerTick,
		ClientID:   next.ClientID,
	}
	set := func(f protocol.DeltaField, changed bool) {
		if changed {
			d.Mask |= f
		}
	}

	set(protocol.DeltaPosX, next.Pos.X != base.Pos.X)
	set(protocol.DeltaPosY, next.Pos.Y != base.Pos.Y)
	set(protocol.DeltaPosZ, next.Pos.Z != base.Pos.Z)
	set(protocol.DeltaVelX, next.Vel.X != base.Vel.X)
	set(protocol.DeltaVelY, next.Vel.Y != base.Vel.Y)
	set(protocol.DeltaVelZ, next.Vel.Z != base.Vel.Z)
	set(protocol.DeltaDashCooldown, next.DashCooldown != base.DashCooldown)
	set(protocol.DeltaHealth, next.Health != base.Health)
	set(protocol.DeltaKills, next.Kills != base.Kills)
	set(protocol.DeltaDeaths, next.Deaths != base.Deaths)
	set(protocol.DeltaWeaponSlot, next.WeaponSlot != base.WeaponSlot)
	set(protocol.DeltaAmmo, next.Ammo != base.Ammo)
	set(protocol.DeltaLastProcessedInputSeq, next.LastProcessedInputSeq != base.LastProcessedInputSeq)

	// Unmasked fields stay zero so the encoder omits them.
	m := d.Mask
	if m.Has(protocol.DeltaPosX) {
		d.Pos.X = next.Pos.X
	}
	if m.Has(protocol.DeltaPosY) {
		d.Pos.Y = next.Pos.Y
	}
	if m.Has(protocol.DeltaPosZ) {
		d.Pos.Z = next.Pos.Z
	}
	if m.Has(protocol.DeltaVelX) {
		d.Vel.X = next.Vel.X
	}
	if m.Has(protocol.DeltaVelY) {
		d.Vel.Y = next.Vel.Y
	}
	if m.Has(protocol.DeltaVelZ) {
		d.Vel.Z = next.Vel.Z
	}
	if m.Has(protocol.DeltaDashCooldown) {
		d.DashCooldown = next.DashCooldown
	}
	if m.Has(protocol.DeltaHealth) {
		d.Health = next.Health
	}
	if m.Has(protocol.DeltaKills) {
		d.Kills = next.Kills
	}
	if m.Has(protocol.DeltaDeaths) {
		d.Deaths = next.Deaths
	}
	if m.Has(protocol.DeltaWeaponSlot) {
		d.WeaponSlot = next.WeaponSlot
	}
	if m.Has(protocol.DeltaAmmo) {
		d.Ammo = next.Ammo
	}
	if m.Has(protocol.DeltaLastProcessedInputSeq) {
		d.LastProcessedInputSeq = next.LastProcessedInputSeq
	}
	return d
}
