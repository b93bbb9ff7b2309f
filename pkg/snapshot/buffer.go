package snapshot

import (
	"math"

	"github.com/vango-dev/netsync/pkg/protocol"
)

const (
	// BufferCapacity is the number of snapshots a Buffer retains.
	BufferCapacity = 6

	// DefaultSnapshotRate is used when SetSnapshotRate gets a non-positive rate.
	DefaultSnapshotRate = 20
)

// Entry is one buffered snapshot with its local receive time.
type Entry struct {
	Snapshot     protocol.StateSnapshot
	ReceivedAtMs float64
}

// Buffer is a fixed-capacity ring of snapshots for one entity, ordered by
// arrival. Sample renders the entity interpolationDelay behind the caller's
// clock so two real samples are usually available to blend between.
//
// Snapshots older than the most recent push are dropped, not reordered into
// place.
type Buffer struct {
	entries [BufferCapacity]Entry
	head    int // Index of the oldest entry
	count   int

	lastTick  uint32
	hasPushed bool

	interpolationDelayMs float64

	dropped uint64
}

// NewBuffer creates an empty buffer at the default snapshot rate.
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.SetSnapshotRate(DefaultSnapshotRate)
	return b
}

// Push appends a snapshot received at receivedAtMs. A snapshot whose tick is
// below the last pushed tick is ignored. The oldest entry is evicted when the
// buffer is full.
func (b *Buffer) Push(s *protocol.StateSnapshot, receivedAtMs float64) bool {
	if s == nil {
		return false
	}
	if b.hasPushed && s.ServerTick < b.lastTick {
		b.dropped++
		return false
	}
	b.lastTick = s.ServerTick
	b.hasPushed = true

	if b.count == BufferCapacity {
		b.head = (b.head + 1) % BufferCapacity
		b.count--
	}
	b.entries[(b.head+b.count)%BufferCapacity] = Entry{Snapshot: *s, ReceivedAtMs: receivedAtMs}
	b.count++
	return true
}

// SetSnapshotRate sets the expected server snapshot rate in Hz. The
// interpolation delay becomes two snapshot intervals. Non-positive or
// non-finite rates fall back to DefaultSnapshotRate.
func (b *Buffer) SetSnapshotRate(rate float64) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		rate = DefaultSnapshotRate
	}
	b.interpolationDelayMs = 1000 / rate * 2
}

// InterpolationDelayMs returns the current render delay.
func (b *Buffer) InterpolationDelayMs() float64 {
	return b.interpolationDelayMs
}

// Sample returns the entity state at nowMs minus the interpolation delay.
//
// With no snapshots it returns nil. With one it returns a copy of that
// snapshot. Otherwise position, velocity and dash cooldown are blended
// between the two oldest remaining entries and every other field is taken
// from the newer one. Pairs that the render time has already passed are
// discarded first.
func (b *Buffer) Sample(nowMs float64) *protocol.StateSnapshot {
	older, newer, alpha, ok := b.bracket(nowMs)
	if !ok {
		return nil
	}
	if older == nil {
		out := newer.Snapshot
		return &out
	}

	out := newer.Snapshot
	if alpha < 1 {
		o := &older.Snapshot
		n := &newer.Snapshot
		out.Pos = o.Pos.Lerp(n.Pos, alpha)
		out.Vel = o.Vel.Lerp(n.Vel, alpha)
		out.DashCooldown = o.DashCooldown + (n.DashCooldown-o.DashCooldown)*alpha
	}
	return &out
}

// RenderTick returns the fractional server tick being rendered at nowMs.
func (b *Buffer) RenderTick(nowMs float64) (float64, bool) {
	older, newer, alpha, ok := b.bracket(nowMs)
	if !ok {
		return 0, false
	}
	nt := float64(newer.Snapshot.ServerTick)
	if older == nil {
		return nt, true
	}
	ot := float64(older.Snapshot.ServerTick)
	return ot + (nt-ot)*alpha, true
}

// bracket discards stale pairs and returns the entries to blend for nowMs.
// older is nil when a single entry remains.
func (b *Buffer) bracket(nowMs float64) (older, newer *Entry, alpha float64, ok bool) {
	if b.count == 0 {
		return nil, nil, 0, false
	}
	target := nowMs - b.interpolationDelayMs

	for b.count > 2 && b.at(1).ReceivedAtMs <= target {
		b.head = (b.head + 1) % BufferCapacity
		b.count--
	}

	if b.count == 1 {
		return nil, b.at(0), 1, true
	}
	older, newer = b.at(0), b.at(1)
	span := newer.ReceivedAtMs - older.ReceivedAtMs
	if !(span > 0) {
		return older, newer, 1, true
	}
	alpha = (target - older.ReceivedAtMs) / span
	return older, newer, clamp01(alpha), true
}

// at returns the i-th oldest entry.
func (b *Buffer) at(i int) *Entry {
	return &b.entries[(b.head+i)%BufferCapacity]
}

// Latest returns the most recently pushed snapshot.
func (b *Buffer) Latest() (*protocol.StateSnapshot, bool) {
	if b.count == 0 {
		return nil, false
	}
	s := b.at(b.count - 1).Snapshot
	return &s, true
}

// Len returns the number of buffered snapshots.
func (b *Buffer) Len() int {
	return b.count
}

// Dropped returns how many pushes were rejected as stale.
func (b *Buffer) Dropped() uint64 {
	return b.dropped
}

// Clear empties the buffer and forgets the last pushed tick. The snapshot
// rate is kept.
func (b *Buffer) Clear() {
	b.entries = [BufferCapacity]Entry{}
	b.head = 0
	b.count = 0
	b.lastTick = 0
	b.hasPushed = false
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return math.Max(0, math.Min(1, v))
}
