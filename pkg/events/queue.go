// Package events aligns authoritative one-shot game events with the render
// timeline.
//
// The server stamps every GameEventBatch with the tick it happened on. The
// client renders remote state a fixed delay behind the network, so applying
// an event on arrival would show a hit before the shot that caused it. Queue
// holds batches by tick and releases them when the render tick reaches them.
package events

import (
	"maps"
	"math"
	"slices"

	"github.com/vango-dev/netsync/pkg/protocol"
)

// Config tunes a Queue.
type Config struct {
	// TickRate is the server simulation rate in Hz.
	// Default: 60.
	TickRate float64

	// GraceMs is how late a batch may arrive, relative to the render tick,
	// and still be delivered.
	// Default: 150.
	GraceMs float64

	// MaxBufferedTicks bounds the number of distinct ticks held. The oldest
	// ticks are dropped first.
	// Default: 120.
	MaxBufferedTicks int
}

// DefaultConfig returns the queue tuning used by the client session.
func DefaultConfig() Config {
	return Config{
		TickRate:         60,
		GraceMs:          150,
		MaxBufferedTicks: 120,
	}
}

// Stats are cumulative queue counters.
type Stats struct {
	ReceivedBatches uint64
	ReceivedEvents  uint64
	EnqueuedBatches uint64
	EnqueuedEvents  uint64
	DrainedBatches  uint64
	DrainedEvents   uint64
	LateBatches     uint64 // Arrived behind the render tick but within grace
	LateEvents      uint64
	DroppedBatches  uint64 // Too late, or evicted to bound memory
	DroppedEvents   uint64
	Resets          uint64

	LastDrainedTick  int64
	PendingTicks     int
	LastReceivedAtMs float64
}

// Queue buffers game event batches by server tick. It is not safe for
// concurrent use.
type Queue struct {
	cfg        Config
	graceTicks int64

	pending         map[int64][][]protocol.GameEvent
	lastDrainedTick int64

	stats Stats
}

// NewQueue creates an empty queue. Zero fields in cfg take their defaults.
func NewQueue(cfg Config) *Queue {
	def := DefaultConfig()
	if cfg.GraceMs < 0 || math.IsNaN(cfg.GraceMs) {
		cfg.GraceMs = def.GraceMs
	}
	if cfg.MaxBufferedTicks <= 0 {
		cfg.MaxBufferedTicks = def.MaxBufferedTicks
	}
	q := &Queue{
		cfg:             cfg,
		pending:         make(map[int64][][]protocol.GameEvent),
		lastDrainedTick: -1,
	}
	q.SetTickRate(cfg.TickRate)
	return q
}

// SetTickRate sets the server tick rate in Hz and recomputes the grace
// window. Non-positive rates fall back to the default.
func (q *Queue) SetTickRate(rate float64) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		rate = DefaultConfig().TickRate
	}
	q.cfg.TickRate = rate
	q.graceTicks = int64(math.Ceil(q.cfg.GraceMs * rate / 1000))
}

// GraceTicks returns the current grace window in ticks.
func (q *Queue) GraceTicks() int64 {
	return q.graceTicks
}

// Push accepts a batch received at receivedAtMs while renderTick is being
// rendered.
//
// A batch for a tick that has not been drained yet is queued and Push
// returns nil. A batch for a tick already drained is late: it is returned
// for immediate delivery when it lies within the grace window of the render
// tick, and dropped otherwise.
func (q *Queue) Push(batch *protocol.GameEventBatch, receivedAtMs, renderTick float64) []protocol.GameEvent {
	if batch == nil {
		return nil
	}
	n := uint64(len(batch.Events))
	q.stats.ReceivedBatches++
	q.stats.ReceivedEvents += n
	q.stats.LastReceivedAtMs = receivedAtMs

	tick := int64(batch.ServerTick)
	if tick <= q.lastDrainedTick {
		anchor := q.lastDrainedTick
		if rt, ok := floorTick(renderTick); ok && rt > anchor {
			anchor = rt
		}
		if anchor-tick > q.graceTicks {
			q.stats.DroppedBatches++
			q.stats.DroppedEvents += n
			return nil
		}
		q.stats.LateBatches++
		q.stats.LateEvents += n
		return slices.Clone(batch.Events)
	}

	q.pending[tick] = append(q.pending[tick], slices.Clone(batch.Events))
	q.stats.EnqueuedBatches++
	q.stats.EnqueuedEvents += n
	q.prune()
	return nil
}

// prune drops ticks that fell out of the retention window, then the oldest
// ticks while more than MaxBufferedTicks are held.
func (q *Queue) prune() {
	floor := q.lastDrainedTick - int64(q.cfg.MaxBufferedTicks)
	for tick := range q.pending {
		if tick < floor {
			q.drop(tick)
		}
	}
	if len(q.pending) <= q.cfg.MaxBufferedTicks {
		return
	}
	ticks := slices.Sorted(maps.Keys(q.pending))
	for _, tick := range ticks[:len(ticks)-q.cfg.MaxBufferedTicks] {
		q.drop(tick)
	}
}

func (q *Queue) drop(tick int64) {
	for _, evs := range q.pending[tick] {
		q.stats.DroppedBatches++
		q.stats.DroppedEvents += uint64(len(evs))
	}
	delete(q.pending, tick)
}

// Drain returns every queued event up to and including renderTick, in tick
// order, and marks those ticks delivered.
//
// A renderTick below the last drained tick means the session restarted: the
// queue is cleared and resumes just behind the new render tick.
func (q *Queue) Drain(renderTick float64) []protocol.GameEvent {
	target, ok := floorTick(renderTick)
	if !ok {
		return nil
	}
	if target < q.lastDrainedTick {
		clear(q.pending)
		q.lastDrainedTick = target - 1
		q.stats.Resets++
		return nil
	}

	var ticks []int64
	for tick := range q.pending {
		if tick <= target {
			ticks = append(ticks, tick)
		}
	}
	slices.Sort(ticks)

	var out []protocol.GameEvent
	for _, tick := range ticks {
		for _, evs := range q.pending[tick] {
			out = append(out, evs...)
			q.stats.DrainedBatches++
			q.stats.DrainedEvents += uint64(len(evs))
		}
		delete(q.pending, tick)
	}
	q.lastDrainedTick = target
	return out
}

// LastDrainedTick returns the highest tick delivered, or -1 before the first
// drain.
func (q *Queue) LastDrainedTick() int64 {
	return q.lastDrainedTick
}

// Stats returns a copy of the queue counters.
func (q *Queue) Stats() Stats {
	s := q.stats
	s.LastDrainedTick = q.lastDrainedTick
	s.PendingTicks = len(q.pending)
	return s
}

// Clear drops every queued batch and restarts tick tracking. Counters are
// kept.
func (q *Queue) Clear() {
	clear(q.pending)
	q.lastDrainedTick = -1
}

// floorTick converts a fractional render tick to the whole tick being shown.
func floorTick(renderTick float64) (int64, bool) {
	if math.IsNaN(renderTick) || math.IsInf(renderTick, 0) || renderTick < 0 {
		return 0, false
	}
	return int64(math.Floor(renderTick)), true
}
