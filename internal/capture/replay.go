package capture

import (
	"context"
	"log/slog"
	"math"

	"github.com/vango-dev/netsync/pkg/events"
	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/snapshot"
	"github.com/vango-dev/netsync/pkg/transport/memtransport"
)

// ReplayConfig configures Replay.
type ReplayConfig struct {
	// TickRate and SnapshotRate override the rates announced by a captured
	// ServerHello.
	// Default: the ServerHello values, else 60 and 20.
	TickRate     float64
	SnapshotRate float64

	// LocalID is the entity whose render tick drives event delivery.
	// Default: the ServerHello client id.
	LocalID string

	// Shape, when set, passes unreliable frames through a shaped in-memory
	// link to show how the pipeline copes with extra loss or reordering.
	Shape *memtransport.Config

	Logger *slog.Logger
}

// Summary describes what the pipeline made of a capture.
type Summary struct {
	Records      int            `json:"records"`
	Reliable     int            `json:"reliable"`
	Unreliable   int            `json:"unreliable"`
	Delivered    int            `json:"delivered"`
	Malformed    int            `json:"malformed"`
	MessageTypes map[string]int `json:"message_types"`

	Snapshots        int `json:"snapshots"`
	Deltas           int `json:"deltas"`
	DeltasRejected   int `json:"deltas_rejected"`
	SnapshotsApplied int `json:"snapshots_applied"`
	SnapshotsStale   int `json:"snapshots_stale"`
	Entities         int `json:"entities"`

	EventBatches  int    `json:"event_batches"`
	Events        uint64 `json:"events"`
	EventsOnTime  uint64 `json:"events_on_time"`
	EventsLate    uint64 `json:"events_late"`
	EventsDropped uint64 `json:"events_dropped"`

	LocalID      string  `json:"local_id"`
	TickRate     float64 `json:"tick_rate"`
	SnapshotRate float64 `json:"snapshot_rate"`
	FirstTick    uint32  `json:"first_tick"`
	LastTick     uint32  `json:"last_tick"`
	DurationMs   float64 `json:"duration_ms"`

	ShapedDropped    uint64 `json:"shaped_dropped,omitempty"`
	ShapedDuplicated uint64 `json:"shaped_duplicated,omitempty"`
	ShapedReordered  uint64 `json:"shaped_reordered,omitempty"`
}

type replayer struct {
	cfg      ReplayConfig
	sum      Summary
	decoder  *snapshot.DeltaDecoder
	buffers  map[string]*snapshot.Buffer
	queue    *events.Queue
	seenTick bool
}

// Replay feeds records through the delta decoder, per-entity snapshot
// buffers and the event queue, draining events at each record's receive
// time the way a live session would.
func Replay(records []Record, cfg ReplayConfig) Summary {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	r := &replayer{
		cfg:     cfg,
		decoder: snapshot.NewDeltaDecoder(),
		buffers: make(map[string]*snapshot.Buffer),
		queue:   events.NewQueue(events.DefaultConfig()),
		sum: Summary{
			MessageTypes: make(map[string]int),
			LocalID:      cfg.LocalID,
			TickRate:     60,
			SnapshotRate: 20,
		},
	}
	r.setRates(cfg.TickRate, cfg.SnapshotRate)

	var link *shapedLink
	if cfg.Shape != nil {
		link = newShapedLink(*cfg.Shape)
		defer link.close()
	}

	var lastMs float64
	for _, rec := range records {
		r.sum.Records++
		if rec.Reliable {
			r.sum.Reliable++
		} else {
			r.sum.Unreliable++
		}
		lastMs = math.Max(lastMs, rec.ReceivedAtMs)
		r.sum.DurationMs = lastMs - records[0].ReceivedAtMs

		if link != nil && !rec.Reliable {
			for _, frame := range link.pass(rec.Frame) {
				r.handle(frame, rec.ReceivedAtMs)
			}
		} else {
			r.handle(rec.Frame, rec.ReceivedAtMs)
		}
		r.drain(rec.ReceivedAtMs)
	}
	if link != nil {
		for _, frame := range link.flush() {
			r.handle(frame, lastMs)
		}
		st := link.tx.Stats()
		r.sum.ShapedDropped = st.Dropped
		r.sum.ShapedDuplicated = st.Duplicated
		r.sum.ShapedReordered = st.Reordered
	}

	// Let the render clock run past the last snapshot so queued events are
	// delivered.
	if b := r.localBuffer(); b != nil {
		r.drain(lastMs + b.InterpolationDelayMs() + 1)
	}

	st := r.queue.Stats()
	r.sum.EventsOnTime = st.DrainedEvents
	r.sum.EventsLate = st.LateEvents
	r.sum.EventsDropped = st.DroppedEvents
	r.sum.Entities = len(r.buffers)
	return r.sum
}

func (r *replayer) setRates(tickRate, snapshotRate float64) {
	if tickRate > 0 && !math.IsInf(tickRate, 0) {
		r.sum.TickRate = tickRate
	}
	if snapshotRate > 0 && !math.IsInf(snapshotRate, 0) {
		r.sum.SnapshotRate = snapshotRate
	}
	r.queue.SetTickRate(r.sum.TickRate)
	for _, b := range r.buffers {
		b.SetSnapshotRate(r.sum.SnapshotRate)
	}
}

func (r *replayer) handle(frame []byte, atMs float64) {
	env, msg, err := protocol.DecodeMessage(frame)
	if err != nil {
		r.sum.Malformed++
		r.cfg.Logger.Debug("replay: malformed frame", "error", err)
		return
	}
	r.sum.Delivered++
	r.sum.MessageTypes[env.Type.String()]++

	switch m := msg.(type) {
	case *protocol.ServerHello:
		if r.cfg.LocalID == "" {
			r.sum.LocalID = m.ClientID
		}
		tick, snap := r.cfg.TickRate, r.cfg.SnapshotRate
		if !(tick > 0) {
			tick = float64(m.TickRate)
		}
		if !(snap > 0) {
			snap = float64(m.SnapshotRate)
		}
		r.setRates(tick, snap)
	case *protocol.StateSnapshot:
		r.sum.Snapshots++
		r.push(r.decoder.Apply(m), atMs)
	case *protocol.StateSnapshotDelta:
		r.sum.Deltas++
		full := r.decoder.Apply(m)
		if full == nil {
			r.sum.DeltasRejected++
			return
		}
		r.push(full, atMs)
	case *protocol.GameEventBatch:
		r.sum.EventBatches++
		r.sum.Events += uint64(len(m.Events))
		r.queue.Push(m, atMs, r.renderTick(atMs))
	}
}

func (r *replayer) push(s *protocol.StateSnapshot, atMs float64) {
	b, ok := r.buffers[s.ClientID]
	if !ok {
		b = snapshot.NewBuffer()
		b.SetSnapshotRate(r.sum.SnapshotRate)
		r.buffers[s.ClientID] = b
	}
	if !b.Push(s, atMs) {
		r.sum.SnapshotsStale++
		return
	}
	r.sum.SnapshotsApplied++
	if !r.seenTick || s.ServerTick < r.sum.FirstTick {
		r.sum.FirstTick = s.ServerTick
	}
	if !r.seenTick || s.ServerTick > r.sum.LastTick {
		r.sum.LastTick = s.ServerTick
	}
	r.seenTick = true
}

func (r *replayer) localBuffer() *snapshot.Buffer {
	if b, ok := r.buffers[r.sum.LocalID]; ok {
		return b
	}
	return r.buffers[""]
}

func (r *replayer) renderTick(atMs float64) float64 {
	b := r.localBuffer()
	if b == nil {
		return math.NaN()
	}
	rt, ok := b.RenderTick(atMs)
	if !ok {
		return math.NaN()
	}
	return rt
}

func (r *replayer) drain(atMs float64) {
	if rt := r.renderTick(atMs); !math.IsNaN(rt) {
		r.queue.Drain(rt)
	}
}

// shapedLink routes frames through a memtransport pair.
type shapedLink struct {
	tx, rx *memtransport.Conn
	ctx    context.Context
}

func newShapedLink(cfg memtransport.Config) *shapedLink {
	tx, rx := memtransport.Pair(cfg)
	// An expired context makes Receive return only what is already queued.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return &shapedLink{tx: tx, rx: rx, ctx: ctx}
}

func (l *shapedLink) pass(frame []byte) [][]byte {
	_ = l.tx.Unreliable().Send(frame)
	return l.collect()
}

func (l *shapedLink) flush() [][]byte {
	l.tx.Flush()
	return l.collect()
}

func (l *shapedLink) collect() [][]byte {
	var out [][]byte
	for {
		msg, err := l.rx.Unreliable().Receive(l.ctx)
		if err != nil {
			return out
		}
		out = append(out, msg)
	}
}

func (l *shapedLink) close() {
	_ = l.tx.Close("replay done")
}
