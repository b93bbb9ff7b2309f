// Package predict runs the local player's movement ahead of the server and
// reconciles it against authoritative snapshots.
//
// Every recorded input steps the simulation one fixed tick immediately, so
// the player sees their own movement with no round-trip delay. The input and
// the resulting state are kept in a bounded history. When a snapshot arrives
// the predictor discards history the server has already applied, reseeds the
// simulation from the snapshot and replays the inputs the server has not yet
// seen.
package predict

import (
	"math"

	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/sim"
)

// Config tunes a Predictor.
type Config struct {
	// TickRate is the fixed simulation rate in Hz. Each recorded input
	// advances the simulation by 1/TickRate seconds.
	// Default: 60.
	TickRate float64

	// HistorySize bounds the number of unacknowledged inputs retained. It
	// must cover the longest expected round trip at TickRate.
	// Default: 128.
	HistorySize int
}

// DefaultConfig returns the prediction tuning used by the client session.
func DefaultConfig() Config {
	return Config{
		TickRate:    60,
		HistorySize: 128,
	}
}

// Entry is one recorded input and the predicted state after applying it.
type Entry struct {
	InputSeq uint32
	Input    sim.Input
	State    sim.State
}

// Stats are cumulative reconciliation counters.
type Stats struct {
	Recorded       uint64
	Evicted        uint64 // Inputs pushed out of a full history
	Reconciles     uint64
	StaleSnapshots uint64 // Snapshots older than the last reconciled tick
	Replayed       uint64
	Corrections    uint64 // Reconciles that moved the predicted position
	LastCorrection float64
	MaxCorrection  float64
	Pending        int
}

// CorrectionEpsilon is the position change below which a reconcile does not
// count as a correction.
const CorrectionEpsilon = 1e-6

// Predictor is the client-side prediction and reconciliation loop for the
// local player. It is not safe for concurrent use.
type Predictor struct {
	sim sim.Sim
	dt  float64

	history []Entry
	head    int // Index of the oldest entry
	count   int

	active        bool
	reconciled    bool
	reconcileTick uint32

	stats Stats
}

// New creates a predictor driving s. A nil s uses a Kinematic engine with
// the default movement tuning. Zero fields in cfg take their defaults.
func New(cfg Config, s sim.Sim) *Predictor {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultConfig().HistorySize
	}
	if s == nil {
		s = sim.NewKinematic(sim.DefaultConfig())
	}
	p := &Predictor{
		sim:     s,
		history: make([]Entry, cfg.HistorySize),
	}
	p.SetTickRate(cfg.TickRate)
	return p
}

// SetTickRate sets the fixed simulation rate. Non-positive rates fall back
// to the default.
func (p *Predictor) SetTickRate(rate float64) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		rate = DefaultConfig().TickRate
	}
	p.dt = 1 / rate
}

// Dt returns the fixed step in seconds.
func (p *Predictor) Dt() float64 {
	return p.dt
}

// RecordInput applies cmd for one tick and remembers it for replay.
func (p *Predictor) RecordInput(cmd *protocol.InputCmd) {
	if cmd == nil {
		return
	}
	in := sim.InputFromCmd(cmd)
	p.sim.Step(in, p.dt)

	if p.count == len(p.history) {
		p.head = (p.head + 1) % len(p.history)
		p.count--
		p.stats.Evicted++
	}
	p.history[(p.head+p.count)%len(p.history)] = Entry{
		InputSeq: cmd.InputSeq,
		Input:    in,
		State:    p.sim.State(),
	}
	p.count++
	p.active = true
	p.stats.Recorded++
}

// Reconcile corrects the prediction against an authoritative snapshot of
// the local player and returns how far the predicted position moved.
//
// History up to and including the snapshot's LastProcessedInputSeq is
// discarded, the simulation is reseeded from the snapshot, and the
// remaining inputs are replayed in order. Calling Reconcile again with the
// same snapshot yields the same state. A snapshot older than the last one
// reconciled is ignored.
func (p *Predictor) Reconcile(s *protocol.StateSnapshot) float64 {
	if s == nil {
		return 0
	}
	if p.reconciled && s.ServerTick < p.reconcileTick {
		p.stats.StaleSnapshots++
		return 0
	}
	p.reconciled = true
	p.reconcileTick = s.ServerTick
	p.stats.Reconciles++

	p.discardThrough(s.LastProcessedInputSeq)

	before := p.sim.State().Pos
	p.sim.SetState(sim.StateFromSnapshot(s))
	for i := 0; i < p.count; i++ {
		e := p.at(i)
		p.sim.Step(e.Input, p.dt)
		e.State = p.sim.State()
	}
	p.stats.Replayed += uint64(p.count)

	correction := p.sim.State().Pos.Sub(before).Len()
	p.stats.LastCorrection = correction
	if correction > CorrectionEpsilon {
		p.stats.Corrections++
	}
	if correction > p.stats.MaxCorrection {
		p.stats.MaxCorrection = correction
	}
	return correction
}

// discardThrough drops history entries the server has already applied. An
// acknowledgement of NoInputSeq discards nothing; one beyond every recorded
// input empties the history.
func (p *Predictor) discardThrough(acked int32) {
	if acked < 0 {
		return
	}
	for p.count > 0 && int64(p.at(0).InputSeq) <= int64(acked) {
		p.head = (p.head + 1) % len(p.history)
		p.count--
	}
}

func (p *Predictor) at(i int) *Entry {
	return &p.history[(p.head+i)%len(p.history)]
}

// State returns the current predicted state.
func (p *Predictor) State() sim.State {
	return p.sim.State()
}

// IsActive reports whether any input has been recorded. Until then the
// caller renders the local player from the snapshot buffer.
func (p *Predictor) IsActive() bool {
	return p.active
}

// SetSim swaps the simulation engine. The current state is copied into the
// new engine; history is kept and nothing is replayed.
func (p *Predictor) SetSim(s sim.Sim) {
	if s == nil {
		return
	}
	s.SetState(p.sim.State())
	p.sim = s
}

// Sim returns the active simulation engine.
func (p *Predictor) Sim() sim.Sim {
	return p.sim
}

// Pending returns the unacknowledged inputs, oldest first.
func (p *Predictor) Pending() []Entry {
	out := make([]Entry, p.count)
	for i := range out {
		out[i] = *p.at(i)
	}
	return out
}

// Stats returns a copy of the reconciliation counters.
func (p *Predictor) Stats() Stats {
	s := p.stats
	s.Pending = p.count
	return s
}

// Reset forgets history and returns the simulation to spawn. Used on
// disconnect.
func (p *Predictor) Reset() {
	p.sim.Reset()
	clear(p.history)
	p.head = 0
	p.count = 0
	p.active = false
	p.reconciled = false
	p.reconcileTick = 0
}
