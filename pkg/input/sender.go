// Package input samples local player input at a fixed rate and turns it into
// InputCmd messages.
package input

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vango-dev/netsync/pkg/protocol"
)

// Sample is one raw reading of the player's controls.
type Sample struct {
	MoveX      float64
	MoveY      float64
	Yaw        float64
	Pitch      float64
	Buttons    protocol.Buttons
	WeaponSlot uint8
}

// Sampler reads the player's controls. Keyboard and mouse handling live
// behind this interface.
type Sampler interface {
	Sample() Sample
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func() Sample

// Sample calls f.
func (f SamplerFunc) Sample() Sample { return f() }

// Recorder receives every command after it is sent. The client session
// forwards it to prediction.
type Recorder interface {
	RecordInput(cmd *protocol.InputCmd)
}

// SendFunc transmits one command.
type SendFunc func(cmd *protocol.InputCmd) error

// TickFunc returns the client's estimate of the current server tick.
type TickFunc func() uint32

// Config configures a Sender.
type Config struct {
	// Rate is the send rate in Hz.
	// Default: 60.
	Rate float64

	// Clock drives the send ticker.
	// Default: clock.New().
	Clock clock.Clock

	Sampler  Sampler
	Send     SendFunc
	Recorder Recorder // Optional
	Tick     TickFunc // Optional; the input sequence is used when nil

	Logger *slog.Logger
}

// Sender samples, builds and sends an InputCmd every 1/Rate seconds.
type Sender struct {
	cfg    Config
	period time.Duration

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}

	// Owned by the send goroutine while running.
	seq uint32

	statsMu sync.Mutex
	sent    uint64
	failed  uint64
}

// NewSender creates a stopped sender.
func NewSender(cfg Config) *Sender {
	if !(cfg.Rate > 0) || math.IsInf(cfg.Rate, 0) {
		cfg.Rate = 60
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Sender{
		cfg:    cfg,
		period: time.Duration(float64(time.Second) / cfg.Rate),
	}
}

// Period returns the interval between sends.
func (s *Sender) Period() time.Duration {
	return s.period
}

// Start begins sending. Calling Start on a running sender does nothing.
func (s *Sender) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	// The ticker is created before returning so a mock clock advanced right
	// after Start fires it.
	ticker := s.cfg.Clock.Ticker(s.period)
	go s.loop(ticker, s.stop, s.done)
}

// Stop halts sending and waits for an in-flight send to finish. Stop on a
// stopped or never-started sender does nothing.
func (s *Sender) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
}

// Running reports whether the sender is started.
func (s *Sender) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sender) loop(ticker *clock.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step samples and sends one command.
func (s *Sender) step() {
	s.seq++
	tick := s.seq
	if s.cfg.Tick != nil {
		tick = s.cfg.Tick()
	}
	nowMs := float64(s.cfg.Clock.Now().UnixNano()) / 1e6
	cmd := BuildInputCmd(s.seq, tick, s.cfg.Sampler.Sample(), nowMs)

	if err := s.cfg.Send(cmd); err != nil {
		s.statsMu.Lock()
		s.failed++
		s.statsMu.Unlock()
		s.cfg.Logger.Debug("input send failed", "seq", cmd.InputSeq, "error", err)
		return
	}
	s.statsMu.Lock()
	s.sent++
	s.statsMu.Unlock()

	if s.cfg.Recorder != nil {
		s.cfg.Recorder.RecordInput(cmd)
	}
}

// Counts returns the number of commands sent and failed.
func (s *Sender) Counts() (sent, failed uint64) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.sent, s.failed
}

// BuildInputCmd turns a raw sample into a command that passes
// protocol.ValidateInputCmd. Axes are clamped to [-1, 1], the diagonal is
// normalized, yaw is wrapped to [-π, π), pitch is clamped to [-π/2, π/2],
// unknown buttons are cleared and non-finite values become zero.
func BuildInputCmd(seq, clientTick uint32, s Sample, clientTimeMs float64) *protocol.InputCmd {
	mx, my := clampAxis(s.MoveX), clampAxis(s.MoveY)
	if l := math.Hypot(mx, my); l > 1 {
		mx /= l
		my /= l
	}

	slot := s.WeaponSlot
	if slot >= protocol.MaxWeaponSlots {
		slot = 0
	}
	if !protocol.IsFinite(clientTimeMs) {
		clientTimeMs = 0
	}

	return &protocol.InputCmd{
		InputSeq:     seq,
		ClientTick:   clientTick,
		MoveX:        float32(mx),
		MoveY:        float32(my),
		Yaw:          float32(wrapAngle(s.Yaw)),
		Pitch:        float32(clampPitch(s.Pitch)),
		Buttons:      s.Buttons & protocol.ButtonsAll,
		WeaponSlot:   slot,
		ClientTimeMs: clientTimeMs,
	}
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

func wrapAngle(a float64) float64 {
	if !protocol.IsFinite(a) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func clampPitch(p float64) float64 {
	if !protocol.IsFinite(p) {
		return 0
	}
	// float32 rounding of π/2 lands just above it.
	const limit = math.Pi/2 - 1e-6
	return math.Max(-limit, math.Min(limit, p))
}
