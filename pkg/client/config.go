package client

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/vango-dev/netsync/pkg/events"
	"github.com/vango-dev/netsync/pkg/predict"
	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/sim"
	"github.com/vango-dev/netsync/pkg/telemetry"
)

// Config configures a Session.
type Config struct {
	// ProtocolVersion is sent in ClientHello and required in ServerHello.
	// Default: protocol.Version.
	ProtocolVersion uint16

	PlayerName  string
	ClientBuild string

	// HandshakeTimeout bounds the wait for ServerHello.
	// Default: 5s.
	HandshakeTimeout time.Duration

	// PingInterval is the RTT probe period. Zero disables pings.
	// Default: 1s.
	PingInterval time.Duration

	// TickRate and SnapshotRate apply until ServerHello announces the
	// server's values.
	// Default: 60 and 20.
	TickRate     float64
	SnapshotRate float64

	// InputRate is the rate of the sender created by StartInput.
	// Default: 60.
	InputRate float64

	// Events tunes the game event queue. TickRate is taken from the session.
	Events events.Config

	// Prediction tunes the local player's predictor. TickRate is taken from
	// the session.
	Prediction predict.Config

	// Sim is the movement engine used for prediction.
	// Default: sim.NewKinematic(sim.DefaultConfig()).
	Sim sim.Sim

	// MaxRemoteEntities bounds the number of remote players tracked.
	// Default: 64.
	MaxRemoteEntities int

	// NewConnectionID generates the ClientHello connection id.
	// Default: uuid.NewString.
	NewConnectionID func() string

	// Clock drives timeouts, pings and render timestamps.
	// Default: clock.New().
	Clock clock.Clock

	// Handlers receive reliable-channel messages after the handshake.
	Handlers Handlers

	// Capture, when set, receives every inbound frame.
	Capture FrameSink

	Metrics *telemetry.Metrics // Optional
	Tracer  *telemetry.Tracer  // Optional
	Logger  *slog.Logger
}

// DefaultConfig returns the default session settings.
func DefaultConfig() Config {
	return Config{
		ProtocolVersion:   protocol.Version,
		HandshakeTimeout:  5 * time.Second,
		PingInterval:      time.Second,
		TickRate:          60,
		SnapshotRate:      20,
		InputRate:         60,
		Events:            events.DefaultConfig(),
		Prediction:        predict.DefaultConfig(),
		MaxRemoteEntities: 64,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ProtocolVersion == 0 {
		c.ProtocolVersion = def.ProtocolVersion
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = def.HandshakeTimeout
	}
	if c.PingInterval < 0 {
		c.PingInterval = 0
	}
	if !(c.TickRate > 0) {
		c.TickRate = def.TickRate
	}
	if !(c.SnapshotRate > 0) {
		c.SnapshotRate = def.SnapshotRate
	}
	if !(c.InputRate > 0) {
		c.InputRate = def.InputRate
	}
	if c.Prediction.HistorySize <= 0 {
		c.Prediction.HistorySize = def.Prediction.HistorySize
	}
	if c.MaxRemoteEntities <= 0 {
		c.MaxRemoteEntities = def.MaxRemoteEntities
	}
	if c.NewConnectionID == nil {
		c.NewConnectionID = uuid.NewString
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.Events.TickRate = c.TickRate
	c.Prediction.TickRate = c.TickRate
	return c
}

// Handlers are optional callbacks for reliable-channel messages. They run
// on the session's receive goroutine without the session lock held.
type Handlers struct {
	OnJoinAccept    func(*protocol.JoinAccept)
	OnPlayerProfile func(*protocol.PlayerProfile)
	OnWeaponFired   func(*protocol.WeaponFiredEvent)
	OnWeaponReload  func(*protocol.WeaponReloadEvent)

	// OnServerError receives non-fatal server errors. Fatal errors end
	// the session instead.
	OnServerError func(*protocol.ErrorMessage)
}

// FrameSink records inbound frames. internal/capture.Writer implements it.
type FrameSink interface {
	WriteFrame(reliable bool, receivedAtMs float64, frame []byte) error
}
