// Package client runs a netsync session: the handshake, the receive and ping
// loops, and the per-entity reconstruction pipelines that turn a lossy
// snapshot stream into render state.
//
// A Session owns one delta decoder and one interpolation buffer per tracked
// entity, the local player's predictor and the game event queue. Network
// goroutines and the render loop share them under a single mutex; none of
// the guarded operations block.
//
//	sess, err := client.Dial(ctx, dialer, "game.example.com:7777", cfg)
//	if err != nil {
//	    var he *client.HandshakeError
//	    if errors.As(err, &he) {
//	        showDisconnected(he.Reason)
//	    }
//	    return err
//	}
//	go sess.Run(ctx)
//	sess.StartInput(sampler)
//
//	// every frame
//	now := sess.NowMs()
//	state, _ := sess.PredictedOrInterpolatedState(now)
//	for _, ev := range sess.DrainEvents(now) { ... }
package client

import (
	"context"
	stderrors "errors"
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/netsync/internal/errors"
	"github.com/vango-dev/netsync/pkg/events"
	"github.com/vango-dev/netsync/pkg/input"
	"github.com/vango-dev/netsync/pkg/predict"
	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/sim"
	"github.com/vango-dev/netsync/pkg/snapshot"
	"github.com/vango-dev/netsync/pkg/telemetry"
	"github.com/vango-dev/netsync/pkg/transport"
)

// ErrSessionClosed is returned by sends after Close.
var ErrSessionClosed = stderrors.New("client: session closed")

// track is the reconstruction pipeline of one entity.
type track struct {
	decoder *snapshot.DeltaDecoder
	buffer  *snapshot.Buffer
}

// Session is an established connection to a game server.
type Session struct {
	cfg    Config
	conn   transport.Conn
	clock  clock.Clock
	logger *slog.Logger

	connectionID string

	seq       atomic.Uint32 // Last outbound msgSeq
	serverAck atomic.Uint32 // Highest inbound msgSeq
	pingNonce atomic.Uint32

	mu           sync.Mutex
	hello        *protocol.ServerHello
	clientID     string
	tickRate     float64
	snapshotRate float64
	local        *track
	remotes      map[string]*track
	predictor    *predict.Predictor
	queue        *events.Queue
	immediate    []protocol.GameEvent
	rtt          RTTEstimator
	serverTick   uint32
	serverTickAt float64
	sender       *input.Sender
	counters     counters

	closeOnce sync.Once
	done      chan struct{}
}

type counters struct {
	framesReliable   uint64
	framesUnreliable uint64
	malformed        uint64
	snapshotsApplied uint64
	snapshotsStale   uint64
	deltasRejected   uint64
	untracked        uint64
	inputsSent       uint64
	inputsFailed     uint64
}

// Dial opens a connection with d and performs the handshake.
func Dial(ctx context.Context, d transport.Dialer, addr string, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	ctx, span := cfg.Tracer.StartConnect(ctx, telemetry.ConnectAttrs{
		Addr:       addr,
		PlayerName: cfg.PlayerName,
		Version:    cfg.ProtocolVersion,
	})

	conn, err := d.Dial(ctx, addr)
	if err != nil {
		ne := errors.New(errors.CodeDialFailed).WithField("addr", addr).Wrap(err)
		telemetry.EndSpan(span, ne)
		return nil, ne
	}

	s, err := Connect(ctx, conn, cfg)
	if s != nil {
		span.SetAttributes(
			attribute.String("netsync.connection_id", s.connectionID),
			attribute.String("netsync.client_id", s.ClientID()),
		)
	}
	telemetry.EndSpan(span, err)
	return s, err
}

// Connect performs the handshake over an established connection. The
// connection is closed if the handshake fails.
func Connect(ctx context.Context, conn transport.Conn, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	s := &Session{
		cfg:          cfg,
		conn:         conn,
		clock:        cfg.Clock,
		connectionID: cfg.NewConnectionID(),
		tickRate:     cfg.TickRate,
		snapshotRate: cfg.SnapshotRate,
		remotes:      make(map[string]*track),
		predictor:    predict.New(cfg.Prediction, cfg.Sim),
		queue:        events.NewQueue(cfg.Events),
		done:         make(chan struct{}),
	}
	s.logger = cfg.Logger.With("component", "client", "connection_id", s.connectionID)
	s.local = s.newTrack()

	hctx, span := cfg.Tracer.StartSpan(ctx, "handshake")
	hello, err := s.handshake(hctx)
	telemetry.EndSpan(span, err)
	cfg.Metrics.RecordHandshake(errors.Code(err))
	if err != nil {
		_ = conn.Close("handshake failed")
		s.logger.Warn("handshake failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.hello = hello
	s.clientID = hello.ClientID
	if hello.TickRate > 0 {
		s.setTickRateLocked(float64(hello.TickRate))
	}
	if hello.SnapshotRate > 0 {
		s.setSnapshotRateLocked(float64(hello.SnapshotRate))
	}
	s.observeServerTickLocked(hello.ServerTick, s.NowMs())
	s.mu.Unlock()

	s.logger.Info("session established",
		"client_id", hello.ClientID,
		"tick_rate", s.TickRate(),
		"snapshot_rate", s.SnapshotRate(),
		"server_tick", hello.ServerTick)
	return s, nil
}

func (s *Session) newTrack() *track {
	b := snapshot.NewBuffer()
	b.SetSnapshotRate(s.snapshotRate)
	return &track{decoder: snapshot.NewDeltaDecoder(), buffer: b}
}

// Run receives on both channels and sends pings until ctx is done, the
// connection is lost, or the server ends the session. It returns nil after
// Close.
func (s *Session) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.receiveLoop(gctx, true) })
	g.Go(func() error { return s.receiveLoop(gctx, false) })
	if s.cfg.PingInterval > 0 {
		g.Go(func() error { return s.pingLoop(gctx) })
	}
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.done:
			return ErrSessionClosed
		}
		return nil
	})

	err := g.Wait()
	if s.closed() {
		return nil
	}
	if err != nil && ctx.Err() == nil {
		s.logger.Warn("session ended", "error", err)
	}
	return err
}

func (s *Session) receiveLoop(ctx context.Context, reliable bool) error {
	ch := s.conn.Unreliable()
	if reliable {
		ch = s.conn.Reliable()
	}
	for {
		data, err := ch.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.New(errors.CodeConnectionLost).Wrap(err)
		}
		if err := s.handleFrame(reliable, data); err != nil {
			return err
		}
	}
}

func (s *Session) pingLoop(ctx context.Context) error {
	ticker := s.clock.Ticker(s.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.SendPing(); stderrors.Is(err, transport.ErrClosed) {
				return errors.New(errors.CodeConnectionLost).Wrap(err)
			}
		}
	}
}

// handleFrame decodes and dispatches one inbound frame. Malformed frames
// are counted and dropped. A non-nil error ends the session.
func (s *Session) handleFrame(reliable bool, data []byte) error {
	nowMs := s.NowMs()
	s.capture(reliable, data)

	channel := telemetry.ChannelUnreliable
	if reliable {
		channel = telemetry.ChannelReliable
	}
	s.cfg.Metrics.RecordFrame(channel)

	env, msg, err := protocol.DecodeMessage(data)

	s.mu.Lock()
	if reliable {
		s.counters.framesReliable++
	} else {
		s.counters.framesUnreliable++
	}
	if err != nil {
		s.counters.malformed++
	}
	s.mu.Unlock()

	if err != nil {
		s.cfg.Metrics.RecordMalformed(channel)
		s.logger.Debug("dropping malformed frame", "channel", channel, "error", err)
		return nil
	}
	s.observeSeq(env.MsgSeq)

	h := s.cfg.Handlers
	switch m := msg.(type) {
	case *protocol.StateSnapshot:
		s.IngestSnapshot(m, nowMs)
	case *protocol.StateSnapshotDelta:
		s.ingestDelta(m, nowMs)
	case *protocol.GameEventBatch:
		s.ingestEvents(m, nowMs)
	case *protocol.Pong:
		s.handlePong(m, nowMs)
	case *protocol.WeaponFiredEvent:
		if h.OnWeaponFired != nil {
			h.OnWeaponFired(m)
		}
	case *protocol.WeaponReloadEvent:
		if h.OnWeaponReload != nil {
			h.OnWeaponReload(m)
		}
	case *protocol.PlayerProfile:
		if h.OnPlayerProfile != nil {
			h.OnPlayerProfile(m)
		}
	case *protocol.JoinAccept:
		s.mu.Lock()
		if m.ClientID != "" {
			s.clientID = m.ClientID
		}
		s.observeServerTickLocked(m.ServerTick, nowMs)
		s.mu.Unlock()
		if h.OnJoinAccept != nil {
			h.OnJoinAccept(m)
		}
	case *protocol.ErrorMessage:
		if m.Fatal {
			return errors.New(errors.CodeConnectionLost).
				WithReason(m.Message).
				WithField("code", m.Code.String())
		}
		s.logger.Warn("server error", "code", m.Code, "message", m.Message)
		if h.OnServerError != nil {
			h.OnServerError(m)
		}
	case *protocol.Disconnect:
		reason := m.Reason
		if reason == "" {
			reason = m.Code.String()
		}
		s.logger.Info("server disconnected", "code", m.Code, "reason", reason)
		return errors.New(errors.CodeConnectionLost).
			WithReason(reason).
			WithField("code", m.Code.String())
	default:
		s.logger.Debug("ignoring unexpected message", "type", env.Type)
	}
	return nil
}

func (s *Session) capture(reliable bool, data []byte) {
	if s.cfg.Capture == nil {
		return
	}
	if err := s.cfg.Capture.WriteFrame(reliable, s.NowMs(), data); err != nil {
		s.logger.Debug("capture write failed", "error", err)
	}
}

// =============================================================================
// Snapshots
// =============================================================================

// IngestSnapshot feeds a full snapshot into the pipeline of the entity it
// describes. Snapshots of the local player also reconcile prediction. It
// reports whether the snapshot was accepted.
func (s *Session) IngestSnapshot(snap *protocol.StateSnapshot, nowMs float64) bool {
	if snap == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tr := s.trackLocked(snap.ClientID)
	if tr == nil {
		return false
	}
	tr.decoder.Apply(snap)
	return s.pushLocked(tr, snap, nowMs)
}

func (s *Session) ingestDelta(d *protocol.StateSnapshotDelta, nowMs float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr := s.trackLocked(d.ClientID)
	if tr == nil {
		return
	}
	full := tr.decoder.Apply(d)
	if full == nil {
		s.counters.deltasRejected++
		s.cfg.Metrics.RecordDeltaRejected()
		return
	}
	s.pushLocked(tr, full, nowMs)
}

func (s *Session) pushLocked(tr *track, snap *protocol.StateSnapshot, nowMs float64) bool {
	applied := tr.buffer.Push(snap, nowMs)
	s.cfg.Metrics.RecordSnapshot(applied)
	if !applied {
		s.counters.snapshotsStale++
		return false
	}
	s.counters.snapshotsApplied++
	s.observeServerTickLocked(snap.ServerTick, nowMs)

	if tr == s.local {
		wasActive := s.predictor.IsActive()
		correction := s.predictor.Reconcile(snap)
		if wasActive {
			s.cfg.Metrics.RecordCorrection(correction)
		}
	}
	return true
}

// trackLocked returns the pipeline for an entity, creating it on first
// sight. It returns nil when MaxRemoteEntities are already tracked.
func (s *Session) trackLocked(id string) *track {
	if id == "" || id == s.clientID {
		return s.local
	}
	if tr, ok := s.remotes[id]; ok {
		return tr
	}
	if len(s.remotes) >= s.cfg.MaxRemoteEntities {
		s.counters.untracked++
		return nil
	}
	tr := s.newTrack()
	s.remotes[id] = tr
	return tr
}

// PredictedOrInterpolatedState returns the local player's render state:
// the predicted state once an input has been recorded, otherwise the
// interpolated authoritative state. It reports false before any state is
// known.
func (s *Session) PredictedOrInterpolatedState(nowMs float64) (sim.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.predictor.IsActive() {
		return s.predictor.State(), true
	}
	snap := s.local.buffer.Sample(nowMs)
	if snap == nil {
		return sim.State{}, false
	}
	return sim.StateFromSnapshot(snap), true
}

// RemoteState returns the interpolated state of a remote entity.
func (s *Session) RemoteState(id string, nowMs float64) (*protocol.StateSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.remotes[id]
	if !ok {
		return nil, false
	}
	snap := tr.buffer.Sample(nowMs)
	return snap, snap != nil
}

// RemoteIDs returns the tracked remote entity ids in sorted order.
func (s *Session) RemoteIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.remotes))
	for id := range s.remotes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ForgetRemote stops tracking a remote entity, e.g. after it left.
func (s *Session) ForgetRemote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.remotes, id)
}

// RenderTick returns the fractional server tick being rendered at nowMs.
func (s *Session) RenderTick(nowMs float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local.buffer.RenderTick(nowMs)
}

// =============================================================================
// Events
// =============================================================================

func (s *Session) ingestEvents(batch *protocol.GameEventBatch, nowMs float64) {
	s.mu.Lock()
	renderTick, ok := s.local.buffer.RenderTick(nowMs)
	if !ok {
		renderTick = math.NaN()
	}
	before := s.queue.Stats()
	late := s.queue.Push(batch, nowMs, renderTick)
	after := s.queue.Stats()
	s.immediate = append(s.immediate, late...)
	s.mu.Unlock()

	s.cfg.Metrics.RecordEventStats(before, after)
}

// DrainEvents returns the game events due at nowMs: late batches accepted
// within the grace window first, then queued batches up to the render tick
// in tick order.
func (s *Session) DrainEvents(nowMs float64) []protocol.GameEvent {
	s.mu.Lock()
	out := s.immediate
	s.immediate = nil
	before := s.queue.Stats()
	if renderTick, ok := s.local.buffer.RenderTick(nowMs); ok {
		out = append(out, s.queue.Drain(renderTick)...)
	}
	after := s.queue.Stats()
	s.mu.Unlock()

	s.cfg.Metrics.RecordEventStats(before, after)
	return out
}

// =============================================================================
// Outbound
// =============================================================================

func (s *Session) nextSeq() uint32 {
	return s.seq.Add(1)
}

func (s *Session) ack() uint32 {
	return s.serverAck.Load()
}

// observeSeq raises the acknowledged server sequence, treating sequence
// numbers as wrapping.
func (s *Session) observeSeq(seq uint32) {
	for {
		cur := s.serverAck.Load()
		if cur != 0 && int32(seq-cur) <= 0 {
			return
		}
		if s.serverAck.CompareAndSwap(cur, seq) {
			return
		}
	}
}

func (s *Session) send(reliable bool, frame []byte) error {
	if s.closed() {
		return ErrSessionClosed
	}
	if reliable {
		return s.conn.Reliable().Send(frame)
	}
	return s.conn.Unreliable().Send(frame)
}

// SendInput sends one input command on the unreliable channel.
func (s *Session) SendInput(cmd *protocol.InputCmd) error {
	err := s.send(false, protocol.EncodeInputCmd(cmd, s.nextSeq(), s.ack()))
	s.cfg.Metrics.RecordInput(err)

	s.mu.Lock()
	if err != nil {
		s.counters.inputsFailed++
	} else {
		s.counters.inputsSent++
	}
	s.mu.Unlock()
	return err
}

// RecordInput hands a sent command to prediction.
func (s *Session) RecordInput(cmd *protocol.InputCmd) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictor.RecordInput(cmd)
}

// StartInput starts the fixed-rate input sender. Every command it sends is
// recorded for prediction. Calling StartInput again returns the running
// sender.
func (s *Session) StartInput(sampler input.Sampler) *input.Sender {
	s.mu.Lock()
	if s.sender == nil {
		s.sender = input.NewSender(input.Config{
			Rate:     s.cfg.InputRate,
			Clock:    s.clock,
			Sampler:  sampler,
			Send:     s.SendInput,
			Recorder: s,
			Tick:     s.EstimatedServerTick,
			Logger:   s.logger,
		})
	}
	sender := s.sender
	s.mu.Unlock()

	sender.Start()
	return sender
}

// SendPing sends an RTT probe on the unreliable channel.
func (s *Session) SendPing() error {
	p := &protocol.Ping{Nonce: s.pingNonce.Add(1), ClientTimeMs: s.NowMs()}
	return s.send(false, protocol.BuildPing(p, s.nextSeq(), s.ack()))
}

func (s *Session) handlePong(p *protocol.Pong, nowMs float64) {
	sample := nowMs - p.ClientTimeMs
	s.mu.Lock()
	s.rtt.Update(sample)
	smoothed := s.rtt.Smoothed()
	if sample >= 0 {
		s.observeServerTickLocked(p.ServerTick, nowMs-sample/2)
	}
	s.mu.Unlock()
	s.cfg.Metrics.SetRTT(smoothed)
}

// FireWeapon sends a FireWeaponRequest on the reliable channel.
func (s *Session) FireWeapon(req *protocol.FireWeaponRequest) error {
	return s.send(true, protocol.BuildFireWeaponRequest(req, s.nextSeq(), s.ack()))
}

// JoinRequest asks the server to spawn the player. The answer arrives as
// a JoinAccept on Handlers.OnJoinAccept.
func (s *Session) JoinRequest(req *protocol.JoinRequest) error {
	return s.send(true, protocol.Wrap(protocol.MsgJoinRequest, protocol.MarshalJoinRequest(req), s.nextSeq(), s.ack()))
}

// =============================================================================
// Timing
// =============================================================================

// NowMs returns the session clock in milliseconds.
func (s *Session) NowMs() float64 {
	return float64(s.clock.Now().UnixNano()) / 1e6
}

func (s *Session) observeServerTickLocked(tick uint32, atMs float64) {
	if s.serverTickAt != 0 && int32(tick-s.serverTick) < 0 {
		return
	}
	s.serverTick = tick
	s.serverTickAt = atMs
}

// EstimatedServerTick extrapolates the last observed server tick to now.
func (s *Session) EstimatedServerTick() uint32 {
	nowMs := s.NowMs()
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := nowMs - s.serverTickAt
	if elapsed <= 0 {
		return s.serverTick
	}
	return s.serverTick + uint32(elapsed*s.tickRate/1000)
}

// SetTickRate updates the simulation rate used by prediction and the event
// grace window.
func (s *Session) SetTickRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setTickRateLocked(rate)
}

func (s *Session) setTickRateLocked(rate float64) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return
	}
	s.tickRate = rate
	s.predictor.SetTickRate(rate)
	s.queue.SetTickRate(rate)
}

// SetSnapshotRate updates the interpolation delay of every buffer.
func (s *Session) SetSnapshotRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSnapshotRateLocked(rate)
}

func (s *Session) setSnapshotRateLocked(rate float64) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return
	}
	s.snapshotRate = rate
	s.local.buffer.SetSnapshotRate(rate)
	for _, tr := range s.remotes {
		tr.buffer.SetSnapshotRate(rate)
	}
}

// SetSim swaps the prediction engine, carrying the current state over.
func (s *Session) SetSim(engine sim.Sim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictor.SetSim(engine)
}

// TickRate returns the current simulation rate.
func (s *Session) TickRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickRate
}

// SnapshotRate returns the current snapshot rate.
func (s *Session) SnapshotRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotRate
}

// =============================================================================
// Accessors and shutdown
// =============================================================================

// ConnectionID returns the id sent in ClientHello.
func (s *Session) ConnectionID() string { return s.connectionID }

// ClientID returns the local player's entity key.
func (s *Session) ClientID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientID
}

// ServerHello returns the handshake reply.
func (s *Session) ServerHello() *protocol.ServerHello {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hello
}

// Done is closed by Close.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Close stops the input sender, tells the server the client is leaving and
// closes the connection. Per-entity state is torn down. Close is
// idempotent.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		sender := s.sender
		s.mu.Unlock()
		if sender != nil {
			sender.Stop()
		}

		bye := protocol.BuildDisconnect(&protocol.Disconnect{
			Code:   protocol.CloseGoingAway,
			Reason: "client closed",
		}, s.nextSeq(), s.ack())
		_ = s.conn.Reliable().Send(bye)

		close(s.done)
		_ = s.conn.Close("client closed")

		s.mu.Lock()
		clear(s.remotes)
		s.local.buffer.Clear()
		s.local.decoder.Reset()
		s.queue.Clear()
		s.immediate = nil
		s.predictor.Reset()
		s.mu.Unlock()

		s.logger.Info("session closed")
	})
	return nil
}
