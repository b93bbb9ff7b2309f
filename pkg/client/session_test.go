package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/netsync/internal/errors"
	"github.com/vango-dev/netsync/pkg/input"
	"github.com/vango-dev/netsync/pkg/protocol"
)

type capturedFrame struct {
	reliable bool
	atMs     float64
	frame    []byte
}

type frameSink struct {
	mu     sync.Mutex
	frames []capturedFrame
}

func (s *frameSink) WriteFrame(reliable bool, atMs float64, frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, capturedFrame{reliable, atMs, append([]byte(nil), frame...)})
	return nil
}

func (s *frameSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func TestSnapshotInterpolation(t *testing.T) {
	sess, _ := connect(t, testConfig(newMock()))

	_, ok := sess.PredictedOrInterpolatedState(epochMs(0))
	assert.False(t, ok, "no state before the first snapshot")

	require.True(t, sess.IngestSnapshot(snap(10, 0), epochMs(0)))
	require.True(t, sess.IngestSnapshot(snap(12, 10), epochMs(100)))
	assert.False(t, sess.IngestSnapshot(snap(11, 99), epochMs(120)), "older tick is stale")

	// 20 Hz snapshots render 100ms behind.
	state, ok := sess.PredictedOrInterpolatedState(epochMs(150))
	require.True(t, ok)
	assert.InDelta(t, 5.0, state.Pos.X, 1e-9)

	rt, ok := sess.RenderTick(epochMs(150))
	require.True(t, ok)
	assert.InDelta(t, 11.0, rt, 1e-9)

	st := sess.Stats()
	assert.Equal(t, uint64(2), st.SnapshotsApplied)
	assert.Equal(t, uint64(1), st.SnapshotsStale)
	assert.Equal(t, 2, st.BufferedLocal)
}

func TestDeltaReconstruction(t *testing.T) {
	sess, srv := connect(t, testConfig(newMock()))
	errc := run(t, sess)

	srv.sendUnreliable(protocol.BuildStateSnapshot(snap(10, 1), srv.nextSeq(), 1))
	srv.sendUnreliable(protocol.BuildStateSnapshotDelta(&protocol.StateSnapshotDelta{
		ServerTick:            11,
		BaseTick:              10,
		Mask:                  protocol.DeltaPosX,
		LastProcessedInputSeq: protocol.NoInputSeq,
		Pos:                   protocol.Vec3{X: 3},
		ClientID:              testClientID,
	}, srv.nextSeq(), 1))
	srv.sendUnreliable(protocol.BuildStateSnapshotDelta(&protocol.StateSnapshotDelta{
		ServerTick:            13,
		BaseTick:              12,
		Mask:                  protocol.DeltaPosX,
		LastProcessedInputSeq: protocol.NoInputSeq,
		Pos:                   protocol.Vec3{X: 50},
		ClientID:              testClientID,
	}, srv.nextSeq(), 1))

	require.Eventually(t, func() bool {
		st := sess.Stats()
		return st.SnapshotsApplied == 2 && st.DeltasRejected == 1
	}, time.Second, 5*time.Millisecond)

	state, ok := sess.PredictedOrInterpolatedState(epochMs(10_000))
	require.True(t, ok)
	assert.Equal(t, 3.0, state.Pos.X)
	assert.Equal(t, uint32(4), sess.Stats().ServerSeqAck)

	require.NoError(t, sess.Close())
	assert.NoError(t, waitErr(t, errc))
}

func TestRemoteEntities(t *testing.T) {
	cfg := testConfig(newMock())
	cfg.MaxRemoteEntities = 1
	sess, _ := connect(t, cfg)

	remote := func(id string, tick uint32, x float64) *protocol.StateSnapshot {
		s := snap(tick, x)
		s.ClientID = id
		return s
	}
	require.True(t, sess.IngestSnapshot(remote("p2", 10, 4), epochMs(0)))
	assert.False(t, sess.IngestSnapshot(remote("p3", 10, 8), epochMs(0)), "over the entity limit")

	assert.Equal(t, []string{"p2"}, sess.RemoteIDs())
	got, ok := sess.RemoteState("p2", epochMs(200))
	require.True(t, ok)
	assert.Equal(t, 4.0, got.Pos.X)

	_, ok = sess.PredictedOrInterpolatedState(epochMs(200))
	assert.False(t, ok, "remote snapshots must not feed the local player")
	assert.Equal(t, uint64(1), sess.Stats().Untracked)

	sess.ForgetRemote("p2")
	assert.Empty(t, sess.RemoteIDs())
	_, ok = sess.RemoteState("p2", epochMs(200))
	assert.False(t, ok)
}

func TestEventsDrainInTickOrder(t *testing.T) {
	sess, _ := connect(t, testConfig(newMock()))
	require.True(t, sess.IngestSnapshot(snap(10, 0), epochMs(0)))
	require.True(t, sess.IngestSnapshot(snap(20, 0), epochMs(100)))

	batch := func(tick uint32, projectile uint32) []byte {
		return protocol.BuildGameEventBatch(&protocol.GameEventBatch{
			ServerTick: tick,
			Events:     []protocol.GameEvent{{Kind: protocol.EventProjectileSpawn, ProjectileID: projectile}},
		}, 1, 1)
	}
	require.NoError(t, sess.handleFrame(true, batch(15, 2)))
	require.NoError(t, sess.handleFrame(true, batch(12, 1)))
	require.NoError(t, sess.handleFrame(true, batch(18, 3)))

	// Render tick 15 at +150ms.
	evs := sess.DrainEvents(epochMs(150))
	require.Len(t, evs, 2)
	assert.Equal(t, uint32(1), evs[0].ProjectileID)
	assert.Equal(t, uint32(2), evs[1].ProjectileID)

	// Tick 14 is behind the drained tick but inside the grace window.
	require.NoError(t, sess.handleFrame(true, batch(14, 4)))
	// Tick 2 is far behind and dropped.
	require.NoError(t, sess.handleFrame(true, batch(2, 5)))

	evs = sess.DrainEvents(epochMs(200))
	require.Len(t, evs, 2)
	assert.Equal(t, uint32(4), evs[0].ProjectileID, "late events come first")
	assert.Equal(t, uint32(3), evs[1].ProjectileID)

	st := sess.Stats().Events
	assert.Equal(t, uint64(1), st.LateBatches)
	assert.Equal(t, uint64(1), st.DroppedBatches)
	assert.Equal(t, uint64(3), st.DrainedBatches)
}

func TestDrainEventsBeforeSnapshots(t *testing.T) {
	sess, _ := connect(t, testConfig(newMock()))
	require.NoError(t, sess.handleFrame(true, protocol.BuildGameEventBatch(&protocol.GameEventBatch{
		ServerTick: 5,
		Events:     []protocol.GameEvent{{Kind: protocol.EventKill, ShooterID: "p2", TargetID: "p1"}},
	}, 1, 1)))
	assert.Empty(t, sess.DrainEvents(epochMs(0)), "nothing is due without a render tick")
	assert.Equal(t, uint64(1), sess.Stats().Events.EnqueuedBatches)
}

func TestPongUpdatesRTT(t *testing.T) {
	mock := newMock()
	sess, _ := connect(t, testConfig(mock))

	require.NoError(t, sess.handleFrame(false, protocol.BuildPong(&protocol.Pong{
		Nonce:        1,
		ClientTimeMs: epochMs(-40),
		ServerTimeMs: 5,
		ServerTick:   500,
	}, 7, 1)))

	st := sess.Stats()
	assert.Equal(t, 40.0, st.RTTMs)
	assert.Equal(t, uint64(1), st.RTTSamples)
	assert.Equal(t, uint32(7), st.ServerSeqAck)

	// Tick 500 was current 20ms ago at 60 Hz.
	assert.Equal(t, uint32(501), sess.EstimatedServerTick())
	mock.Add(time.Second)
	assert.Equal(t, uint32(561), sess.EstimatedServerTick())
}

func TestPingLoop(t *testing.T) {
	mock := newMock()
	cfg := testConfig(mock)
	cfg.PingInterval = time.Second
	sess, srv := connect(t, cfg)
	run(t, sess)

	// Keep advancing until the loop has created its ticker and fired.
	require.Eventually(t, func() bool {
		mock.Add(time.Second)
		return sess.Stats().MsgSeq >= 2
	}, time.Second, 5*time.Millisecond)

	env, msg := srv.recv(false)
	ping, ok := msg.(*protocol.Ping)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, uint32(1), ping.Nonce)
	assert.Equal(t, uint32(1), env.ServerSeqAck)

	srv.sendUnreliable(protocol.BuildPong(&protocol.Pong{
		Nonce:        ping.Nonce,
		ClientTimeMs: ping.ClientTimeMs,
		ServerTick:   200,
	}, srv.nextSeq(), env.MsgSeq))
	require.Eventually(t, func() bool { return sess.Stats().RTTSamples == 1 }, time.Second, 5*time.Millisecond)
}

func TestSequenceAcknowledgement(t *testing.T) {
	sess, srv := connect(t, testConfig(newMock()))

	pong := protocol.MarshalPong(&protocol.Pong{Nonce: 1})
	require.NoError(t, sess.handleFrame(false, protocol.Wrap(protocol.MsgPong, pong, 9, 1)))
	require.NoError(t, sess.handleFrame(false, protocol.Wrap(protocol.MsgPong, pong, 4, 1)))
	assert.Equal(t, uint32(9), sess.Stats().ServerSeqAck, "older sequence must not lower the ack")

	// Wrap-around: 2 is newer than 0xFFFFFFF0.
	sess.serverAck.Store(0xFFFFFFF0)
	sess.observeSeq(2)
	assert.Equal(t, uint32(2), sess.Stats().ServerSeqAck)

	require.NoError(t, sess.SendPing())
	env, _ := srv.recv(false)
	assert.Equal(t, uint32(2), env.MsgSeq)
	assert.Equal(t, uint32(2), env.ServerSeqAck)
}

func TestInputSendAndPredict(t *testing.T) {
	mock := newMock()
	sess, srv := connect(t, testConfig(mock))
	require.True(t, sess.IngestSnapshot(snap(100, 0), epochMs(0)))

	sender := sess.StartInput(input.SamplerFunc(func() input.Sample {
		return input.Sample{MoveY: 1}
	}))
	assert.Same(t, sender, sess.StartInput(nil), "second call returns the running sender")
	mock.Add(sender.Period())

	_, msg := srv.recv(false)
	cmd, ok := msg.(*protocol.InputCmd)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, uint32(1), cmd.InputSeq)
	assert.Equal(t, float32(1), cmd.MoveY)
	// One 60 Hz period after tick 100 rounds down to just under 101.
	assert.Equal(t, uint32(100), cmd.ClientTick)

	require.Eventually(t, func() bool {
		return sess.Stats().Prediction.Recorded == 1
	}, time.Second, 5*time.Millisecond)

	state, ok := sess.PredictedOrInterpolatedState(epochMs(0))
	require.True(t, ok)
	assert.Greater(t, state.Pos.Z, 0.0, "prediction moves forward before the server answers")

	// The server acknowledges the input and places the player elsewhere.
	ack := snap(101, 7)
	ack.LastProcessedInputSeq = 1
	require.True(t, sess.IngestSnapshot(ack, epochMs(50)))
	state, _ = sess.PredictedOrInterpolatedState(epochMs(50))
	assert.Equal(t, 7.0, state.Pos.X)
	assert.Zero(t, sess.Stats().Prediction.Pending)

	st := sess.Stats()
	assert.Equal(t, uint64(1), st.InputsSent)
	assert.Zero(t, st.InputsError)
}

func TestHandlers(t *testing.T) {
	var (
		fired   *protocol.WeaponFiredEvent
		reload  *protocol.WeaponReloadEvent
		profile *protocol.PlayerProfile
		joined  *protocol.JoinAccept
		warning *protocol.ErrorMessage
	)
	cfg := testConfig(newMock())
	cfg.Handlers = Handlers{
		OnWeaponFired:   func(e *protocol.WeaponFiredEvent) { fired = e },
		OnWeaponReload:  func(e *protocol.WeaponReloadEvent) { reload = e },
		OnPlayerProfile: func(p *protocol.PlayerProfile) { profile = p },
		OnJoinAccept:    func(j *protocol.JoinAccept) { joined = j },
		OnServerError:   func(e *protocol.ErrorMessage) { warning = e },
	}
	sess, _ := connect(t, cfg)

	require.NoError(t, sess.handleFrame(true, protocol.BuildWeaponFiredEvent(&protocol.WeaponFiredEvent{
		ShooterID: "p2", ServerTick: 120, Dir: protocol.Vec3{Z: 1}, Hit: true, TargetID: "p1",
	}, 2, 1)))
	require.NoError(t, sess.handleFrame(true, protocol.BuildWeaponReloadEvent(&protocol.WeaponReloadEvent{
		ClientID: "p1", ServerTick: 121, Ammo: 30, ReloadMs: 1500,
	}, 3, 1)))
	require.NoError(t, sess.handleFrame(true, protocol.Wrap(protocol.MsgPlayerProfile,
		protocol.MarshalPlayerProfile(&protocol.PlayerProfile{ClientID: "p2", Name: "bob"}), 4, 1)))
	require.NoError(t, sess.handleFrame(true, protocol.Wrap(protocol.MsgJoinAccept,
		protocol.MarshalJoinAccept(&protocol.JoinAccept{ClientID: "p9", Team: 2, ServerTick: 130}), 5, 1)))
	require.NoError(t, sess.handleFrame(true, protocol.BuildErrorMessage(
		protocol.NewError(protocol.ErrCodeRateLimited, "slow down"), 6, 1)))

	require.NotNil(t, fired)
	assert.Equal(t, "p2", fired.ShooterID)
	require.NotNil(t, reload)
	assert.Equal(t, int32(30), reload.Ammo)
	require.NotNil(t, profile)
	assert.Equal(t, "bob", profile.Name)
	require.NotNil(t, joined)
	assert.Equal(t, "p9", sess.ClientID(), "JoinAccept reassigns the local entity key")
	require.NotNil(t, warning)
	assert.Equal(t, "slow down", warning.Message)
}

func TestMalformedFramesCounted(t *testing.T) {
	sink := &frameSink{}
	cfg := testConfig(newMock())
	cfg.Capture = sink
	sess, _ := connect(t, cfg)

	require.NoError(t, sess.handleFrame(false, []byte("junk")))
	require.NoError(t, sess.handleFrame(true, protocol.Wrap(protocol.MsgStateSnapshot, []byte{1, 2, 3}, 2, 1)))

	st := sess.Stats()
	assert.Equal(t, uint64(2), st.Malformed)
	assert.Equal(t, uint64(1), st.FramesUnreliable)
	assert.Equal(t, uint64(1), st.FramesReliable)
	assert.Equal(t, 3, sink.len(), "handshake frame plus both malformed frames")
}

func TestServerDisconnectEndsRun(t *testing.T) {
	sess, srv := connect(t, testConfig(newMock()))
	errc := run(t, sess)

	srv.sendReliable(protocol.BuildDisconnect(&protocol.Disconnect{
		Code:   protocol.CloseKicked,
		Reason: "afk",
	}, srv.nextSeq(), 1))

	err := waitErr(t, errc)
	ne := errors.FromError(err, "")
	require.NotNil(t, ne)
	assert.Equal(t, errors.CodeConnectionLost, ne.Code)
	assert.Equal(t, "afk", ne.Reason)
}

func TestFatalErrorEndsRun(t *testing.T) {
	sess, srv := connect(t, testConfig(newMock()))
	errc := run(t, sess)

	srv.sendReliable(protocol.BuildErrorMessage(
		protocol.NewFatalError(protocol.ErrCodeMaintenanceBreak, "back soon"), srv.nextSeq(), 1))

	err := waitErr(t, errc)
	assert.Equal(t, errors.CodeConnectionLost, errors.Code(err))
	assert.Contains(t, err.Error(), "back soon")
}

func TestPeerCloseEndsRun(t *testing.T) {
	sess, srv := connect(t, testConfig(newMock()))
	errc := run(t, sess)

	require.NoError(t, srv.conn.Close("shutdown"))
	err := waitErr(t, errc)
	assert.Equal(t, errors.CodeConnectionLost, errors.Code(err))
}

func TestClose(t *testing.T) {
	sess, srv := connect(t, testConfig(newMock()))
	errc := run(t, sess)
	require.True(t, sess.IngestSnapshot(snap(10, 0), epochMs(0)))

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close(), "Close is idempotent")
	assert.NoError(t, waitErr(t, errc))

	_, msg := srv.recv(true)
	bye, ok := msg.(*protocol.Disconnect)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, protocol.CloseGoingAway, bye.Code)
	assert.Equal(t, "client closed", srv.conn.CloseReason())

	select {
	case <-sess.Done():
	default:
		t.Fatal("Done not closed")
	}
	assert.ErrorIs(t, sess.SendInput(&protocol.InputCmd{InputSeq: 1}), ErrSessionClosed)
	assert.ErrorIs(t, sess.FireWeapon(&protocol.FireWeaponRequest{}), ErrSessionClosed)
	_, ok = sess.PredictedOrInterpolatedState(epochMs(0))
	assert.False(t, ok, "state is torn down")
}

func TestReliableRequests(t *testing.T) {
	sess, srv := connect(t, testConfig(newMock()))

	require.NoError(t, sess.JoinRequest(&protocol.JoinRequest{PlayerName: "alice", Team: 1}))
	require.NoError(t, sess.FireWeapon(&protocol.FireWeaponRequest{
		InputSeq: 3, WeaponSlot: 1, Dir: protocol.Vec3{Z: 1},
	}))

	_, msg := srv.recv(true)
	join, ok := msg.(*protocol.JoinRequest)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "alice", join.PlayerName)

	_, msg = srv.recv(true)
	fire, ok := msg.(*protocol.FireWeaponRequest)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, uint32(3), fire.InputSeq)
}

func TestRateChanges(t *testing.T) {
	sess, _ := connect(t, testConfig(newMock()))

	sess.SetSnapshotRate(10)
	sess.SetTickRate(30)
	sess.SetSnapshotRate(-1)
	sess.SetTickRate(0)
	assert.Equal(t, 10.0, sess.SnapshotRate())
	assert.Equal(t, 30.0, sess.TickRate())

	require.True(t, sess.IngestSnapshot(snap(10, 0), epochMs(0)))
	require.True(t, sess.IngestSnapshot(snap(12, 10), epochMs(100)))
	// 10 Hz renders 200ms behind.
	state, _ := sess.PredictedOrInterpolatedState(epochMs(250))
	assert.InDelta(t, 5.0, state.Pos.X, 1e-9)
}
