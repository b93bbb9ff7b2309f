package client

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/transport/memtransport"
)

const (
	testConnID   = "conn-1"
	testClientID = "p1"
)

// testEpoch keeps mock timestamps away from zero.
var testEpoch = time.Unix(1000, 0)

// fakeServer drives the server end of a memtransport pair.
type fakeServer struct {
	t    *testing.T
	conn *memtransport.Conn
	seq  uint32
}

func (f *fakeServer) nextSeq() uint32 {
	f.seq++
	return f.seq
}

func (f *fakeServer) sendReliable(frame []byte) {
	f.t.Helper()
	require.NoError(f.t, f.conn.Reliable().Send(frame))
}

func (f *fakeServer) sendUnreliable(frame []byte) {
	f.t.Helper()
	require.NoError(f.t, f.conn.Unreliable().Send(frame))
}

func (f *fakeServer) recv(reliable bool) (*protocol.Envelope, any) {
	f.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ch := f.conn.Unreliable()
	if reliable {
		ch = f.conn.Reliable()
	}
	data, err := ch.Receive(ctx)
	require.NoError(f.t, err)
	env, msg, err := protocol.DecodeMessage(data)
	require.NoError(f.t, err)
	return env, msg
}

func (f *fakeServer) expectHello() *protocol.ClientHello {
	f.t.Helper()
	_, msg := f.recv(true)
	hello, ok := msg.(*protocol.ClientHello)
	require.True(f.t, ok, "expected ClientHello, got %T", msg)
	return hello
}

func (f *fakeServer) acceptHello(ch *protocol.ClientHello) {
	f.sendReliable(protocol.BuildServerHello(&protocol.ServerHello{
		ProtocolVersion: ch.ProtocolVersion,
		ConnectionID:    ch.ConnectionID,
		ClientID:        testClientID,
		TickRate:        60,
		SnapshotRate:    20,
		ServerTick:      100,
	}, f.nextSeq(), 1))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(mock *clock.Mock) Config {
	cfg := DefaultConfig()
	cfg.Clock = mock
	cfg.Logger = discardLogger()
	cfg.PingInterval = 0
	cfg.NewConnectionID = func() string { return testConnID }
	return cfg
}

func newMock() *clock.Mock {
	mock := clock.NewMock()
	mock.Set(testEpoch)
	return mock
}

// connect performs the handshake against a fake server that accepts it.
func connect(t *testing.T, cfg Config) (*Session, *fakeServer) {
	t.Helper()
	client, server := memtransport.Pair(memtransport.Config{})
	srv := &fakeServer{t: t, conn: server}

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.acceptHello(srv.expectHello())
	}()

	sess, err := Connect(context.Background(), client, cfg)
	require.NoError(t, err)
	<-done
	t.Cleanup(func() { _ = sess.Close() })
	return sess, srv
}

// run starts the session loops and returns their result channel.
func run(t *testing.T, sess *Session) <-chan error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	errc := make(chan error, 1)
	go func() { errc <- sess.Run(ctx) }()
	return errc
}

func waitErr(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func snap(tick uint32, x float64) *protocol.StateSnapshot {
	return &protocol.StateSnapshot{
		ServerTick:            tick,
		LastProcessedInputSeq: protocol.NoInputSeq,
		Pos:                   protocol.Vec3{X: x},
		Health:                100,
		ClientID:              testClientID,
	}
}

func epochMs(offset float64) float64 {
	return float64(testEpoch.UnixNano())/1e6 + offset
}
