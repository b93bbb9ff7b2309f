package client

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/netsync/internal/errors"
	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/transport"
	"github.com/vango-dev/netsync/pkg/transport/memtransport"
)

func TestHandshakeSuccess(t *testing.T) {
	mock := newMock()
	cfg := testConfig(mock)
	cfg.PlayerName = "alice"
	cfg.ClientBuild = "1.2.3"

	client, server := memtransport.Pair(memtransport.Config{})
	srv := &fakeServer{t: t, conn: server}
	got := make(chan *protocol.ClientHello, 1)
	go func() {
		ch := srv.expectHello()
		got <- ch
		srv.sendReliable(protocol.BuildServerHello(&protocol.ServerHello{
			ProtocolVersion: protocol.Version,
			ConnectionID:    ch.ConnectionID,
			ClientID:        "p7",
			TickRate:        30,
			SnapshotRate:    10,
			ServerTick:      4000,
			Motd:            "welcome",
		}, 1, 1))
	}()

	sess, err := Connect(context.Background(), client, cfg)
	require.NoError(t, err)
	defer sess.Close()

	hello := <-got
	assert.Equal(t, protocol.Version, hello.ProtocolVersion)
	assert.Equal(t, testConnID, hello.ConnectionID)
	assert.Equal(t, "alice", hello.PlayerName)
	assert.Equal(t, "1.2.3", hello.ClientBuild)

	assert.Equal(t, "p7", sess.ClientID())
	assert.Equal(t, testConnID, sess.ConnectionID())
	assert.Equal(t, "welcome", sess.ServerHello().Motd)
	assert.Equal(t, 30.0, sess.TickRate())
	assert.Equal(t, 10.0, sess.SnapshotRate())
	assert.Equal(t, uint32(4000), sess.EstimatedServerTick())

	mock.Add(time.Second)
	assert.Equal(t, uint32(4030), sess.EstimatedServerTick())

	st := sess.Stats()
	assert.Equal(t, uint32(1), st.MsgSeq)
	assert.Equal(t, uint32(1), st.ServerSeqAck)
}

// handshakeWith runs a handshake against a server that answers the
// ClientHello with reply.
func handshakeWith(t *testing.T, reply func(ch *protocol.ClientHello) []byte) (*HandshakeError, *memtransport.Conn) {
	t.Helper()
	client, server := memtransport.Pair(memtransport.Config{})
	srv := &fakeServer{t: t, conn: server}
	go func() {
		ch := srv.expectHello()
		if frame := reply(ch); frame != nil {
			_ = server.Reliable().Send(frame)
		}
	}()

	sess, err := Connect(context.Background(), client, testConfig(newMock()))
	require.Error(t, err)
	assert.Nil(t, sess)

	var he *HandshakeError
	require.True(t, stderrors.As(err, &he), "error %v is not a HandshakeError", err)
	return he, server
}

func TestHandshakeRejections(t *testing.T) {
	tests := []struct {
		name       string
		reply      func(ch *protocol.ClientHello) []byte
		wantCode   string
		wantReason string
	}{
		{
			name: "version mismatch",
			reply: func(ch *protocol.ClientHello) []byte {
				return protocol.BuildServerHello(&protocol.ServerHello{
					ProtocolVersion: ch.ProtocolVersion + 1,
					ConnectionID:    ch.ConnectionID,
					ClientID:        testClientID,
				}, 1, 1)
			},
			wantCode:   errors.CodeVersionMismatch,
			wantReason: "server speaks v2, client speaks v1",
		},
		{
			name: "connection id mismatch",
			reply: func(ch *protocol.ClientHello) []byte {
				return protocol.BuildServerHello(&protocol.ServerHello{
					ProtocolVersion: ch.ProtocolVersion,
					ConnectionID:    "someone-else",
					ClientID:        testClientID,
				}, 1, 1)
			},
			wantCode:   errors.CodeConnectionIDMismatch,
			wantReason: "expected conn-1, got someone-else",
		},
		{
			name: "server full",
			reply: func(*protocol.ClientHello) []byte {
				return protocol.BuildErrorMessage(protocol.NewFatalError(protocol.ErrCodeServerFull, "server is full"), 1, 1)
			},
			wantCode:   errors.CodeServerRejected,
			wantReason: "server is full",
		},
		{
			name: "version error message",
			reply: func(*protocol.ClientHello) []byte {
				return protocol.BuildErrorMessage(protocol.NewFatalError(protocol.ErrCodeVersionMismatch, "upgrade required"), 1, 1)
			},
			wantCode:   errors.CodeVersionMismatch,
			wantReason: "upgrade required",
		},
		{
			name: "disconnect",
			reply: func(*protocol.ClientHello) []byte {
				return protocol.BuildDisconnect(&protocol.Disconnect{Code: protocol.CloseKicked, Reason: "banned"}, 1, 1)
			},
			wantCode:   errors.CodeServerRejected,
			wantReason: "banned",
		},
		{
			name: "unexpected message",
			reply: func(*protocol.ClientHello) []byte {
				return protocol.BuildPong(&protocol.Pong{Nonce: 1}, 1, 1)
			},
			wantCode:   errors.CodeUnexpectedMessage,
			wantReason: "got Pong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he, server := handshakeWith(t, tt.reply)
			assert.Equal(t, tt.wantCode, he.Code)
			assert.Equal(t, tt.wantReason, he.Reason)
			assert.Equal(t, tt.wantCode, errors.Code(he))

			select {
			case <-server.Done():
			case <-time.After(time.Second):
				t.Fatal("connection not closed after failed handshake")
			}
		})
	}
}

func TestHandshakeSkipsMalformedFrames(t *testing.T) {
	client, server := memtransport.Pair(memtransport.Config{})
	srv := &fakeServer{t: t, conn: server}
	go func() {
		ch := srv.expectHello()
		srv.sendReliable([]byte("not a frame"))
		srv.acceptHello(ch)
	}()

	sess, err := Connect(context.Background(), client, testConfig(newMock()))
	require.NoError(t, err)
	defer sess.Close()
	assert.Equal(t, testClientID, sess.ClientID())
}

func TestHandshakeTimeout(t *testing.T) {
	mock := newMock()
	cfg := testConfig(mock)
	cfg.HandshakeTimeout = 3 * time.Second

	client, server := memtransport.Pair(memtransport.Config{})
	srv := &fakeServer{t: t, conn: server}
	received := make(chan struct{})
	go func() {
		srv.expectHello()
		close(received)
	}()

	errc := make(chan error, 1)
	go func() {
		_, err := Connect(context.Background(), client, cfg)
		errc <- err
	}()

	<-received
	mock.Add(3 * time.Second)

	err := waitErr(t, errc)
	var he *HandshakeError
	require.True(t, stderrors.As(err, &he))
	assert.Equal(t, errors.CodeHandshakeTimeout, he.Code)
	assert.Equal(t, "no ServerHello after 3s", he.Reason)
}

func TestHandshakePeerCloses(t *testing.T) {
	client, server := memtransport.Pair(memtransport.Config{})
	srv := &fakeServer{t: t, conn: server}
	go func() {
		srv.expectHello()
		_ = server.Close("maintenance")
	}()

	_, err := Connect(context.Background(), client, testConfig(newMock()))
	var he *HandshakeError
	require.True(t, stderrors.As(err, &he))
	assert.Equal(t, errors.CodeHandshakeClosed, he.Code)
	assert.ErrorIs(t, err, transport.ErrClosed)
}

func TestHandshakeParentCancel(t *testing.T) {
	client, server := memtransport.Pair(memtransport.Config{})
	srv := &fakeServer{t: t, conn: server}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		srv.expectHello()
		cancel()
	}()

	_, err := Connect(ctx, client, testConfig(newMock()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandshakeCapturesFrames(t *testing.T) {
	sink := &frameSink{}
	cfg := testConfig(newMock())
	cfg.Capture = sink

	connect(t, cfg)
	require.Equal(t, 1, sink.len())
	assert.True(t, sink.frames[0].reliable)
	assert.Equal(t, epochMs(0), sink.frames[0].atMs)
}

func TestDialFailure(t *testing.T) {
	dialer := transport.DialerFunc(func(ctx context.Context, addr string) (transport.Conn, error) {
		return nil, stderrors.New("connection refused")
	})
	_, err := Dial(context.Background(), dialer, "nowhere:1", testConfig(newMock()))

	ne := errors.FromError(err, "")
	require.NotNil(t, ne)
	assert.Equal(t, errors.CodeDialFailed, ne.Code)
	assert.Equal(t, "nowhere:1", ne.Fields["addr"])
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDialOverNetwork(t *testing.T) {
	network := memtransport.NewNetwork(memtransport.Config{})
	ln, err := network.Listen("arena")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept(context.Background())
		if err != nil {
			return
		}
		srv := &fakeServer{t: t, conn: conn.(*memtransport.Conn)}
		srv.acceptHello(srv.expectHello())
	}()

	sess, err := Dial(context.Background(), network, "arena", testConfig(newMock()))
	require.NoError(t, err)
	defer sess.Close()
	assert.Equal(t, testClientID, sess.ClientID())
	assert.Equal(t, "mem-server", sess.Stats().RemoteAddr)
}
