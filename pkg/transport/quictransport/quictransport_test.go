package quictransport

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/transport"
)

func selfSigned(t *testing.T) tls.Certificate {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

func pair(t *testing.T) (client, server transport.Conn) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	srvCfg := DefaultConfig()
	srvCfg.TLS = &tls.Config{Certificates: []tls.Certificate{selfSigned(t)}}
	l, err := Listen("127.0.0.1:0", srvCfg)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	accepted := make(chan transport.Conn, 1)
	go func() {
		c, err := l.Accept(ctx)
		if err == nil {
			accepted <- c
		}
	}()

	client, err = NewDialer(DefaultConfig()).Dial(ctx, l.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close("test done") })

	// The server sees the stream after the first write.
	hello := protocol.BuildPing(&protocol.Ping{Nonce: 1}, 1, 0)
	require.NoError(t, client.Reliable().Send(hello))

	select {
	case server = <-accepted:
	case <-ctx.Done():
		t.Fatal("accept timed out")
	}
	t.Cleanup(func() { server.Close("test done") })

	msg, err := server.Reliable().Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, hello, msg)
	return client, server
}

func TestReliableStreamFraming(t *testing.T) {
	client, server := pair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var sent [][]byte
	for i := uint32(0); i < 20; i++ {
		msg := protocol.BuildPing(&protocol.Ping{Nonce: i, ClientTimeMs: float64(i)}, i, 0)
		sent = append(sent, msg)
		require.NoError(t, client.Reliable().Send(msg))
	}
	for _, want := range sent {
		got, err := server.Reliable().Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	reply := protocol.BuildPong(&protocol.Pong{Nonce: 3}, 1, 19)
	require.NoError(t, server.Reliable().Send(reply))
	got, err := client.Reliable().Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, reply, got)
}

func TestDatagrams(t *testing.T) {
	client, server := pair(t)
	msg := protocol.BuildPing(&protocol.Ping{Nonce: 9}, 2, 0)

	// Datagrams may be lost even on loopback; resend until one arrives.
	received := make(chan []byte, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if m, err := server.Unreliable().Receive(ctx); err == nil {
			received <- m
		}
	}()
	deadline := time.After(5 * time.Second)
	for {
		require.NoError(t, client.Unreliable().Send(msg))
		select {
		case got := <-received:
			assert.Equal(t, msg, got)
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("no datagram received")
		}
	}
}

func TestCloseEndsReceive(t *testing.T) {
	client, server := pair(t)
	require.NoError(t, client.Close("bye"))

	select {
	case <-server.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("server connection not closed")
	}
	_, err := server.Reliable().Receive(context.Background())
	assert.ErrorIs(t, err, transport.ErrClosed)
	assert.ErrorIs(t, client.Unreliable().Send([]byte("x")), transport.ErrClosed)
}

func TestRegistered(t *testing.T) {
	d, err := transport.NewDialer(Kind)
	require.NoError(t, err)
	assert.IsType(t, &Dialer{}, d)
}
