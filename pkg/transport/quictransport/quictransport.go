// Package quictransport runs the session over QUIC. The reliable channel is
// one bidirectional stream opened by the client; the unreliable channel uses
// QUIC DATAGRAM frames.
//
// Messages on the reliable channel must be complete protocol envelopes: the
// stream has no other framing and message boundaries are recovered from the
// envelope header.
package quictransport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/transport"
)

// Kind is the registered transport name.
const Kind = "quic"

// ALPN is the application protocol negotiated during the TLS handshake.
const ALPN = "netsync/1"

func init() {
	transport.Register(Kind, func() transport.Dialer { return NewDialer(DefaultConfig()) })
}

// Config configures QUIC connections.
type Config struct {
	// TLS is the client or server TLS configuration. NextProtos defaults to
	// ALPN.
	TLS *tls.Config

	// KeepAlivePeriod keeps NAT bindings open.
	// Default: 5s.
	KeepAlivePeriod time.Duration

	// MaxIdleTimeout closes a silent connection.
	// Default: 30s.
	MaxIdleTimeout time.Duration

	Logger *slog.Logger
}

// DefaultConfig returns a client configuration that does not verify the
// server certificate. Production dialers set TLS explicitly.
func DefaultConfig() Config {
	return Config{
		TLS:             &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // dev default
		KeepAlivePeriod: 5 * time.Second,
		MaxIdleTimeout:  30 * time.Second,
	}
}

func (c Config) quicConfig() *quic.Config {
	return &quic.Config{
		EnableDatagrams: true,
		KeepAlivePeriod: c.KeepAlivePeriod,
		MaxIdleTimeout:  c.MaxIdleTimeout,
	}
}

func (c Config) tlsConfig() *tls.Config {
	var t *tls.Config
	if c.TLS != nil {
		t = c.TLS.Clone()
	} else {
		t = &tls.Config{}
	}
	if len(t.NextProtos) == 0 {
		t.NextProtos = []string{ALPN}
	}
	return t
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Dialer opens QUIC connections.
type Dialer struct {
	cfg Config
}

// NewDialer creates a dialer.
func NewDialer(cfg Config) *Dialer {
	return &Dialer{cfg: cfg}
}

// Dial connects to addr and opens the reliable stream.
func (d *Dialer) Dial(ctx context.Context, addr string) (transport.Conn, error) {
	qc, err := quic.DialAddr(ctx, addr, d.cfg.tlsConfig(), d.cfg.quicConfig())
	if err != nil {
		return nil, fmt.Errorf("quic dial %s: %w", addr, err)
	}
	stream, err := qc.OpenStreamSync(ctx)
	if err != nil {
		_ = qc.CloseWithError(0, "stream open failed")
		return nil, fmt.Errorf("quic open stream: %w", err)
	}
	return newConn(qc, stream, d.cfg.logger()), nil
}

// Listener accepts QUIC connections.
type Listener struct {
	l   *quic.Listener
	cfg Config
}

var _ transport.Listener = (*Listener)(nil)

// Listen starts listening on addr. cfg.TLS must carry a certificate.
func Listen(addr string, cfg Config) (*Listener, error) {
	l, err := quic.ListenAddr(addr, cfg.tlsConfig(), cfg.quicConfig())
	if err != nil {
		return nil, err
	}
	return &Listener{l: l, cfg: cfg}, nil
}

// Accept waits for a connection and its reliable stream. The stream
// becomes visible once the client writes its first message.
func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	qc, err := l.l.Accept(ctx)
	if err != nil {
		if errors.Is(err, quic.ErrServerClosed) {
			return nil, transport.ErrClosed
		}
		return nil, err
	}
	stream, err := qc.AcceptStream(ctx)
	if err != nil {
		_ = qc.CloseWithError(0, "no stream")
		return nil, err
	}
	return newConn(qc, stream, l.cfg.logger()), nil
}

// Close stops accepting.
func (l *Listener) Close() error { return l.l.Close() }

// Addr returns the bound address.
func (l *Listener) Addr() string { return l.l.Addr().String() }

// Conn is a QUIC connection with its reliable stream.
type Conn struct {
	qc     *quic.Conn
	stream *quic.Stream
	logger *slog.Logger

	reliable   *streamChannel
	unreliable *datagramChannel

	closeOnce sync.Once
}

var _ transport.Conn = (*Conn)(nil)

func newConn(qc *quic.Conn, stream *quic.Stream, logger *slog.Logger) *Conn {
	c := &Conn{
		qc:     qc,
		stream: stream,
		logger: logger.With("transport", Kind, "remote", qc.RemoteAddr().String()),
	}
	c.reliable = &streamChannel{conn: c, in: transport.NewInbox(transport.RecvQueueSize, false)}
	c.unreliable = &datagramChannel{conn: c, in: transport.NewInbox(transport.RecvQueueSize, true)}
	go c.streamPump()
	go c.datagramPump()
	return c
}

func (c *Conn) streamPump() {
	defer c.reliable.in.Close()
	for {
		msg, err := protocol.ReadMessage(c.stream)
		if err != nil {
			if !errors.Is(err, io.EOF) && c.qc.Context().Err() == nil {
				c.logger.Warn("reliable stream read failed", "error", err)
				_ = c.Close("protocol error")
			}
			return
		}
		if !c.reliable.in.Put(msg) {
			return
		}
	}
}

func (c *Conn) datagramPump() {
	defer c.unreliable.in.Close()
	ctx := c.qc.Context()
	for {
		msg, err := c.qc.ReceiveDatagram(ctx)
		if err != nil {
			return
		}
		c.unreliable.in.Put(msg)
	}
}

// Reliable returns the stream channel.
func (c *Conn) Reliable() transport.Channel { return c.reliable }

// Unreliable returns the datagram channel.
func (c *Conn) Unreliable() transport.Channel { return c.unreliable }

// Done is closed when the QUIC connection ends.
func (c *Conn) Done() <-chan struct{} { return c.qc.Context().Done() }

// RemoteAddr returns the peer's UDP address.
func (c *Conn) RemoteAddr() string { return c.qc.RemoteAddr().String() }

// Close closes the connection with an application error carrying reason.
func (c *Conn) Close(reason string) error {
	var err error
	c.closeOnce.Do(func() {
		err = c.qc.CloseWithError(0, reason)
	})
	return err
}

type streamChannel struct {
	conn *Conn
	in   *transport.Inbox
	mu   sync.Mutex
}

func (ch *streamChannel) Send(msg []byte) error {
	if len(msg) > transport.MaxMessageSize {
		return transport.ErrMessageTooLarge
	}
	if ch.conn.qc.Context().Err() != nil {
		return transport.ErrClosed
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if _, err := ch.conn.stream.Write(msg); err != nil {
		return fmt.Errorf("quic stream write: %w", err)
	}
	return nil
}

func (ch *streamChannel) Receive(ctx context.Context) ([]byte, error) {
	return ch.in.Receive(ctx)
}

type datagramChannel struct {
	conn *Conn
	in   *transport.Inbox
}

func (ch *datagramChannel) Send(msg []byte) error {
	if ch.conn.qc.Context().Err() != nil {
		return transport.ErrClosed
	}
	if err := ch.conn.qc.SendDatagram(msg); err != nil {
		var tooLarge *quic.DatagramTooLargeError
		if errors.As(err, &tooLarge) {
			return transport.ErrMessageTooLarge
		}
		return fmt.Errorf("quic send datagram: %w", err)
	}
	return nil
}

func (ch *datagramChannel) Receive(ctx context.Context) ([]byte, error) {
	return ch.in.Receive(ctx)
}
