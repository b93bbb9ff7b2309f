// Package wstransport runs the session over a single WebSocket for networks
// that block UDP. Both channels share the socket; each binary message starts
// with a one-byte channel tag. The unreliable channel is therefore ordered
// and lossless on the wire, and only its inbound buffer may drop.
package wstransport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/netsync/pkg/transport"
)

// Kind is the registered transport name.
const Kind = "websocket"

const (
	tagReliable   byte = 0
	tagUnreliable byte = 1
)

func init() {
	transport.Register(Kind, func() transport.Dialer { return NewDialer(DefaultConfig()) })
}

// Config configures WebSocket connections.
type Config struct {
	// HandshakeTimeout bounds the HTTP upgrade.
	// Default: 10s.
	HandshakeTimeout time.Duration

	// WriteTimeout bounds a single message write.
	// Default: 5s.
	WriteTimeout time.Duration

	// CheckOrigin is passed to the server-side upgrader. Nil allows any origin.
	CheckOrigin func(r *http.Request) bool

	Logger *slog.Logger
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     5 * time.Second,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Dialer opens WebSocket connections. Addresses are ws:// or wss:// URLs.
type Dialer struct {
	cfg Config
}

// NewDialer creates a dialer.
func NewDialer(cfg Config) *Dialer {
	return &Dialer{cfg: cfg}
}

// Dial performs the WebSocket upgrade.
func (d *Dialer) Dial(ctx context.Context, addr string) (transport.Conn, error) {
	wd := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: d.cfg.HandshakeTimeout,
	}
	ws, _, err := wd.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial %s: %w", addr, err)
	}
	return newConn(ws, d.cfg), nil
}

// Listener is an http.Handler that upgrades requests and queues the
// resulting connections for Accept.
type Listener struct {
	cfg      Config
	upgrader websocket.Upgrader
	accepts  chan transport.Conn
	done     chan struct{}
	once     sync.Once
	addr     string
}

var _ transport.Listener = (*Listener)(nil)

// NewListener creates a listener. Mount it on an HTTP server; addr is only
// reported by Addr.
func NewListener(addr string, cfg Config) *Listener {
	checkOrigin := cfg.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Listener{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: cfg.HandshakeTimeout,
			CheckOrigin:      checkOrigin,
		},
		accepts: make(chan transport.Conn, 16),
		done:    make(chan struct{}),
		addr:    addr,
	}
}

// ServeHTTP upgrades the request.
func (l *Listener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.cfg.logger().Debug("websocket upgrade failed", "error", err)
		return
	}
	c := newConn(ws, l.cfg)
	select {
	case l.accepts <- c:
	case <-l.done:
		_ = c.Close("server shutting down")
	}
}

// Accept waits for the next upgraded connection.
func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case c := <-l.accepts:
		return c, nil
	case <-l.done:
		return nil, transport.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting.
func (l *Listener) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

// Addr returns the address given to NewListener.
func (l *Listener) Addr() string { return l.addr }

// Conn is a WebSocket carrying both channels.
type Conn struct {
	ws     *websocket.Conn
	cfg    Config
	logger *slog.Logger

	reliable   *channel
	unreliable *channel

	writeMu sync.Mutex
	done    chan struct{}
	once    sync.Once
}

var _ transport.Conn = (*Conn)(nil)

func newConn(ws *websocket.Conn, cfg Config) *Conn {
	ws.SetReadLimit(transport.MaxMessageSize + 1)
	c := &Conn{
		ws:     ws,
		cfg:    cfg,
		logger: cfg.logger().With("transport", Kind, "remote", ws.RemoteAddr().String()),
		done:   make(chan struct{}),
	}
	c.reliable = &channel{conn: c, tag: tagReliable, in: transport.NewInbox(transport.RecvQueueSize, false)}
	c.unreliable = &channel{conn: c, tag: tagUnreliable, in: transport.NewInbox(transport.RecvQueueSize, true)}
	go c.readPump()
	return c
}

func (c *Conn) readPump() {
	defer c.shutdown()
	for {
		mt, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			return
		}
		if mt != websocket.BinaryMessage || len(msg) == 0 {
			continue
		}
		switch msg[0] {
		case tagReliable:
			if !c.reliable.in.Put(msg[1:]) {
				return
			}
		case tagUnreliable:
			c.unreliable.in.Put(msg[1:])
		default:
			c.logger.Debug("unknown channel tag", "tag", msg[0])
		}
	}
}

func (c *Conn) shutdown() {
	c.once.Do(func() {
		close(c.done)
		c.reliable.in.Close()
		c.unreliable.in.Close()
		_ = c.ws.Close()
	})
}

func (c *Conn) write(tag byte, msg []byte) error {
	if len(msg) > transport.MaxMessageSize {
		return transport.ErrMessageTooLarge
	}
	select {
	case <-c.done:
		return transport.ErrClosed
	default:
	}

	frame := make([]byte, 1+len(msg))
	frame[0] = tag
	copy(frame[1:], msg)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	if err := c.ws.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		if errors.Is(err, websocket.ErrCloseSent) {
			return transport.ErrClosed
		}
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

// Reliable returns the tagged reliable channel.
func (c *Conn) Reliable() transport.Channel { return c.reliable }

// Unreliable returns the tagged unreliable channel.
func (c *Conn) Unreliable() transport.Channel { return c.unreliable }

// Done is closed when the socket closes.
func (c *Conn) Done() <-chan struct{} { return c.done }

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() string { return c.ws.RemoteAddr().String() }

// Close sends a close frame carrying reason and closes the socket.
func (c *Conn) Close(reason string) error {
	c.writeMu.Lock()
	if len(reason) > 120 {
		reason = reason[:120]
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.writeMu.Unlock()
	c.shutdown()
	return nil
}

type channel struct {
	conn *Conn
	tag  byte
	in   *transport.Inbox
}

func (ch *channel) Send(msg []byte) error {
	return ch.conn.write(ch.tag, msg)
}

func (ch *channel) Receive(ctx context.Context) ([]byte, error) {
	return ch.in.Receive(ctx)
}
