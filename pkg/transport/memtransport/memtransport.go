// Package memtransport provides in-process connections with a shaped
// unreliable channel. Tests and the offline replay tool use it to exercise
// the session under loss, duplication and reordering without sockets.
package memtransport

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/vango-dev/netsync/pkg/transport"
)

// Kind is the registered transport name.
const Kind = "mem"

func init() {
	transport.Register(Kind, func() transport.Dialer { return DefaultNetwork })
}

// Config shapes the unreliable channel. Probabilities are in [0, 1].
type Config struct {
	// Loss is the chance a message is dropped.
	Loss float64

	// Duplicate is the chance a delivered message is delivered twice.
	Duplicate float64

	// Reorder is the chance a message is held back and delivered after the
	// next one.
	Reorder float64

	// Seed makes the shaping reproducible.
	Seed int64
}

// Stats counts shaping decisions on one direction of a link.
type Stats struct {
	Sent       uint64
	Dropped    uint64
	Duplicated uint64
	Reordered  uint64
}

// Conn is one end of an in-memory connection.
type Conn struct {
	peer *Conn
	addr string

	reliable   *channel
	unreliable *channel

	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	reason string
}

var _ transport.Conn = (*Conn)(nil)

// Pair creates two connected ends. cfg shapes the unreliable channel in
// both directions.
func Pair(cfg Config) (client, server *Conn) {
	client = &Conn{addr: "mem-server", done: make(chan struct{})}
	server = &Conn{addr: "mem-client", done: make(chan struct{})}
	client.peer, server.peer = server, client

	client.reliable = newChannel(client, false, Config{}, 0)
	server.reliable = newChannel(server, false, Config{}, 0)
	client.unreliable = newChannel(client, true, cfg, cfg.Seed)
	server.unreliable = newChannel(server, true, cfg, cfg.Seed+1)
	return client, server
}

// Reliable returns the ordered lossless channel.
func (c *Conn) Reliable() transport.Channel { return c.reliable }

// Unreliable returns the shaped channel.
func (c *Conn) Unreliable() transport.Channel { return c.unreliable }

// RemoteAddr returns a fixed name for the peer.
func (c *Conn) RemoteAddr() string { return c.addr }

// Done is closed when either end closes.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Close closes both ends. The peer can read reason from CloseReason.
func (c *Conn) Close(reason string) error {
	c.shutdown("")
	c.peer.shutdown(reason)
	return nil
}

func (c *Conn) shutdown(reason string) {
	c.once.Do(func() {
		c.mu.Lock()
		c.reason = reason
		c.mu.Unlock()
		close(c.done)
		c.reliable.in.Close()
		c.unreliable.in.Close()
	})
}

// CloseReason returns the reason the peer gave when it closed the connection.
func (c *Conn) CloseReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

// Flush delivers a message held back for reordering.
func (c *Conn) Flush() {
	c.unreliable.flush()
}

// Stats returns the shaping counters for messages sent from this end.
func (c *Conn) Stats() Stats {
	c.unreliable.mu.Lock()
	defer c.unreliable.mu.Unlock()
	return c.unreliable.stats
}

type channel struct {
	conn  *Conn
	in    *transport.Inbox
	lossy bool

	mu    sync.Mutex
	cfg   Config
	rng   *rand.Rand
	held  []byte
	stats Stats
}

func newChannel(c *Conn, lossy bool, cfg Config, seed int64) *channel {
	return &channel{
		conn:  c,
		in:    transport.NewInbox(transport.RecvQueueSize, lossy),
		lossy: lossy,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (ch *channel) target() *channel {
	if ch.lossy {
		return ch.conn.peer.unreliable
	}
	return ch.conn.peer.reliable
}

// Send delivers a copy of msg to the peer.
func (ch *channel) Send(msg []byte) error {
	select {
	case <-ch.conn.done:
		return transport.ErrClosed
	default:
	}
	if len(msg) > transport.MaxMessageSize {
		return transport.ErrMessageTooLarge
	}
	msg = append([]byte(nil), msg...)

	if !ch.lossy {
		if !ch.target().in.Put(msg) {
			return transport.ErrClosed
		}
		return nil
	}

	for _, m := range ch.shape(msg) {
		ch.target().in.Put(m)
	}
	return nil
}

// shape applies the configured loss, reordering and duplication and returns
// the messages to deliver now.
func (ch *channel) shape(msg []byte) [][]byte {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.stats.Sent++

	if ch.rng.Float64() < ch.cfg.Loss {
		ch.stats.Dropped++
		return nil
	}
	if ch.held == nil && ch.rng.Float64() < ch.cfg.Reorder {
		ch.held = msg
		ch.stats.Reordered++
		return nil
	}

	out := [][]byte{msg}
	if ch.rng.Float64() < ch.cfg.Duplicate {
		out = append(out, msg)
		ch.stats.Duplicated++
	}
	if ch.held != nil {
		out = append(out, ch.held)
		ch.held = nil
	}
	return out
}

func (ch *channel) flush() {
	ch.mu.Lock()
	held := ch.held
	ch.held = nil
	ch.mu.Unlock()
	if held != nil {
		ch.target().in.Put(held)
	}
}

// Receive returns the next inbound message.
func (ch *channel) Receive(ctx context.Context) ([]byte, error) {
	return ch.in.Receive(ctx)
}

// =============================================================================
// Network
// =============================================================================

// ErrNoListener is returned when dialing an address nobody listens on.
var ErrNoListener = errors.New("memtransport: no listener")

// Network routes dials to in-process listeners by address.
type Network struct {
	mu        sync.Mutex
	listeners map[string]*Listener

	// Shaping applied to connections dialed through this network.
	Config Config
}

// DefaultNetwork backs the registered "mem" dialer.
var DefaultNetwork = NewNetwork(Config{})

// NewNetwork creates an empty network.
func NewNetwork(cfg Config) *Network {
	return &Network{listeners: make(map[string]*Listener), Config: cfg}
}

// Listen registers a listener at addr.
func (n *Network) Listen(addr string) (*Listener, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[addr]; ok {
		return nil, fmt.Errorf("memtransport: address %q in use", addr)
	}
	l := &Listener{
		net:     n,
		addr:    addr,
		accepts: make(chan *Conn, 16),
		done:    make(chan struct{}),
	}
	n.listeners[addr] = l
	return l, nil
}

// Dial connects to the listener at addr.
func (n *Network) Dial(ctx context.Context, addr string) (transport.Conn, error) {
	n.mu.Lock()
	l, ok := n.listeners[addr]
	cfg := n.Config
	n.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w at %q", ErrNoListener, addr)
	}

	client, server := Pair(cfg)
	select {
	case l.accepts <- server:
		return client, nil
	case <-l.done:
		return nil, fmt.Errorf("%w at %q", ErrNoListener, addr)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Listener accepts in-memory connections.
type Listener struct {
	net     *Network
	addr    string
	accepts chan *Conn
	done    chan struct{}
	once    sync.Once
}

var _ transport.Listener = (*Listener)(nil)

// Accept waits for the next dial.
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

// Close unregisters the listener.
func (l *Listener) Close() error {
	l.once.Do(func() {
		close(l.done)
		l.net.mu.Lock()
		delete(l.net.listeners, l.addr)
		l.net.mu.Unlock()
	})
	return nil
}

// Addr returns the listen address.
func (l *Listener) Addr() string { return l.addr }
