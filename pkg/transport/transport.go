// Package transport defines the two-channel connection the client session
// runs over.
//
// Every Conn carries a reliable ordered channel, used for the handshake and
// session control, and an unreliable unordered channel carrying inputs,
// snapshots, events and pings. Messages are opaque byte slices; one Send is
// delivered as at most one Receive on the unreliable channel and exactly one
// Receive, in order, on the reliable channel.
//
// Implementations live in subpackages:
//
//	quictransport  QUIC stream plus DATAGRAM frames
//	wstransport    a single WebSocket with a one-byte channel tag
//	memtransport   an in-process pair with configurable loss, duplication and reordering
package transport

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Send and Receive after the connection closed.
	ErrClosed = errors.New("transport: connection closed")

	// ErrMessageTooLarge is returned when a message exceeds MaxMessageSize.
	ErrMessageTooLarge = errors.New("transport: message too large")

	// ErrUnknownKind is returned by NewDialer for an unregistered transport name.
	ErrUnknownKind = errors.New("transport: unknown kind")
)

// MaxMessageSize bounds a single message on either channel.
const MaxMessageSize = 64*1024 + 64

// RecvQueueSize is the per-channel inbound buffer depth. The unreliable
// channel drops new messages when its buffer is full.
const RecvQueueSize = 256

// Channel is one direction-agnostic message channel of a Conn.
type Channel interface {
	// Send transmits one message. It must not block on the network for the
	// unreliable channel.
	Send(msg []byte) error

	// Receive blocks until a message arrives, ctx is done, or the
	// connection closes.
	Receive(ctx context.Context) ([]byte, error)
}

// Conn is an established client-server connection.
type Conn interface {
	Reliable() Channel
	Unreliable() Channel

	// Close tears down the connection, sending reason to the peer where the
	// transport supports it. Close is idempotent.
	Close(reason string) error

	// Done is closed once the connection is closed by either side.
	Done() <-chan struct{}

	RemoteAddr() string
}

// Dialer opens connections to a server.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, addr string) (Conn, error)

// Dial calls f.
func (f DialerFunc) Dial(ctx context.Context, addr string) (Conn, error) {
	return f(ctx, addr)
}

// Listener accepts connections. Servers and test harnesses use it.
type Listener interface {
	Accept(ctx context.Context) (Conn, error)
	Close() error
	Addr() string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Dialer)
)

// Register makes a dialer constructor available by name. Transport
// subpackages register themselves in init.
func Register(kind string, newDialer func() Dialer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = newDialer
}

// NewDialer returns a dialer for a registered transport name.
func NewDialer(kind string) (Dialer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	newDialer, ok := registry[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return newDialer(), nil
}

// Kinds returns the registered transport names.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	return kinds
}
