package transport

import (
	"context"
	"sync"
)

// Inbox is the inbound side of a Channel shared by the implementations. A
// read pump delivers messages with Put; the session reads them with Receive.
type Inbox struct {
	ch       chan []byte
	done     chan struct{}
	once     sync.Once
	lossy    bool
	overflow uint64
	mu       sync.Mutex
}

// NewInbox creates an inbox. A lossy inbox drops messages when full; a
// lossless one blocks the caller of Put.
func NewInbox(size int, lossy bool) *Inbox {
	if size <= 0 {
		size = RecvQueueSize
	}
	return &Inbox{
		ch:    make(chan []byte, size),
		done:  make(chan struct{}),
		lossy: lossy,
	}
}

// Put queues one message. It returns false if the message was dropped or
// the inbox is closed.
func (in *Inbox) Put(msg []byte) bool {
	select {
	case <-in.done:
		return false
	default:
	}
	if in.lossy {
		select {
		case in.ch <- msg:
			return true
		default:
			in.mu.Lock()
			in.overflow++
			in.mu.Unlock()
			return false
		}
	}
	select {
	case in.ch <- msg:
		return true
	case <-in.done:
		return false
	}
}

// Receive returns the next message. Messages queued before Close are still
// delivered; after that Receive returns ErrClosed.
func (in *Inbox) Receive(ctx context.Context) ([]byte, error) {
	select {
	case msg := <-in.ch:
		return msg, nil
	default:
	}
	select {
	case msg := <-in.ch:
		return msg, nil
	case <-in.done:
		select {
		case msg := <-in.ch:
			return msg, nil
		default:
			return nil, ErrClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close wakes blocked receivers. It is idempotent.
func (in *Inbox) Close() {
	in.once.Do(func() { close(in.done) })
}

// Overflow returns the number of messages dropped because the inbox was full.
func (in *Inbox) Overflow() uint64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.overflow
}
