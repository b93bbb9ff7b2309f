package protocol

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

// Ping carries the client's send time; the server echoes it in Pong.
type Ping struct {
	Nonce        uint32
	ClientTimeMs float64
}

// Pong answers a Ping.
type Pong struct {
	Nonce        uint32
	ClientTimeMs float64 // Echoed from the Ping
	ServerTimeMs float64
	ServerTick   uint32
}

// CloseReason indicates why a session is being closed.
type CloseReason uint16

const (
	CloseNormal         CloseReason = 0x00 // Normal closure
	CloseGoingAway      CloseReason = 0x01 // Client/server going away
	CloseKicked         CloseReason = 0x02 // Removed by the server
	CloseServerShutdown CloseReason = 0x03 // Server shutting down
	CloseError          CloseReason = 0x04 // Error occurred
	CloseTimeout        CloseReason = 0x05 // Peer stopped responding
)

// String returns the string representation of the close reason.
func (cr CloseReason) String() string {
	switch cr {
	case CloseNormal:
		return "Normal"
	case CloseGoingAway:
		return "GoingAway"
	case CloseKicked:
		return "Kicked"
	case CloseServerShutdown:
		return "ServerShutdown"
	case CloseError:
		return "Error"
	case CloseTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// Disconnect announces an orderly session close.
type Disconnect struct {
	Code   CloseReason
	Reason string
}

// MarshalPing encodes a Ping payload.
func MarshalPing(p *Ping) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		schema.PingStart(b)
		putUint32(b, schema.PingVTNonce, p.Nonce)
		putFloat64(b, schema.PingVTClientTimeMs, p.ClientTimeMs)
		return schema.PingEnd(b)
	})
}

// BuildPing encodes a Ping and wraps it in an envelope.
func BuildPing(p *Ping, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgPing, MarshalPing(p), msgSeq, serverSeqAck)
}

// ParsePing decodes and validates a Ping payload.
func ParsePing(payload []byte) (*Ping, error) {
	return parseTable(payload, func(buf []byte) (*Ping, error) {
		t := schema.GetRootAsPing(buf, 0)
		if err := requireFields(t.Table(), "Ping", schema.PingVTNonce, schema.PingVTClientTimeMs); err != nil {
			return nil, err
		}
		if !IsFinite(t.ClientTimeMs()) {
			return nil, invalid("client_time_ms", t.ClientTimeMs())
		}
		return &Ping{Nonce: t.Nonce(), ClientTimeMs: t.ClientTimeMs()}, nil
	})
}

// MarshalPong encodes a Pong payload.
func MarshalPong(p *Pong) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		schema.PongStart(b)
		putUint32(b, schema.PongVTNonce, p.Nonce)
		putFloat64(b, schema.PongVTClientTimeMs, p.ClientTimeMs)
		schema.PongAddServerTimeMs(b, p.ServerTimeMs)
		schema.PongAddServerTick(b, p.ServerTick)
		return schema.PongEnd(b)
	})
}

// BuildPong encodes a Pong and wraps it in an envelope.
func BuildPong(p *Pong, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgPong, MarshalPong(p), msgSeq, serverSeqAck)
}

// ParsePong decodes and validates a Pong payload.
func ParsePong(payload []byte) (*Pong, error) {
	return parseTable(payload, func(buf []byte) (*Pong, error) {
		t := schema.GetRootAsPong(buf, 0)
		if err := requireFields(t.Table(), "Pong", schema.PongVTNonce, schema.PongVTClientTimeMs); err != nil {
			return nil, err
		}
		p := &Pong{
			Nonce:        t.Nonce(),
			ClientTimeMs: t.ClientTimeMs(),
			ServerTimeMs: t.ServerTimeMs(),
			ServerTick:   t.ServerTick(),
		}
		if !IsFinite(p.ClientTimeMs) {
			return nil, invalid("client_time_ms", p.ClientTimeMs)
		}
		if !IsFinite(p.ServerTimeMs) {
			return nil, invalid("server_time_ms", p.ServerTimeMs)
		}
		return p, nil
	})
}

// MarshalDisconnect encodes a Disconnect payload.
func MarshalDisconnect(d *Disconnect) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		reason := createString(b, d.Reason)

		schema.DisconnectStart(b)
		schema.DisconnectAddCode(b, uint16(d.Code))
		schema.DisconnectAddReason(b, reason)
		return schema.DisconnectEnd(b)
	})
}

// BuildDisconnect encodes a Disconnect and wraps it in an envelope.
func BuildDisconnect(d *Disconnect, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgDisconnect, MarshalDisconnect(d), msgSeq, serverSeqAck)
}

// ParseDisconnect decodes and validates a Disconnect payload.
func ParseDisconnect(payload []byte) (*Disconnect, error) {
	return parseTable(payload, func(buf []byte) (*Disconnect, error) {
		t := schema.GetRootAsDisconnect(buf, 0)
		reason, err := checkText("reason", t.Reason())
		if err != nil {
			return nil, err
		}
		return &Disconnect{Code: CloseReason(t.Code()), Reason: reason}, nil
	})
}
