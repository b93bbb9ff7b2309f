package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Envelope constants.
const (
	// HeaderSize is the size of the envelope header in bytes.
	HeaderSize = 20

	// MaxPayloadSize bounds a single payload. Snapshots and event batches
	// stay well under a datagram; the limit only guards stream reads.
	MaxPayloadSize = 64 * 1024

	// Version is the protocol version this package speaks.
	Version uint16 = 1
)

// Magic identifies a netsync envelope on the wire.
var Magic = [4]byte{'N', 'S', 'Y', 'N'}

// Envelope errors. DecodeEnvelope returns exactly one of these for any
// input it rejects; callers treat every one of them as a droppable frame.
var (
	ErrTruncated      = errors.New("protocol: envelope truncated")
	ErrBadMagic       = errors.New("protocol: bad magic")
	ErrLengthMismatch = errors.New("protocol: payload length mismatch")
	ErrUnknownMsgType = errors.New("protocol: unknown message type")
	ErrFrameTooLarge  = errors.New("protocol: payload too large")
)

// MsgType identifies the payload carried by an envelope.
type MsgType uint16

const (
	MsgClientHello MsgType = iota + 1
	MsgServerHello
	MsgJoinRequest
	MsgJoinAccept
	MsgInputCmd
	MsgStateSnapshot
	MsgStateSnapshotDelta
	MsgGameEvent
	MsgPing
	MsgPong
	MsgError
	MsgDisconnect
	MsgPlayerProfile
	MsgFireWeaponRequest
	MsgWeaponFiredEvent
	MsgWeaponReloadEvent

	msgTypeEnd
)

// String returns the string representation of the message type.
func (t MsgType) String() string {
	switch t {
	case MsgClientHello:
		return "ClientHello"
	case MsgServerHello:
		return "ServerHello"
	case MsgJoinRequest:
		return "JoinRequest"
	case MsgJoinAccept:
		return "JoinAccept"
	case MsgInputCmd:
		return "InputCmd"
	case MsgStateSnapshot:
		return "StateSnapshot"
	case MsgStateSnapshotDelta:
		return "StateSnapshotDelta"
	case MsgGameEvent:
		return "GameEvent"
	case MsgPing:
		return "Ping"
	case MsgPong:
		return "Pong"
	case MsgError:
		return "Error"
	case MsgDisconnect:
		return "Disconnect"
	case MsgPlayerProfile:
		return "PlayerProfile"
	case MsgFireWeaponRequest:
		return "FireWeaponRequest"
	case MsgWeaponFiredEvent:
		return "WeaponFiredEvent"
	case MsgWeaponReloadEvent:
		return "WeaponReloadEvent"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a member of the closed message type enum.
func (t MsgType) Valid() bool {
	return t >= MsgClientHello && t < msgTypeEnd
}

// Header is the fixed envelope header.
type Header struct {
	Version      uint16
	Type         MsgType
	PayloadLen   uint32
	MsgSeq       uint32
	ServerSeqAck uint32
}

// Envelope is a decoded message: header plus type-specific payload.
//
// Wire format (20 bytes header + variable payload, little-endian):
//
//	┌──────────────┬───────────┬───────────┬──────────────┬──────────┬───────────────┐
//	│ Magic        │ Version   │ MsgType   │ PayloadLen   │ MsgSeq   │ ServerSeqAck  │
//	│ (4 bytes)    │ (u16)     │ (u16)     │ (u32)        │ (u32)    │ (u32)         │
//	└──────────────┴───────────┴───────────┴──────────────┴──────────┴───────────────┘
//	│                                                                                │
//	│  Payload (PayloadLen bytes, flatbuffers table)                                 │
//	│                                                                                │
//	└────────────────────────────────────────────────────────────────────────────────┘
type Envelope struct {
	Header
	Payload []byte
}

// Encode encodes the envelope, recomputing PayloadLen from the payload.
func (env *Envelope) Encode() []byte {
	return EncodeEnvelope(env.Type, env.Payload, env.MsgSeq, env.ServerSeqAck, env.Version)
}

// EncodeEnvelope frames payload with a header. Sequence numbers are carried
// as unsigned 32-bit values; callers holding wider counters convert with
// uint32(), which is the mod 2^32 wrap.
func EncodeEnvelope(t MsgType, payload []byte, msgSeq, serverSeqAck uint32, version uint16) []byte {
	e := NewEncoder(HeaderSize + len(payload))
	e.WriteBytes(Magic[:])
	e.WriteUint16(version)
	e.WriteUint16(uint16(t))
	e.WriteUint32(uint32(len(payload)))
	e.WriteUint32(msgSeq)
	e.WriteUint32(serverSeqAck)
	e.WriteBytes(payload)
	return e.Bytes()
}

// DecodeHeader decodes and validates just the envelope header.
// It does not check the payload length against the input size.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrTruncated
	}
	if !bytes.Equal(data[:4], Magic[:]) {
		return Header{}, ErrBadMagic
	}

	d := NewDecoder(data[4:HeaderSize])
	// The slice is exactly 16 bytes, so none of these reads can fail.
	version, _ := d.ReadUint16()
	msgType, _ := d.ReadUint16()
	payloadLen, _ := d.ReadUint32()
	msgSeq, _ := d.ReadUint32()
	ack, _ := d.ReadUint32()

	h := Header{
		Version:      version,
		Type:         MsgType(msgType),
		PayloadLen:   payloadLen,
		MsgSeq:       msgSeq,
		ServerSeqAck: ack,
	}
	if !h.Type.Valid() {
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownMsgType, msgType)
	}
	return h, nil
}

// DecodeEnvelope decodes a complete envelope. It never panics: any malformed,
// truncated, or short input yields a nil envelope and a non-nil error.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if uint64(h.PayloadLen)+HeaderSize != uint64(len(data)) {
		return nil, ErrLengthMismatch
	}

	payload := make([]byte, h.PayloadLen)
	copy(payload, data[HeaderSize:])

	return &Envelope{Header: h, Payload: payload}, nil
}

// ReadMessage reads one complete envelope from a byte stream and returns its
// raw bytes. Reliable stream transports use it to recover message boundaries.
func ReadMessage(r io.Reader) ([]byte, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	h, err := DecodeHeader(header)
	if err != nil {
		return nil, err
	}
	if h.PayloadLen > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}

	msg := make([]byte, HeaderSize+int(h.PayloadLen))
	copy(msg, header)
	if h.PayloadLen > 0 {
		if _, err := io.ReadFull(r, msg[HeaderSize:]); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// Wrap frames a payload at the current protocol version.
func Wrap(t MsgType, payload []byte, msgSeq, serverSeqAck uint32) []byte {
	return EncodeEnvelope(t, payload, msgSeq, serverSeqAck, Version)
}
