// Package capture records inbound frames to disk and replays them offline.
//
// A capture file is a fixed header followed by one record per frame, in the
// order the session received them:
//
//	┌──────────────┬───────────┐
//	│ Magic "NSCP" │ Version   │
//	│ (4 bytes)    │ (u16)     │
//	└──────────────┴───────────┘
//	┌──────────┬──────────────────┬──────────────┬──────────────┐
//	│ Flags    │ ReceivedAtMs     │ Length       │ Frame        │
//	│ (u8)     │ (f64)            │ (uvarint)    │ (Length)     │
//	└──────────┴──────────────────┴──────────────┴──────────────┘
//
// Frames are stored exactly as they arrived, malformed ones included, so a
// replay reproduces the decoder's view of the session.
package capture

import (
	"fmt"
	"io"

	"github.com/vango-dev/netsync/internal/errors"
	"github.com/vango-dev/netsync/pkg/protocol"
)

// FormatVersion is the capture layout written by this package.
const FormatVersion uint16 = 1

// FileExt is the conventional capture file extension.
const FileExt = ".nscap"

// Magic identifies a capture file.
var Magic = [4]byte{'N', 'S', 'C', 'P'}

const headerSize = 6

// Record flags.
const (
	flagReliable byte = 1 << 0
)

// Record is one captured frame.
type Record struct {
	Reliable     bool
	ReceivedAtMs float64
	Frame        []byte
}

func encodeHeader(e *protocol.Encoder) {
	e.WriteBytes(Magic[:])
	e.WriteUint16(FormatVersion)
}

func encodeRecord(e *protocol.Encoder, r Record) {
	var flags byte
	if r.Reliable {
		flags |= flagReliable
	}
	e.WriteByte(flags)
	e.WriteFloat64(r.ReceivedAtMs)
	e.WriteLenBytes(r.Frame)
}

func decodeHeader(d *protocol.Decoder) error {
	magic, err := d.ReadBytes(len(Magic))
	if err != nil {
		return corrupt(0, "truncated header")
	}
	if [4]byte(magic) != Magic {
		return corrupt(0, "not a capture file")
	}
	version, err := d.ReadUint16()
	if err != nil {
		return corrupt(len(Magic), "truncated header")
	}
	if version != FormatVersion {
		return corrupt(len(Magic), fmt.Sprintf("unsupported format version %d", version))
	}
	return nil
}

// decodeRecord reads the next record. It returns io.EOF at a clean end of
// input.
func decodeRecord(d *protocol.Decoder) (Record, error) {
	if d.EOF() {
		return Record{}, io.EOF
	}
	start := d.Position()
	flags, err := d.ReadByte()
	if err != nil {
		return Record{}, corrupt(start, "truncated record")
	}
	if flags&^flagReliable != 0 {
		return Record{}, corrupt(start, fmt.Sprintf("unknown flags %#x", flags))
	}
	at, err := d.ReadFloat64()
	if err != nil {
		return Record{}, corrupt(start, "truncated record")
	}
	frame, err := d.ReadLenBytes()
	if err != nil {
		return Record{}, errors.New(errors.CodeCaptureCorrupt).
			WithField("offset", fmt.Sprint(start)).
			Wrap(err)
	}
	return Record{Reliable: flags&flagReliable != 0, ReceivedAtMs: at, Frame: frame}, nil
}

func corrupt(offset int, reason string) *errors.NetError {
	return errors.New(errors.CodeCaptureCorrupt).
		WithReason(reason).
		WithField("offset", fmt.Sprint(offset))
}
