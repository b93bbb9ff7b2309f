package protocol

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// MaxLenBytes caps a length-prefixed field. Envelopes and capture records
// are far smaller, so a longer prefix means the input is corrupt.
const MaxLenBytes = 1 << 20

var (
	ErrVarintOverflow = errors.New("protocol: varint overflow")
	ErrFieldTooLarge  = errors.New("protocol: length-prefixed field too large")
)

// Encoder builds the fixed-layout parts of the wire format: the envelope
// header and capture records. Integers are little-endian.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an encoder with room for size bytes.
func NewEncoder(size int) *Encoder {
	return &Encoder{buf: make([]byte, 0, size)}
}

// Bytes returns the encoded bytes. They alias the encoder's buffer until
// the next Reset.
func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) Len() int { return len(e.buf) }

// Reset empties the encoder and keeps its buffer.
func (e *Encoder) Reset() { e.buf = e.buf[:0] }

func (e *Encoder) WriteByte(b byte) error {
	e.buf = append(e.buf, b)
	return nil
}

func (e *Encoder) WriteBytes(b []byte) { e.buf = append(e.buf, b...) }

func (e *Encoder) WriteUint16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }

func (e *Encoder) WriteUint32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }

func (e *Encoder) WriteUvarint(v uint64) { e.buf = binary.AppendUvarint(e.buf, v) }

// WriteFloat64 appends the IEEE 754 bits of v.
func (e *Encoder) WriteFloat64(v float64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(v))
}

// WriteLenBytes appends a uvarint length followed by b.
func (e *Encoder) WriteLenBytes(b []byte) {
	e.WriteUvarint(uint64(len(b)))
	e.buf = append(e.buf, b...)
}

// Decoder reads what Encoder writes. Every read past the end returns
// io.ErrUnexpectedEOF and leaves the position unchanged.
type Decoder struct {
	buf []byte
	pos int
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

func (d *Decoder) EOF() bool { return d.pos >= len(d.buf) }

// Position returns the offset of the next unread byte.
func (d *Decoder) Position() int { return d.pos }

// next consumes n bytes. The result aliases the input.
func (d *Decoder) next(n int) ([]byte, error) {
	if n < 0 || n > d.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *Decoder) ReadByte() (byte, error) {
	b, err := d.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBytes returns the next n bytes without copying.
func (d *Decoder) ReadBytes(n int) ([]byte, error) { return d.next(n) }

func (d *Decoder) ReadUint16() (uint16, error) {
	b, err := d.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) ReadUint32() (uint32, error) {
	b, err := d.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) ReadFloat64() (float64, error) {
	b, err := d.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (d *Decoder) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.pos:])
	switch {
	case n == 0:
		return 0, io.ErrUnexpectedEOF
	case n < 0:
		return 0, ErrVarintOverflow
	}
	d.pos += n
	return v, nil
}

// ReadLenBytes reads a field written by WriteLenBytes and returns a copy
// of its contents.
func (d *Decoder) ReadLenBytes() ([]byte, error) {
	start := d.pos
	n, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > MaxLenBytes {
		d.pos = start
		return nil, ErrFieldTooLarge
	}
	b, err := d.next(int(n))
	if err != nil {
		d.pos = start
		return nil, err
	}
	return append([]byte(nil), b...), nil
}
