package protocol

import (
	"errors"
	"fmt"
	"math"
	"sync"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

// Payload validation errors. ParseX functions return nil and one of these
// (possibly wrapped with field detail) instead of a partially-populated value.
var (
	ErrMalformedPayload = errors.New("protocol: malformed payload")
	ErrMissingField     = errors.New("protocol: missing required field")
	ErrInvalidField     = errors.New("protocol: invalid field value")
)

// Field limits enforced by the parsers.
const (
	MaxHealth        = 1000
	MaxScore         = 1 << 20
	MaxAmmo          = 10000
	MaxWeaponSlots   = 8
	MaxCoordinate    = 1e6
	MaxSpeed         = 1e4
	MaxIDLength      = 128
	MaxTextLength    = 1024
	MaxEventsInBatch = 256

	// minTableSize is the root offset plus a vtable offset.
	minTableSize = 8
)

var builderPool = sync.Pool{
	New: func() any { return flatbuffers.NewBuilder(256) },
}

// marshalTable runs build against a pooled builder and returns a copy of the
// finished table bytes.
func marshalTable(build func(b *flatbuffers.Builder) flatbuffers.UOffsetT) []byte {
	b := builderPool.Get().(*flatbuffers.Builder)
	b.Reset()
	b.Finish(build(b))
	out := append([]byte(nil), b.FinishedBytes()...)
	builderPool.Put(b)
	return out
}

// parseTable guards a table reader against the panics flatbuffers raises for
// out-of-range offsets in hostile input.
func parseTable[T any](payload []byte, read func([]byte) (*T, error)) (out *T, err error) {
	if len(payload) < minTableSize {
		return nil, ErrMalformedPayload
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, ErrMalformedPayload
		}
	}()
	return read(payload)
}

// The schema's default-skipping Add helpers cannot express "present with a
// zero value", so required scalars and delta fields are written explicitly.

func putUint16(b *flatbuffers.Builder, vt flatbuffers.VOffsetT, v uint16) {
	b.PrependUint16(v)
	b.Slot(schema.SlotOf(vt))
}

func putUint32(b *flatbuffers.Builder, vt flatbuffers.VOffsetT, v uint32) {
	b.PrependUint32(v)
	b.Slot(schema.SlotOf(vt))
}

func putInt32(b *flatbuffers.Builder, vt flatbuffers.VOffsetT, v int32) {
	b.PrependInt32(v)
	b.Slot(schema.SlotOf(vt))
}

func putByte(b *flatbuffers.Builder, vt flatbuffers.VOffsetT, v byte) {
	b.PrependByte(v)
	b.Slot(schema.SlotOf(vt))
}

func putFloat64(b *flatbuffers.Builder, vt flatbuffers.VOffsetT, v float64) {
	b.PrependFloat64(v)
	b.Slot(schema.SlotOf(vt))
}

// createString returns 0 for empty strings so optional fields stay absent.
func createString(b *flatbuffers.Builder, s string) flatbuffers.UOffsetT {
	if s == "" {
		return 0
	}
	return b.CreateString(s)
}

func requireFields(tab flatbuffers.Table, msg string, vts ...flatbuffers.VOffsetT) error {
	for _, vt := range vts {
		if !schema.Has(tab, vt) {
			return fmt.Errorf("%w: %s field at vtable offset %d", ErrMissingField, msg, vt)
		}
	}
	return nil
}

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidField, field, v)
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func checkVec3(field string, v Vec3, limit float64) error {
	for i, c := range [3]float64{v.X, v.Y, v.Z} {
		if !IsFinite(c) || math.Abs(c) > limit {
			return invalid(fmt.Sprintf("%s[%d]", field, i), c)
		}
	}
	return nil
}

func checkRange(field string, v, lo, hi int64) error {
	if v < lo || v > hi {
		return invalid(field, v)
	}
	return nil
}

func checkID(field string, b []byte, required bool) (string, error) {
	if len(b) == 0 && required {
		return "", fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	if len(b) > MaxIDLength {
		return "", invalid(field+" length", len(b))
	}
	return string(b), nil
}

func checkText(field string, b []byte) (string, error) {
	if len(b) > MaxTextLength {
		return "", invalid(field+" length", len(b))
	}
	return string(b), nil
}
