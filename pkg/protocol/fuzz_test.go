package protocol

import (
	"testing"
)

// FuzzDecodeEnvelope tests that decoding arbitrary bytes doesn't panic and
// that anything accepted re-encodes to the same bytes.
func FuzzDecodeEnvelope(f *testing.F) {
	f.Add(EncodeEnvelope(MsgPing, []byte{0x01, 0x02}, 1, 0, Version))
	f.Add(EncodeEnvelope(MsgStateSnapshot, MarshalStateSnapshot(sampleSnapshot()), 5, 4, Version))
	f.Add([]byte("NSYN"))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		env, err := DecodeEnvelope(data)
		if err != nil {
			if env != nil {
				t.Fatalf("DecodeEnvelope() returned envelope with error %v", err)
			}
			return
		}
		if got := env.Encode(); string(got) != string(data) {
			t.Fatalf("re-encode mismatch: %x != %x", got, data)
		}
	})
}

// FuzzParseStateSnapshot tests that parsing arbitrary payloads doesn't panic.
func FuzzParseStateSnapshot(f *testing.F) {
	f.Add(MarshalStateSnapshot(sampleSnapshot()))
	f.Add(MarshalStateSnapshot(&StateSnapshot{}))
	f.Add([]byte{0x08, 0x00, 0x00, 0x00, 0x04, 0x00, 0x04, 0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Should not panic
		s, err := ParseStateSnapshot(data)
		if err == nil && ValidateStateSnapshot(s) != nil {
			t.Fatalf("ParseStateSnapshot() accepted invalid snapshot %+v", s)
		}
	})
}

// FuzzParseStateSnapshotDelta tests that parsing arbitrary payloads doesn't panic.
func FuzzParseStateSnapshotDelta(f *testing.F) {
	f.Add(MarshalStateSnapshotDelta(&StateSnapshotDelta{ServerTick: 2, BaseTick: 1, Mask: DeltaPosX, Pos: Vec3{X: 3}}))
	f.Add(MarshalStateSnapshotDelta(&StateSnapshotDelta{ServerTick: 9, BaseTick: 9, Mask: DeltaAll}))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Should not panic
		_, _ = ParseStateSnapshotDelta(data)
	})
}

// FuzzDecodeMessage tests the full envelope and payload path.
func FuzzDecodeMessage(f *testing.F) {
	f.Add(BuildPing(&Ping{Nonce: 1, ClientTimeMs: 2}, 0, 0))
	f.Add(BuildGameEventBatch(&GameEventBatch{ServerTick: 4, Events: []GameEvent{{Kind: EventKill, ShooterID: "a"}}}, 0, 0))
	f.Add(BuildClientHello(&ClientHello{ProtocolVersion: Version, ConnectionID: "c"}, 0, 0))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Should not panic
		_, _, _ = DecodeMessage(data)
	})
}
