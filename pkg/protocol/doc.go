// Package protocol implements the netsync binary wire protocol.
//
// Every message is a fixed 20-byte envelope header followed by a payload
// serialized as a flatbuffers table (see the schema subpackage). Decoding is
// fail-closed: malformed input yields a nil value and an error, never a panic
// and never a partially-populated message. Callers drop the single frame and
// continue.
//
// # Wire Format
//
// All integers in the header are little-endian:
//
//	┌──────────────┬───────────┬───────────┬──────────────┬──────────┬───────────────┐
//	│ Magic "NSYN" │ Version   │ MsgType   │ PayloadLen   │ MsgSeq   │ ServerSeqAck  │
//	│ (4 bytes)    │ (u16)     │ (u16)     │ (u32)        │ (u32)    │ (u32)         │
//	└──────────────┴───────────┴───────────┴──────────────┴──────────┴───────────────┘
//
// The total length must equal 20 + PayloadLen exactly.
//
// # Message Types
//
//   - ClientHello / ServerHello (reliable): handshake and version check
//   - JoinRequest / JoinAccept (reliable): match entry
//   - InputCmd (unreliable, client → server): one fixed-tick input sample
//   - StateSnapshot / StateSnapshotDelta (unreliable): keyframe and delta state
//   - GameEvent (unreliable): tick-stamped batch of one-shot events
//   - Ping / Pong (unreliable): round-trip time measurement
//   - Error / Disconnect (reliable): session errors and orderly close
//   - PlayerProfile, FireWeaponRequest, WeaponFiredEvent, WeaponReloadEvent
//
// # Payload Validation
//
// Each ParseX function checks that the message's required fields were
// written (a field written with its default value is still present), that
// floating point fields are finite, and that integer fields are in range:
// ticks are unsigned, LastProcessedInputSeq is at least -1, and health,
// kills, deaths, ammo and weapon slot stay within the limits declared in
// table.go.
//
// # Usage
//
//	data := protocol.EncodeInputCmd(&cmd, msgSeq, serverSeqAck)
//	env, msg, err := protocol.DecodeMessage(data)
//	if err != nil {
//	    return // drop the frame
//	}
//	switch m := msg.(type) {
//	case *protocol.StateSnapshot:
//	    ...
//	}
package protocol
