package protocol

import "fmt"

// ParsePayload parses an envelope's payload into the typed message for its
// MsgType. The concrete type is a pointer to one of the message structs in
// this package (*StateSnapshot, *GameEventBatch, *Pong, ...).
func ParsePayload(env *Envelope) (any, error) {
	switch env.Type {
	case MsgClientHello:
		return ParseClientHello(env.Payload)
	case MsgServerHello:
		return ParseServerHello(env.Payload)
	case MsgJoinRequest:
		return ParseJoinRequest(env.Payload)
	case MsgJoinAccept:
		return ParseJoinAccept(env.Payload)
	case MsgInputCmd:
		return ParseInputCmd(env.Payload)
	case MsgStateSnapshot:
		return ParseStateSnapshot(env.Payload)
	case MsgStateSnapshotDelta:
		return ParseStateSnapshotDelta(env.Payload)
	case MsgGameEvent:
		return ParseGameEventBatch(env.Payload)
	case MsgPing:
		return ParsePing(env.Payload)
	case MsgPong:
		return ParsePong(env.Payload)
	case MsgError:
		return ParseErrorMessage(env.Payload)
	case MsgDisconnect:
		return ParseDisconnect(env.Payload)
	case MsgPlayerProfile:
		return ParsePlayerProfile(env.Payload)
	case MsgFireWeaponRequest:
		return ParseFireWeaponRequest(env.Payload)
	case MsgWeaponFiredEvent:
		return ParseWeaponFiredEvent(env.Payload)
	case MsgWeaponReloadEvent:
		return ParseWeaponReloadEvent(env.Payload)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMsgType, uint16(env.Type))
	}
}

// DecodeMessage decodes an envelope and its payload in one step.
// Any failure yields a nil message; the frame should be dropped.
func DecodeMessage(data []byte) (*Envelope, any, error) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		return nil, nil, err
	}
	msg, err := ParsePayload(env)
	if err != nil {
		return env, nil, fmt.Errorf("%s: %w", env.Type, err)
	}
	return env, msg, nil
}
