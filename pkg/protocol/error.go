package protocol

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vango-dev/netsync/pkg/protocol/schema"
)

// ErrorCode identifies the type of error reported by the server.
type ErrorCode uint16

const (
	ErrCodeUnknown          ErrorCode = 0x0000 // Unknown error
	ErrCodeInvalidMessage   ErrorCode = 0x0001 // Malformed envelope or payload
	ErrCodeVersionMismatch  ErrorCode = 0x0002 // Unsupported protocol version
	ErrCodeServerFull       ErrorCode = 0x0003 // No free player slots
	ErrCodeNotJoined        ErrorCode = 0x0004 // Gameplay message before JoinAccept
	ErrCodeRateLimited      ErrorCode = 0x0005 // Too many messages
	ErrCodeInputRejected    ErrorCode = 0x0006 // Input failed server validation
	ErrCodeServerError      ErrorCode = 0x0100 // Internal server error
	ErrCodeNotAuthorized    ErrorCode = 0x0101 // Not authorized
	ErrCodeSessionNotFound  ErrorCode = 0x0102 // Unknown connection id
	ErrCodeMaintenanceBreak ErrorCode = 0x0103 // Server in maintenance
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrCodeUnknown:
		return "Unknown"
	case ErrCodeInvalidMessage:
		return "InvalidMessage"
	case ErrCodeVersionMismatch:
		return "VersionMismatch"
	case ErrCodeServerFull:
		return "ServerFull"
	case ErrCodeNotJoined:
		return "NotJoined"
	case ErrCodeRateLimited:
		return "RateLimited"
	case ErrCodeInputRejected:
		return "InputRejected"
	case ErrCodeServerError:
		return "ServerError"
	case ErrCodeNotAuthorized:
		return "NotAuthorized"
	case ErrCodeSessionNotFound:
		return "SessionNotFound"
	case ErrCodeMaintenanceBreak:
		return "Maintenance"
	default:
		return "Unknown"
	}
}

// ErrorMessage is sent when the server rejects something.
type ErrorMessage struct {
	Code    ErrorCode // Error code
	Message string    // Human-readable error message
	Fatal   bool      // If true, connection should be closed
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	return fmt.Sprintf("%s: %s", em.Code, em.Message)
}

// NewError creates a new non-fatal error message.
func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// NewFatalError creates a new fatal error message.
func NewFatalError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message, Fatal: true}
}

// MarshalErrorMessage encodes an ErrorMessage payload.
func MarshalErrorMessage(em *ErrorMessage) []byte {
	return marshalTable(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		msg := b.CreateString(em.Message)

		schema.ErrorStart(b)
		putUint16(b, schema.ErrorVTCode, uint16(em.Code))
		schema.ErrorAddMessage(b, msg)
		schema.ErrorAddFatal(b, em.Fatal)
		return schema.ErrorEnd(b)
	})
}

// BuildErrorMessage encodes an ErrorMessage and wraps it in an envelope.
func BuildErrorMessage(em *ErrorMessage, msgSeq, serverSeqAck uint32) []byte {
	return Wrap(MsgError, MarshalErrorMessage(em), msgSeq, serverSeqAck)
}

// ParseErrorMessage decodes and validates an Error payload.
func ParseErrorMessage(payload []byte) (*ErrorMessage, error) {
	return parseTable(payload, func(buf []byte) (*ErrorMessage, error) {
		t := schema.GetRootAsError(buf, 0)
		if err := requireFields(t.Table(), "Error", schema.ErrorVTCode, schema.ErrorVTMessage); err != nil {
			return nil, err
		}
		msg, err := checkText("message", t.Message())
		if err != nil {
			return nil, err
		}
		return &ErrorMessage{Code: ErrorCode(t.Code()), Message: msg, Fatal: t.Fatal()}, nil
	})
}
