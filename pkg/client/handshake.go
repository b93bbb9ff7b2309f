package client

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/netsync/internal/errors"
	"github.com/vango-dev/netsync/pkg/protocol"
	"github.com/vango-dev/netsync/pkg/telemetry"
	"github.com/vango-dev/netsync/pkg/transport"
)

// HandshakeError aborts a connection attempt. Reason is the text a UI shows
// the player.
type HandshakeError struct {
	Code   string
	Reason string
	err    *errors.NetError
}

func newHandshakeError(ne *errors.NetError) *HandshakeError {
	reason := ne.Reason
	if reason == "" {
		reason = ne.Message
	}
	return &HandshakeError{Code: ne.Code, Reason: reason, err: ne}
}

// Error implements the error interface.
func (e *HandshakeError) Error() string {
	return "handshake: " + e.err.Error()
}

// Unwrap exposes the structured error.
func (e *HandshakeError) Unwrap() error {
	return e.err
}

// handshake sends ClientHello on the reliable channel and waits for the
// ServerHello that answers it.
func (s *Session) handshake(ctx context.Context) (*protocol.ServerHello, error) {
	hctx, cancel := s.clock.WithTimeout(ctx, s.cfg.HandshakeTimeout)
	defer cancel()

	hello := &protocol.ClientHello{
		ProtocolVersion: s.cfg.ProtocolVersion,
		ConnectionID:    s.connectionID,
		PlayerName:      s.cfg.PlayerName,
		ClientBuild:     s.cfg.ClientBuild,
	}
	frame := protocol.EncodeEnvelope(protocol.MsgClientHello, protocol.MarshalClientHello(hello),
		s.nextSeq(), s.ack(), s.cfg.ProtocolVersion)
	if err := s.conn.Reliable().Send(frame); err != nil {
		return nil, newHandshakeError(errors.New(errors.CodeHandshakeClosed).Wrap(err))
	}

	for {
		data, err := s.conn.Reliable().Receive(hctx)
		if err != nil {
			switch {
			case stderrors.Is(err, transport.ErrClosed):
				return nil, newHandshakeError(errors.New(errors.CodeHandshakeClosed).Wrap(err))
			case ctx.Err() != nil:
				return nil, ctx.Err()
			case hctx.Err() != nil:
				return nil, newHandshakeError(errors.New(errors.CodeHandshakeTimeout).
					WithReason(fmt.Sprintf("no ServerHello after %s", s.cfg.HandshakeTimeout)))
			default:
				return nil, newHandshakeError(errors.New(errors.CodeHandshakeClosed).Wrap(err))
			}
		}
		s.capture(true, data)

		env, msg, err := protocol.DecodeMessage(data)
		if err != nil {
			s.cfg.Metrics.RecordMalformed(telemetry.ChannelReliable)
			s.logger.Debug("dropping malformed handshake frame", "error", err)
			continue
		}
		s.observeSeq(env.MsgSeq)

		switch m := msg.(type) {
		case *protocol.ServerHello:
			if m.ProtocolVersion != s.cfg.ProtocolVersion {
				return nil, newHandshakeError(errors.New(errors.CodeVersionMismatch).
					WithReason(fmt.Sprintf("server speaks v%d, client speaks v%d", m.ProtocolVersion, s.cfg.ProtocolVersion)))
			}
			if m.ConnectionID != s.connectionID {
				return nil, newHandshakeError(errors.New(errors.CodeConnectionIDMismatch).
					WithReason(fmt.Sprintf("expected %s, got %s", s.connectionID, m.ConnectionID)))
			}
			return m, nil
		case *protocol.ErrorMessage:
			code := errors.CodeServerRejected
			if m.Code == protocol.ErrCodeVersionMismatch {
				code = errors.CodeVersionMismatch
			}
			return nil, newHandshakeError(errors.New(code).
				WithReason(m.Message).
				WithField("code", m.Code.String()))
		case *protocol.Disconnect:
			reason := m.Reason
			if reason == "" {
				reason = m.Code.String()
			}
			return nil, newHandshakeError(errors.New(errors.CodeServerRejected).WithReason(reason))
		default:
			return nil, newHandshakeError(errors.New(errors.CodeUnexpectedMessage).
				WithReason("got " + env.Type.String()))
		}
	}
}
