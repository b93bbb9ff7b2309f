package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryHandshake Category = "handshake"
	CategoryTransport Category = "transport"
	CategoryConfig    Category = "config"
	CategoryCapture   Category = "capture"
	CategoryCLI       Category = "cli"
)

// NetError is a structured error with a registry code, an explanation and a
// suggested fix.
type NetError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (handshake, transport, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Reason is the human-readable cause shown to the player, such as the
	// text of a server Disconnect.
	Reason string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Fields carries structured context such as the server address.
	Fields map[string]string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *NetError) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Wrapped != nil && e.Reason == "" {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *NetError) Unwrap() error {
	return e.Wrapped
}

// Is matches another *NetError with the same code.
func (e *NetError) Is(target error) bool {
	t, ok := target.(*NetError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithReason sets the player-facing cause.
func (e *NetError) WithReason(r string) *NetError {
	e.Reason = r
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *NetError) WithSuggestion(s string) *NetError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *NetError) WithDetail(d string) *NetError {
	e.Detail = d
	return e
}

// WithField attaches one piece of structured context.
func (e *NetError) WithField(key, value string) *NetError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[key] = value
	return e
}

// Wrap wraps another error.
func (e *NetError) Wrap(err error) *NetError {
	e.Wrapped = err
	return e
}

// New creates a NetError from a registered error code.
func New(code string) *NetError {
	template, ok := registry[code]
	if !ok {
		return &NetError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &NetError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new NetError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *NetError {
	return &NetError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a NetError. An error that already
// contains a NetError is returned as that NetError.
func FromError(err error, code string) *NetError {
	if err == nil {
		return nil
	}
	var ne *NetError
	if errors.As(err, &ne) {
		return ne
	}
	return New(code).Wrap(err)
}

// Code returns the registry code of the first NetError in err's chain.
func Code(err error) string {
	var ne *NetError
	if errors.As(err, &ne) {
		return ne.Code
	}
	return ""
}
