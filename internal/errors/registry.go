package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// Registered codes. Handshake E1xx, transport E2xx, config E3xx, capture E4xx.
const (
	CodeVersionMismatch      = "E101"
	CodeHandshakeTimeout     = "E102"
	CodeConnectionIDMismatch = "E103"
	CodeServerRejected       = "E104"
	CodeUnexpectedMessage    = "E105"
	CodeHandshakeClosed      = "E106"

	CodeDialFailed       = "E201"
	CodeConnectionLost   = "E202"
	CodeUnknownTransport = "E203"
	CodeSendFailed       = "E204"

	CodeConfigNotFound = "E301"
	CodeConfigInvalid  = "E302"
	CodeConfigParse    = "E303"

	CodeCaptureOpen    = "E401"
	CodeCaptureCorrupt = "E402"
	CodeUploadFailed   = "E403"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Handshake Errors (E101-E199)
	// ============================================

	CodeVersionMismatch: {
		Category:   CategoryHandshake,
		Message:    "Protocol version mismatch",
		Detail:     "The server answered with a protocol version this client does not speak.",
		Suggestion: "Update the client or connect to a server running the same release.",
	},
	CodeHandshakeTimeout: {
		Category:   CategoryHandshake,
		Message:    "Handshake timed out",
		Detail:     "No ServerHello arrived on the reliable channel before the handshake timeout.",
		Suggestion: "Check that the server is reachable and raise handshake_timeout on slow links.",
	},
	CodeConnectionIDMismatch: {
		Category: CategoryHandshake,
		Message:  "Connection id mismatch",
		Detail:   "The ServerHello echoed a connection id different from the one this client sent. The reply belongs to another session.",
	},
	CodeServerRejected: {
		Category: CategoryHandshake,
		Message:  "Server rejected the connection",
		Detail:   "The server sent an Error or Disconnect message instead of a ServerHello.",
	},
	CodeUnexpectedMessage: {
		Category: CategoryHandshake,
		Message:  "Unexpected handshake message",
		Detail:   "The first message on the reliable channel was neither a ServerHello nor a rejection.",
	},
	CodeHandshakeClosed: {
		Category: CategoryHandshake,
		Message:  "Connection closed during handshake",
	},

	// ============================================
	// Transport Errors (E201-E299)
	// ============================================

	CodeDialFailed: {
		Category:   CategoryTransport,
		Message:    "Could not connect to server",
		Suggestion: "Verify server_addr and that the chosen transport is enabled on the server.",
	},
	CodeConnectionLost: {
		Category: CategoryTransport,
		Message:  "Connection lost",
	},
	CodeUnknownTransport: {
		Category:   CategoryTransport,
		Message:    "Unknown transport",
		Suggestion: "Use one of: quic, websocket, mem.",
	},
	CodeSendFailed: {
		Category: CategoryTransport,
		Message:  "Send failed",
	},

	// ============================================
	// Config Errors (E301-E399)
	// ============================================

	CodeConfigNotFound: {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Run `netsync config init` or pass --config.",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	CodeConfigParse: {
		Category: CategoryConfig,
		Message:  "Could not parse configuration",
	},

	// ============================================
	// Capture Errors (E401-E499)
	// ============================================

	CodeCaptureOpen: {
		Category: CategoryCapture,
		Message:  "Could not open capture file",
	},
	CodeCaptureCorrupt: {
		Category: CategoryCapture,
		Message:  "Capture file is corrupt",
		Detail:   "A record header or length does not match the file contents.",
	},
	CodeUploadFailed: {
		Category:   CategoryCapture,
		Message:    "Capture upload failed",
		Suggestion: "Check capture.bucket and the AWS credentials in the environment.",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
