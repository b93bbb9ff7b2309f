// Package errors provides structured, actionable errors for netsync.
//
// Routine wire noise (malformed frames, stale snapshots) never becomes an
// error; it is dropped and counted. This package covers the failures a
// player or operator has to see: a rejected handshake, a lost connection, a
// bad configuration file or a failed capture upload.
//
// # Error Codes
//
// Each error has a unique code that maps to a short message, an explanation
// and, where one exists, a suggested fix:
//   - E1xx handshake
//   - E2xx transport
//   - E3xx config
//   - E4xx capture
//
// # Usage
//
//	err := errors.New(errors.CodeVersionMismatch).
//	    WithReason("server speaks v2, client speaks v1").
//	    WithField("server", addr)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Protocol version mismatch
//	//
//	//   server speaks v2, client speaks v1
//	//
//	//   The server answered with a protocol version this client does not speak.
//	//
//	//   Hint: Update the client or connect to a server running the same release.
package errors
