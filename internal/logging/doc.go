// Package logging provides concrete implementations of the pgsanity.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes to stderr, keeping stdout free for the JSON scan report
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
