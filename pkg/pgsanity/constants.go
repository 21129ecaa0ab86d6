package pgsanity

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Scan completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitQueryFailed     = 12 // A check or passthrough query failed
)

const (
	// DefaultSampleLimit is the per-check sample size used when the caller
	// does not request one (or requests an invalid one).
	DefaultSampleLimit = 20

	// MaxSampleLimit caps the per-check sample size regardless of what the
	// caller requests. Guards every sample query against unbounded result sets.
	MaxSampleLimit = 200

	// DefaultActiveStatus is the subscription status label treated as "active"
	// when the caller does not supply one.
	DefaultActiveStatus = "active"

	// DefaultExpiredStatus is the subscription status label treated as
	// "expired" when the caller does not supply one.
	DefaultExpiredStatus = "expired"

	// DefaultRetryInitialDelay is the default initial delay before the first
	// connection retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between connection
	// retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of connection
	// retry attempts. Check queries are never retried.
	DefaultRetryMaxAttempts = 3

	// DefaultManagementDB is the default database to connect to when no
	// database is specified anywhere.
	DefaultManagementDB = "postgres"
)

// DefaultTableSchemas lists the schemas inspected by the tables command when
// no explicit schema filter is given.
var DefaultTableSchemas = []string{"public"}
