package pgsanity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := service.Run(ctx, connConfig, params)
//	if errors.Is(err, pgsanity.ErrQueryFailed) {
//	    // A check's query was rejected by the database
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingParameter indicates a check requires a bind parameter that
	// was not supplied. Detected before any query is sent.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrQueryFailed indicates the database rejected or failed a query.
	ErrQueryFailed = errors.New("query failed")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrNotReadOnly indicates a check definition contains a statement that
	// is not a plain SELECT. Checks are read-only by construction.
	ErrNotReadOnly = errors.New("statement is not read-only")

	// ErrDuplicateCheck indicates a check ID was registered twice.
	ErrDuplicateCheck = errors.New("duplicate check id")

	// ErrUnsupportedAuthMethod indicates the requested authentication method
	// is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ParameterError reports a named bind parameter missing from the scan
// parameters for a specific check. Matches ErrMissingParameter via errors.Is.
type ParameterError struct {
	Check string // check ID requiring the parameter
	Name  string // parameter name that was not supplied
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("check %q: missing parameter %q", e.Check, e.Name)
}

func (e *ParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// QueryError reports a database failure while executing one of a check's
// queries. It wraps the underlying cause without alteration and matches
// ErrQueryFailed via errors.Is.
type QueryError struct {
	Check string // check ID whose query failed
	Stage string // "count" or "sample"
	Err   error  // underlying database error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("check %q: %s query failed: %v", e.Check, e.Stage, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrMissingParameter):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrQueryFailed):
		return ExitQueryFailed
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	// Cobra/pflag usage errors carry no sentinel, only message patterns
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		(strings.Contains(errStr, "accepts ") && strings.Contains(errStr, "arg(s)")) ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "missing required argument") ||
		strings.Contains(errStr, "invalid argument ") {
		return ExitUsageError
	}

	return ExitGeneralError
}
