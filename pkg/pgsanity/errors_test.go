package pgsanity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"invalid config", ErrInvalidConfig, ExitConfigError},
		{"wrapped invalid config", fmt.Errorf("context: %w", ErrInvalidConfig), ExitConfigError},
		{"missing parameter", &ParameterError{Check: "duplicate_user_ids", Name: "active_status"}, ExitConfigError},
		{"query failed", &QueryError{Check: "active_no_sessions", Stage: "count", Err: errors.New("boom")}, ExitQueryFailed},
		{"connection failed", ErrConnectionFailed, ExitConnectionError},
		{"unsupported auth", ErrUnsupportedAuthMethod, ExitConfigError},
		{"connection refused pattern", errors.New("dial tcp: connection refused"), ExitConnectionError},
		{"no such host pattern", errors.New("lookup db.internal: no such host"), ExitConnectionError},
		{"unknown flag", errors.New("unknown flag --foo"), ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), ExitUsageError},
		{"required flag", errors.New("required flag \"database\" not set"), ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), ExitUsageError},
		{"unclassified", errors.New("something else"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestParameterError_MatchesSentinel(t *testing.T) {
	err := &ParameterError{Check: "active_with_end_date", Name: "expired_status"}

	assert.True(t, errors.Is(err, ErrMissingParameter))
	assert.Contains(t, err.Error(), "active_with_end_date")
	assert.Contains(t, err.Error(), "expired_status")
}

func TestQueryError_WrapsCause(t *testing.T) {
	cause := errors.New("relation \"public.users\" does not exist")
	err := &QueryError{Check: "duplicate_user_ids", Stage: "sample", Err: cause}

	assert.True(t, errors.Is(err, ErrQueryFailed))
	assert.True(t, errors.Is(err, cause), "underlying cause must remain reachable")
	assert.Contains(t, err.Error(), "sample query failed")

	var qerr *QueryError
	require.True(t, errors.As(fmt.Errorf("scan aborted: %w", err), &qerr))
	assert.Equal(t, "duplicate_user_ids", qerr.Check)
}
