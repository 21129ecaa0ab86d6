package pgsanity

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstracts the query operations the engine needs from a database
// session. Both *pgxpool.Pool and *pgxpool.Conn can be adapted to it, and
// tests can supply in-memory fakes. All values are bound as parameters;
// string interpolation is never used.
type Querier interface {
	// Query executes a query returning multiple rows.
	// The caller must close the returned Rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a query expected to return at most one row.
	// Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Rows is the subset of pgx.Rows the engine consumes. pgx.Rows satisfies it
// structurally, so adapters can return pgx result sets unchanged.
type Rows interface {
	// Next advances to the next row, returning false when exhausted.
	Next() bool

	// Values returns the decoded values of the current row.
	Values() ([]any, error)

	// FieldDescriptions describes the result columns in declared order.
	FieldDescriptions() []pgconn.FieldDescription

	// Err returns any error that occurred while iterating.
	Err() error

	// Close releases the resources held by the result set.
	// Safe to call multiple times.
	Close()
}

// Row represents a single row returned by QueryRow.
type Row interface {
	// Scan reads the values from the row into dest values.
	Scan(dest ...any) error
}
