package sanity

import (
	"context"
	"fmt"
	"strings"

	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}

// fakeResult is one canned response: a count for QueryRow and a row set for
// Query, keyed by a substring of the SQL text.
type fakeResult struct {
	count     int64
	countErr  error
	columns   []string
	rows      [][]any
	queryErr  error
	valuesErr error
}

// fakeQuerier routes queries to canned results by matching a registered SQL
// fragment. It records execution order for orchestration tests.
type fakeQuerier struct {
	results  map[string]*fakeResult
	executed []string
	lastArgs map[string][]any
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		results:  make(map[string]*fakeResult),
		lastArgs: make(map[string][]any),
	}
}

func (f *fakeQuerier) lookup(sql string) (*fakeResult, error) {
	for fragment, res := range f.results {
		if strings.Contains(sql, fragment) {
			return res, nil
		}
	}
	return nil, fmt.Errorf("no fake result registered for query: %s", sql)
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgsanity.Rows, error) {
	f.executed = append(f.executed, sql)
	res, err := f.lookup(sql)
	if err != nil {
		return nil, err
	}
	f.lastArgs[sql] = args
	if res.queryErr != nil {
		return nil, res.queryErr
	}
	return &fakeRows{columns: res.columns, rows: res.rows, valuesErr: res.valuesErr}, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgsanity.Row {
	f.executed = append(f.executed, sql)
	res, err := f.lookup(sql)
	if err != nil {
		return &fakeRow{err: err}
	}
	f.lastArgs[sql] = args
	if res.countErr != nil {
		return &fakeRow{err: res.countErr}
	}
	return &fakeRow{count: res.count}
}

type fakeRow struct {
	count int64
	err   error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return fmt.Errorf("expected a single count destination, got %d", len(dest))
	}
	p, ok := dest[0].(*int64)
	if !ok {
		return fmt.Errorf("expected *int64 destination, got %T", dest[0])
	}
	*p = r.count
	return nil
}

type fakeRows struct {
	columns   []string
	rows      [][]any
	pos       int
	valuesErr error
	closed    bool
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Values() ([]any, error) {
	if f.valuesErr != nil {
		return nil, f.valuesErr
	}
	return f.rows[f.pos-1], nil
}

func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(f.columns))
	for i, name := range f.columns {
		fields[i] = pgconn.FieldDescription{Name: name}
	}
	return fields
}

func (f *fakeRows) Err() error { return nil }
func (f *fakeRows) Close()     { f.closed = true }
