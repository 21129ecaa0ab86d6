package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows is an in-memory pgsanity.Rows implementation for unit tests.
type fakeRows struct {
	columns   []string
	rows      [][]any
	pos       int
	valuesErr error
	iterErr   error
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

func (f *fakeRows) Err() error { return f.iterErr }
func (f *fakeRows) Close()     { f.closed = true }

func TestCollectRows(t *testing.T) {
	rows := &fakeRows{
		columns: []string{"user_id", "n_rows"},
		rows: [][]any{
			{int64(7), int64(3)},
			{int64(9), int64(2)},
		},
	}

	records, err := CollectRows(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(7), records[0]["user_id"])
	assert.Equal(t, int64(3), records[0]["n_rows"])
	assert.Equal(t, int64(9), records[1]["user_id"])
	assert.True(t, rows.closed, "rows must be closed after collection")
}

func TestCollectRows_Empty(t *testing.T) {
	rows := &fakeRows{columns: []string{"user_id"}}

	records, err := CollectRows(rows)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.True(t, rows.closed)
}

func TestCollectRows_NullValues(t *testing.T) {
	rows := &fakeRows{
		columns: []string{"user_id", "end_date"},
		rows:    [][]any{{int64(42), nil}},
	}

	records, err := CollectRows(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)

	v, ok := records[0]["end_date"]
	assert.True(t, ok, "NULL columns still appear in the record")
	assert.Nil(t, v)
}

func TestCollectRows_ValuesError(t *testing.T) {
	rows := &fakeRows{
		columns:   []string{"user_id"},
		rows:      [][]any{{int64(1)}},
		valuesErr: errors.New("decode failure"),
	}

	_, err := CollectRows(rows)
	require.Error(t, err)
	assert.True(t, rows.closed, "rows must be closed on error paths too")
}

func TestCollectRows_IterationError(t *testing.T) {
	rows := &fakeRows{
		columns: []string{"user_id"},
		iterErr: errors.New("connection reset"),
	}

	_, err := CollectRows(rows)
	require.Error(t, err)
	assert.True(t, rows.closed)
}
