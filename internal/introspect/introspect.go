// Package introspect provides read helpers over a live session: table
// listing, column schemas, and ad-hoc query execution. It reuses the same
// Querier abstraction the check engine runs on, so one acquired connection
// serves both.
package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/LittleBiggler/pgsanity/internal/db"
	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
)

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Column string `json:"column"`
	Type   string `json:"type"`
}

// ListTables returns the table names visible in the given schemas, sorted by
// schema then name. Empty schemas falls back to the defaults.
func ListTables(ctx context.Context, q pgsanity.Querier, schemas []string) ([]string, error) {
	if len(schemas) == 0 {
		schemas = pgsanity.DefaultTableSchemas
	}

	// information_schema does not accept arrays in an IN list, so the
	// schema filter is expanded to one placeholder per schema.
	placeholders := make([]string, len(schemas))
	args := make([]any, len(schemas))
	for i, schema := range schemas {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = schema
	}

	query := fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema IN (%s)
		ORDER BY table_schema, table_name`, strings.Join(placeholders, ", "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w: %w", pgsanity.ErrQueryFailed, err)
	}
	records, err := db.CollectRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w: %w", pgsanity.ErrQueryFailed, err)
	}

	tables := make([]string, 0, len(records))
	for _, rec := range records {
		name, ok := rec["table_name"].(string)
		if !ok {
			return nil, fmt.Errorf("list tables: unexpected table_name value %v: %w", rec["table_name"], pgsanity.ErrQueryFailed)
		}
		tables = append(tables, name)
	}
	return tables, nil
}

// TableSchema returns the column names and data types of the named table,
// in ordinal position order. The table name is bound as a parameter, never
// interpolated. An unknown table yields an empty slice, not an error.
func TableSchema(ctx context.Context, q pgsanity.Querier, table string) ([]ColumnInfo, error) {
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("table name is required: %w", pgsanity.ErrInvalidConfig)
	}

	query := `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position`

	rows, err := q.Query(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("table schema for %q: %w: %w", table, pgsanity.ErrQueryFailed, err)
	}
	records, err := db.CollectRows(rows)
	if err != nil {
		return nil, fmt.Errorf("table schema for %q: %w: %w", table, pgsanity.ErrQueryFailed, err)
	}

	columns := make([]ColumnInfo, 0, len(records))
	for _, rec := range records {
		name, _ := rec["column_name"].(string)
		dataType, _ := rec["data_type"].(string)
		columns = append(columns, ColumnInfo{Column: name, Type: dataType})
	}
	return columns, nil
}

// ExecuteSQL runs an arbitrary query and returns its rows as column-name to
// value records. Unlike the check catalog this is a deliberate escape hatch:
// the statement is passed through as-is, on the caller's authority.
func ExecuteSQL(ctx context.Context, q pgsanity.Querier, sql string) ([]pgsanity.RowRecord, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, fmt.Errorf("sql statement is required: %w", pgsanity.ErrInvalidConfig)
	}

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("execute sql: %w: %w", pgsanity.ErrQueryFailed, err)
	}
	records, err := db.CollectRows(rows)
	if err != nil {
		return nil, fmt.Errorf("execute sql: %w: %w", pgsanity.ErrQueryFailed, err)
	}
	return records, nil
}
