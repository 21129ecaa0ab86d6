package db

import (
	"context"

	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolQuerier adapts *pgxpool.Pool to the pgsanity.Querier interface.
// This decouples the engine from pgx-specific types.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolQuerier struct {
	pool *pgxpool.Pool
}

// NewPoolQuerier creates a Querier backed by the given pool. Each query may
// run on a different pooled connection; use NewConnQuerier when the caller
// needs a single session for the whole unit of work.
func NewPoolQuerier(pool *pgxpool.Pool) *PoolQuerier {
	return &PoolQuerier{pool: pool}
}

// Query executes a query returning multiple rows.
func (p *PoolQuerier) Query(ctx context.Context, sql string, args ...any) (pgsanity.Rows, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// QueryRow executes a query expected to return at most one row.
func (p *PoolQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgsanity.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// ConnQuerier adapts a dedicated *pgxpool.Conn to pgsanity.Querier.
// All queries run on the same session, which is what a scan requires:
// one connection, exclusively owned, for the full catalog.
type ConnQuerier struct {
	conn *pgxpool.Conn
}

// NewConnQuerier creates a Querier bound to a single pooled connection.
// The caller retains ownership of the connection and must Release it.
func NewConnQuerier(conn *pgxpool.Conn) *ConnQuerier {
	return &ConnQuerier{conn: conn}
}

// Query executes a query returning multiple rows on this connection.
func (c *ConnQuerier) Query(ctx context.Context, sql string, args ...any) (pgsanity.Rows, error) {
	rows, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// QueryRow executes a query expected to return at most one row on this connection.
func (c *ConnQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgsanity.Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

// Compile-time interface checks.
var (
	_ pgsanity.Querier = (*PoolQuerier)(nil)
	_ pgsanity.Querier = (*ConnQuerier)(nil)
)
