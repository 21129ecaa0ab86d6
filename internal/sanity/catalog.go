package sanity

import (
	"fmt"
	"strings"

	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
)

// CheckDefinition is one declarative data-integrity rule: a count query that
// produces the exact violation total, a sample query that returns up to the
// clamped sample limit of violating rows in a deterministic order, and the
// named parameters each query binds, in placeholder order ($1..$n).
//
// Definitions are immutable once registered. Both queries must share the same
// filter predicate so count and sample describe the same violation set; the
// count is always computed server-side rather than by fetching and counting
// rows.
type CheckDefinition struct {
	// ID uniquely names the check within a catalog.
	ID string

	// CountQuery returns a single integer: the total violating rows.
	CountQuery string

	// SampleQuery returns violating rows, ordered deterministically with
	// documented tie-breaks (nulls last on nullable sort keys). Its final
	// placeholder is always the sample limit.
	SampleQuery string

	// CountParams names the bind parameters of CountQuery in order.
	CountParams []string

	// SampleParams names the bind parameters of SampleQuery in order.
	// The last entry must be "sample_limit" so every sample is bounded
	// by construction.
	SampleParams []string
}

// Catalog is the ordered, append-only registry of checks run in one scan.
// Registration order is execution order and therefore report order.
type Catalog struct {
	checks []CheckDefinition
	byID   map[string]struct{}
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]struct{})}
}

// Register appends a check definition after validating it. It rejects
// duplicate IDs, empty queries, non-SELECT statements, and sample queries
// whose parameter list does not end with the sample limit.
func (c *Catalog) Register(def CheckDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("check id is required: %w", pgsanity.ErrInvalidConfig)
	}
	if _, exists := c.byID[def.ID]; exists {
		return fmt.Errorf("check %q: %w", def.ID, pgsanity.ErrDuplicateCheck)
	}
	if err := requireReadOnly(def.ID, "count", def.CountQuery); err != nil {
		return err
	}
	if err := requireReadOnly(def.ID, "sample", def.SampleQuery); err != nil {
		return err
	}
	if n := len(def.SampleParams); n == 0 || def.SampleParams[n-1] != "sample_limit" {
		return fmt.Errorf("check %q: sample query must bind sample_limit as its final parameter: %w",
			def.ID, pgsanity.ErrInvalidConfig)
	}

	c.checks = append(c.checks, def)
	c.byID[def.ID] = struct{}{}
	return nil
}

// Checks returns the registered definitions in registration order.
// The returned slice must not be modified.
func (c *Catalog) Checks() []CheckDefinition {
	return c.checks
}

// Len returns the number of registered checks.
func (c *Catalog) Len() int {
	return len(c.checks)
}

// requireReadOnly rejects statements that are not plain SELECTs (WITH-prefixed
// selects included). This enforces the engine's read-only contract at
// registration time rather than trusting each definition.
func requireReadOnly(id, stage, query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("check %q: %s query is required: %w", id, stage, pgsanity.ErrInvalidConfig)
	}
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("check %q: %s query: %w", id, stage, pgsanity.ErrNotReadOnly)
	}
	return nil
}

// DefaultCatalog returns the fixed catalog for this domain, in scan order:
//
//  1. duplicate_user_ids: a user_id appears more than once in public.users
//  2. active_with_end_date: an "active" subscription has an end_date
//  3. expired_no_end_date: an "expired" subscription has no end_date
//  4. active_no_sessions: a user with an active subscription has no sessions
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	defs := []CheckDefinition{
		{
			ID: "duplicate_user_ids",
			CountQuery: `
				SELECT COUNT(*)
				FROM (
				  SELECT user_id
				  FROM public.users
				  GROUP BY user_id
				  HAVING COUNT(*) > 1
				) t`,
			SampleQuery: `
				SELECT user_id, COUNT(*) AS n_rows
				FROM public.users
				GROUP BY user_id
				HAVING COUNT(*) > 1
				ORDER BY n_rows DESC, user_id
				LIMIT $1`,
			SampleParams: []string{"sample_limit"},
		},
		{
			ID: "active_with_end_date",
			CountQuery: `
				SELECT COUNT(*)
				FROM public.subscriptions
				WHERE status = $1
				  AND end_date IS NOT NULL`,
			SampleQuery: `
				SELECT user_id, subscription_id, plan, status, start_date, end_date
				FROM public.subscriptions
				WHERE status = $1
				  AND end_date IS NOT NULL
				ORDER BY end_date DESC NULLS LAST, subscription_id
				LIMIT $2`,
			CountParams:  []string{"active_status"},
			SampleParams: []string{"active_status", "sample_limit"},
		},
		{
			ID: "expired_no_end_date",
			CountQuery: `
				SELECT COUNT(*)
				FROM public.subscriptions
				WHERE status = $1
				  AND end_date IS NULL`,
			SampleQuery: `
				SELECT user_id, subscription_id, plan, status, start_date, end_date
				FROM public.subscriptions
				WHERE status = $1
				  AND end_date IS NULL
				ORDER BY start_date DESC NULLS LAST, subscription_id
				LIMIT $2`,
			CountParams:  []string{"expired_status"},
			SampleParams: []string{"expired_status", "sample_limit"},
		},
		{
			ID: "active_no_sessions",
			CountQuery: `
				SELECT COUNT(*)
				FROM (
				  SELECT s.user_id
				  FROM public.subscriptions s
				  LEFT JOIN public.sessions se
				    ON se.user_id = s.user_id
				  WHERE s.status = $1
				  GROUP BY s.user_id
				  HAVING COUNT(se.session_id) = 0
				) t`,
			SampleQuery: `
				SELECT s.user_id
				FROM public.subscriptions s
				LEFT JOIN public.sessions se
				  ON se.user_id = s.user_id
				WHERE s.status = $1
				GROUP BY s.user_id
				HAVING COUNT(se.session_id) = 0
				ORDER BY s.user_id
				LIMIT $2`,
			CountParams:  []string{"active_status"},
			SampleParams: []string{"active_status", "sample_limit"},
		},
	}

	for _, def := range defs {
		if err := c.Register(def); err != nil {
			// The built-in catalog is validated by tests; a failure here is
			// programmer error.
			panic(fmt.Sprintf("invalid built-in check: %v", err))
		}
	}

	return c
}
