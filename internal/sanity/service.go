package sanity

import (
	"context"
	"fmt"
	"time"

	"github.com/LittleBiggler/pgsanity/internal/db"
	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
	"github.com/google/uuid"
)

// Service orchestrates a full catalog scan. Each Run is independent and
// stateless across calls: it connects, acquires a single connection for the
// whole scan, executes every check in catalog order, and releases everything
// on all exit paths.
//
// Service is safe for concurrent use as long as the injected dependencies
// are; concurrent Runs are independent scans with their own connections.
type Service struct {
	connectorFactory func(*pgsanity.ConnectionConfig) (pgsanity.Connector, error)
	catalog          *Catalog
	logger           pgsanity.Logger
}

// NewService creates a scan service with all dependencies injected.
//
// Panics if any dependency is nil. This is intentional fail-fast behavior
// to prevent cryptic nil pointer dereferences later. Panics indicate
// programmer error (incorrect dependency injection setup).
func NewService(
	connectorFactory func(*pgsanity.ConnectionConfig) (pgsanity.Connector, error),
	catalog *Catalog,
	logger pgsanity.Logger,
) *Service {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &Service{
		connectorFactory: connectorFactory,
		catalog:          catalog,
		logger:           logger,
	}
}

// Run executes the full catalog against the configured database and returns
// the ordered scan result.
//
// The sample limit is clamped once, up front; out-of-range values are never
// an error. Any check failure aborts the scan (fail-fast) and no partial
// result is returned: a half-finished report risks being read as "clean" for
// the checks that never ran. Context cancellation propagates into the
// in-flight query.
func (s *Service) Run(ctx context.Context, connConfig *pgsanity.ConnectionConfig, params pgsanity.ScanParameters) (*pgsanity.ScanResult, error) {
	if connConfig == nil {
		return nil, fmt.Errorf("connection config is required: %w", pgsanity.ErrInvalidConfig)
	}
	if err := connConfig.Validate(); err != nil {
		return nil, err
	}

	params = params.Normalize()
	start := time.Now()
	scanID := uuid.New()

	s.logger.Verbose("Scan %s: connecting to database '%s'", scanID, connConfig.Database)

	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	// One connection for the whole scan: a single session keeps per-check
	// overhead down and observes whatever point-in-time consistency the
	// server offers.
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	issues, err := s.runCatalog(ctx, db.NewConnQuerier(conn), params)
	if err != nil {
		return nil, err
	}

	result := &pgsanity.ScanResult{
		ScanID:    scanID,
		StartedAt: start,
		Duration:  time.Since(start),
		Issues:    issues,
	}

	s.logger.Info("Scan %s: %d checks completed in %s", scanID, len(issues), result.Duration.Round(time.Millisecond))

	return result, nil
}

// runCatalog executes every check in catalog order over an established
// session. Checks run sequentially: interleaving them on one connection is
// unsafe, and spreading them over several connections costs more than the
// checks themselves. Fails fast on the first check error.
func (s *Service) runCatalog(ctx context.Context, q pgsanity.Querier, params pgsanity.ScanParameters) ([]pgsanity.Issue, error) {
	issues := make([]pgsanity.Issue, 0, s.catalog.Len())

	for _, def := range s.catalog.Checks() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.logger.Verbose("Running check %q", def.ID)

		issue, err := ExecuteCheck(ctx, q, def, params)
		if err != nil {
			return nil, err
		}

		s.logger.Verbose("Check %q: %d violations, %d sampled", def.ID, issue.N, len(issue.Sample))
		issues = append(issues, issue)
	}

	return issues, nil
}
