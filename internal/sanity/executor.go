package sanity

import (
	"context"

	"github.com/LittleBiggler/pgsanity/internal/db"
	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
)

// ExecuteCheck runs one check definition over the given session and returns
// its fully populated Issue. The count and sample queries are two separate
// round-trips sharing one predicate: counting server-side avoids
// materializing an unbounded violation set just to measure it.
//
// A failure on either query aborts the whole check with a *QueryError; a
// missing bind parameter aborts before any query is sent with a
// *ParameterError. No partial Issue is ever returned.
func ExecuteCheck(ctx context.Context, q pgsanity.Querier, def CheckDefinition, params pgsanity.ScanParameters) (pgsanity.Issue, error) {
	countArgs, err := bindParams(def.ID, def.CountParams, params)
	if err != nil {
		return pgsanity.Issue{}, err
	}
	sampleArgs, err := bindParams(def.ID, def.SampleParams, params)
	if err != nil {
		return pgsanity.Issue{}, err
	}

	var total int64
	if err := q.QueryRow(ctx, def.CountQuery, countArgs...).Scan(&total); err != nil {
		return pgsanity.Issue{}, &pgsanity.QueryError{Check: def.ID, Stage: "count", Err: err}
	}

	rows, err := q.Query(ctx, def.SampleQuery, sampleArgs...)
	if err != nil {
		return pgsanity.Issue{}, &pgsanity.QueryError{Check: def.ID, Stage: "sample", Err: err}
	}
	sample, err := db.CollectRows(rows)
	if err != nil {
		return pgsanity.Issue{}, &pgsanity.QueryError{Check: def.ID, Stage: "sample", Err: err}
	}

	return pgsanity.Issue{
		Check:  def.ID,
		N:      total,
		Sample: sample,
	}, nil
}

// bindParams resolves named parameters to positional bind values in
// declaration order. Unknown names fail before any query is sent.
func bindParams(checkID string, names []string, params pgsanity.ScanParameters) ([]any, error) {
	if len(names) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(names))
	for _, name := range names {
		value, ok := params.Value(name)
		if !ok {
			return nil, &pgsanity.ParameterError{Check: checkID, Name: name}
		}
		args = append(args, value)
	}
	return args, nil
}
