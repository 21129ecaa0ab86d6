// Package sanity implements the data-quality check engine: a fixed catalog of
// integrity checks, an executor that runs one check's count and sample
// queries over a single database session, and a scan service that runs the
// whole catalog in order and assembles the final report.
//
// Checks are read-only by construction: the catalog rejects definitions whose
// statements are not plain SELECTs, and every value is bound as a query
// parameter rather than interpolated into SQL.
package sanity
