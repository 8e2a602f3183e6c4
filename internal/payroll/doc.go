// Package payroll turns a payroll CSV export into per-employee and
// per-period salary summaries.
//
// The package is pure: it performs no I/O and holds no state between
// calls. It is used by the session service in internal/core and by tests
// without modification.
//
// # Pipeline
//
// Ingestion is two strictly sequential steps:
//
//  1. [Ingestor.Parse] converts raw CSV text into an ordered slice of
//     [RawRecord], tolerating quoted fields, embedded commas, fields that
//     wrap across physical lines and rows missing up to two trailing fields.
//  2. [Aggregator.Process] folds those records into an [AggregateResult]:
//     employees keyed by EMP No, year and year-month summaries, and the
//     distinct years and months used to populate filters.
//
// Malformed input never produces an error. Rows that cannot be closed or
// that carry an invalid EMP No are dropped and counted in [Stats].
//
// # Totals
//
// Gross, deductions and net are either read from the CSV's precomputed
// columns ([ModeCSV]) or recomputed from the amount components
// ([ModeComponents]). [ModeAuto] picks one per dataset based on the header.
//
// # Amounts
//
// All amounts are [decimal.Decimal]. [ParseAmount] strips thousands
// separators and coerces anything unparsable to zero.
package payroll
