// Package core provides the session service behind the salary dashboard.
//
// The payroll package turns CSV text into an aggregate; this package owns
// everything stateful around it, independent of any transport. It can be
// used by the HTTP adapter, the startup loader, or tests without
// modification.
//
// # Service
//
// [Service] holds the current [Dataset]. Every successful ingestion builds a
// new Dataset from scratch and swaps it in under a lock, so readers always
// see either the previous aggregate or the complete new one. The flow is:
//
//  1. Caller passes an io.Reader to [Service.Ingest] (upload) or a path to
//     [Service.IngestFile] (startup and reload)
//  2. The [IngestLimiter] serializes ingestion; waiting too long fails with
//     [ErrIngestBusy]
//  3. Input is size-limited, stripped of a BOM and repaired to valid UTF-8
//  4. payroll.Ingestor and payroll.Aggregator build the aggregate
//  5. The Dataset is published and an [IngestSummary] is added to [History]
//
// Empty input yields an empty dataset that replaces the current one.
// [Service.Preview] runs steps 3 and 4 without publishing.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE006: File errors (size, encoding, empty, missing source)
//   - UPL002-UPL006: Upload errors (busy, cancelled, timeout, no data)
//   - EMP001-EMP004: Employee lookups (unknown EMP No, missing month)
//   - AUTH001-AUTH002: Session errors
//   - PREF001, RATE001: Preferences and throttling
//
// # Preferences
//
// UI preferences live behind the [Preferences] interface. [MemoryPreferences]
// keeps them in process; only the theme key is accepted.
package core
