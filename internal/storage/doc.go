// Package storage persists enrichment results in SQLite.
//
// # Schema
//
// Four tables, owned by semver-ordered migrations:
//
//   - analyses: one row per analyzed model, keyed by model name, carrying the
//     counters and timing of the latest pass.
//   - domain_types: classified types for an analysis, with the aggregate-root
//     evidence kind and detail that justified the classification.
//   - properties: one row per property, with the relationship kind, target,
//     boundary flag, and evidence when classification produced a result.
//   - diagnostics: modeling-violation warnings raised during the pass.
//
// Type names are additionally indexed in an FTS5 virtual table kept in sync by
// triggers, backing SearchTypes.
//
// # Drivers
//
// Two drivers are supported through build tags. The default build uses the pure
// Go modernc.org/sqlite driver and needs no C toolchain. Building with
// "-tags cgosqlite,fts5" selects github.com/mattn/go-sqlite3 for the native C
// implementation. DriverName and BuildMode report the active configuration.
//
// # Concurrency
//
// The connection pool is limited to a single connection; SQLite performs best
// with one writer, and WAL mode keeps readers unblocked. All operations take a
// context and respect cancellation. Transactions expose the same interface as
// the storage itself via the querier indirection; nested transactions are
// rejected.
//
// Re-running an analysis is destructive for that model name only: types and
// diagnostics are replaced, other analyses are untouched.
package storage
