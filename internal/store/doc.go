// Package store provides SQLite-backed storage for group titles.
//
// Titles live outside the commit sequence so a group's name survives
// even if its trailers are stripped by a rewrite. The database sits in
// the repository's .git directory, one row per group id.
//
// Absence of a row means "no stored title", which is distinct from an
// explicitly stored empty title. Titles are NFC-normalized on write so
// lookups are stable regardless of how the user's terminal composed
// the input.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
