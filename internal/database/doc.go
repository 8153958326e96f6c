// Package database provides SQLite-based run history storage for thumbsweep.
//
// This package implements the RunDB, which stores one row per completed
// run: classification totals, mutation counters, and the full report JSON
// for later inspection through the history command.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
