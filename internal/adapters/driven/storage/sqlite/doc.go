// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements:
//
//   - RecentStore: the recent-document history, kept as one JSON record
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Application state lives in a small key/value table; each named record is
// replaced whole inside a single transaction.
//
// # Data Location
//
// By default, the database is stored at ~/.docintake/data/intake.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Separate processes writing the same record race and the
// last writer wins.
package sqlite
