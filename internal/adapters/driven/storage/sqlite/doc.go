// Package sqlite provides a local SQLite implementation of the document store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single Store implements:
//
//   - DocumentStore: listing, batch deletes, reloads and language updates
//   - LanguageStore: reading back the owner's language
//   - ContentStore: downloading stored file contents
//   - DocumentImporter: importing local files (docdeck local add)
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.docdeck/data/docdeck.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
