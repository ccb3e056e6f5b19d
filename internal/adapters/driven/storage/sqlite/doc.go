// Package sqlite provides SQLite-backed persistence for sync history.
//
// The store uses modernc.org/sqlite (pure Go, no cgo) with WAL mode
// enabled. Schema changes are applied through embedded, numbered
// migration files (001_initial.up.sql, ...) tracked in a
// schema_migrations table, so opening an older database upgrades it
// in place.
//
// The database lives at ~/.garsync/data/history.db by default.
package sqlite
