// Package sqlite provides the durable page store backed by SQLite.
//
// The store opens its database in WAL mode and applies embedded
// migrations on startup, so a fresh data directory is ready after
// NewStore alone.
package sqlite
