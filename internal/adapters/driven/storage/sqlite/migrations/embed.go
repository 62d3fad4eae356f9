// Package migrations embeds the SQL migration files for the SQLite
// page store.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
