package migrations

import "embed"

// FS contains embedded SQLite migrations for the document table.
//
//go:embed *.sql
var FS embed.FS
