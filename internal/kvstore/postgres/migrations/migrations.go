// Package migrations embeds the PostgreSQL key-value schema.
package migrations

import "embed"

// FS holds the goose migration files.
//
//go:embed *.sql
var FS embed.FS
