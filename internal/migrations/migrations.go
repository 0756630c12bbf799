// Package migrations embeds the SQL schema migrations that are applied
// once at process startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
