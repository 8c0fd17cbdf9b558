// Package migrations embeds the SQL migration files compiled into the
// service binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
