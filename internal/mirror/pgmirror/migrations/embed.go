// Package migrations embeds the Postgres schema of the hosted mirror.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
