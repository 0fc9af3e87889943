// Package migrations embeds the goose migrations for the local SQLite store
// and for the Postgres schema the remote client expects.
package migrations

import "embed"

//go:embed local/*.sql
var Local embed.FS

//go:embed remote/*.sql
var Remote embed.FS
