// Package migrations embeds the goose migrations for the client-side
// offline catalog cache.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
