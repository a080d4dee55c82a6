// Package migrations embeds the goose migrations for each service schema.
package migrations

import "embed"

//go:embed auth/*.sql notes/*.sql
var FS embed.FS
