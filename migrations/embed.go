// Package migrations embeds the save-slot schema
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
