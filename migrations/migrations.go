// Package migrations embeds the PostgreSQL schema for the key/value store.
package migrations

import "embed"

// FS holds the numbered up/down SQL files in golang-migrate layout.
//
//go:embed *.sql
var FS embed.FS
