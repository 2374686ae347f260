// Package migrations ships the SQL files applied by db.Migrate.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
