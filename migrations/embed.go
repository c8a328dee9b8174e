package migrations

import "embed"

// Files holds the numbered SQL schema migrations applied by db.OpenSQLite.
//
//go:embed *.sql
var Files embed.FS
