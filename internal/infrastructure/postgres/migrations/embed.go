package migrations

import "embed"

// FS migraciones SQL del esquema PostgreSQL.
//
//go:embed *.sql
var FS embed.FS
