// Package migrations holds the SQL applied by `qagen migrate`.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
