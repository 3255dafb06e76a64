// Package migrations embebe el esquema SQL aplicado con goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
