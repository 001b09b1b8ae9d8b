// Package assets provides files embedded into the railsql binary.
package assets

import "embed"

// Migrations holds the index schema, applied in file name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Catalog holds the predefined queries offered by the console and the index page.
//
//go:embed catalog/queries.yaml
var Catalog []byte

// Templates holds the server-rendered HTML pages.
//
//go:embed web/templates/*.html
var Templates embed.FS
