package migrations

import "embed"

// Migrations holds the golang-migrate SQL files for the accounts database.
//
//go:embed *.sql
var Migrations embed.FS
