//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Migrations run via the goose tool directive in go.mod:
//
//	go tool goose -dir migrations postgres "$DATABASE_DSN" up
