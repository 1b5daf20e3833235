package postgres

import (
	"context"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the embedded schema. Statements are idempotent so repeated
// runs are safe.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}
