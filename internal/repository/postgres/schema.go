package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates all tables for the given prefix. Statements are
// idempotent (IF NOT EXISTS), so running against an existing schema is
// safe. Used by the seed command; production migrations run the same file
// through deploy tooling.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool, prefix string) error {
	sql := strings.ReplaceAll(schemaSQL, "__prefix__", prefix)
	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
