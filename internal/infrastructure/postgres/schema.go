package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Tablas de documentos del motor. El documento vive en data (jsonb); las
// columnas propias son la identidad de cada tabla. seq da el orden de
// inserción que usa la localización de líneas de indent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS stock (
		id   TEXT PRIMARY KEY,
		key  TEXT NOT NULL,
		data JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_key ON stock (key)`,
	`CREATE TABLE IF NOT EXISTS indent_stock (
		key  TEXT PRIMARY KEY,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS job_indents (
		id    TEXT PRIMARY KEY,
		seq   BIGSERIAL,
		jobid TEXT NOT NULL,
		data  JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_indents_jobid ON job_indents (jobid)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id        TEXT PRIMARY KEY,
		seq       BIGSERIAL,
		direction TEXT NOT NULL,
		data      JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_direction ON stock_movements (direction)`,
}

// EnsureSchema crea las tablas del motor de forma idempotente.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}
