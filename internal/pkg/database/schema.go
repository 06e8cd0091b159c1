package database

import (
	"context"
	"fmt"
	"log/slog"
)

// schemaStatements is applied in order on startup. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		employee_id TEXT PRIMARY KEY,
		full_name   TEXT NOT NULL,
		email       TEXT NOT NULL,
		department  TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT employees_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id          UUID PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees (employee_id) ON DELETE CASCADE,
		date        DATE NOT NULL,
		status      TEXT NOT NULL,
		timestamp   TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS attendance_employee_date_idx ON attendance (employee_id, date DESC)`,
	`CREATE INDEX IF NOT EXISTS attendance_date_idx ON attendance (date)`,
	`CREATE TABLE IF NOT EXISTS salaries (
		id          UUID PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees (employee_id) ON DELETE CASCADE,
		month       CHAR(7) NOT NULL,
		base_salary NUMERIC(14, 2) NOT NULL,
		bonus       NUMERIC(14, 2) NOT NULL DEFAULT 0,
		deductions  NUMERIC(14, 2) NOT NULL DEFAULT 0,
		net_salary  NUMERIC(14, 2) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT salaries_employee_month_key UNIQUE (employee_id, month)
	)`,
	`CREATE INDEX IF NOT EXISTS salaries_month_idx ON salaries (month)`,
}

// EnsureSchema creates the tables and indexes the repositories rely on.
func EnsureSchema(ctx context.Context, db *DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}

	slog.Info("Database schema ensured", "statements", len(schemaStatements))
	return nil
}
