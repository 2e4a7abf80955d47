// Package migrations applies the embedded schema migrations in
// filename order and records each applied file so reruns are no-ops.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

const trackingSchema = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

// Run brings the database schema up to date. Each pending .sql file
// runs in its own transaction together with its schema_migrations
// bookkeeping row, so a failed migration leaves no partial state.
func Run(ctx context.Context, db *sql.DB) error {
	return (&runner{db: db}).run(ctx)
}

type runner struct {
	db *sql.DB
}

func (r *runner) run(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, trackingSchema); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	done, err := r.appliedSet(ctx)
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}

	pending := 0
	for _, name := range r.pendingOrder() {
		if done[name] {
			continue
		}
		if err := r.apply(ctx, name); err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}
		slog.Info("applied schema migration", "name", name)
		pending++
	}
	if pending == 0 {
		slog.Debug("schema already up to date")
	}
	return nil
}

func (r *runner) appliedSet(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		done[name] = true
	}
	return done, rows.Err()
}

func (r *runner) pendingOrder() []string {
	entries, _ := files.ReadDir(".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (r *runner) apply(ctx context.Context, name string) error {
	stmts, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read embedded file: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(stmts)); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (filename) VALUES (?)", name); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}
