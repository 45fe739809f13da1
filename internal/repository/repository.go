// Package repository holds the SQL behind every service store.
//
// Conventions:
//   - "not found" errors are pgx.ErrNoRows wrapped as "table:<name>:",
//     which sqlerr.HandleError turns into "<Entity> not found".
//   - constraint violations are returned untouched; the global error handler
//     classifies them (unique -> 409, foreign key -> 400, ...).
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repositories need.
// pgx.Tx satisfies it as well, which lets writes run inside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// notFound tags a pgx.ErrNoRows with the table it came from.
func notFound(table string, err error) error {
	return fmt.Errorf("table:%s:%w", table, err)
}

// wrapNoRows applies notFound only to "no rows" errors.
func wrapNoRows(table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(table, err)
	}
	return err
}
