// Package repository provides generic helpers for transactional writes and
// typed row scanning over database/sql.
package repository

import (
	"context"
	"database/sql"
)

// Querier is the read surface shared by *sql.DB, *sql.Tx, and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Executor is the write surface shared by *sql.DB, *sql.Tx, and *sql.Conn.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner abstracts row scanning so one scan function serves both
// QueryRowContext and rows iteration.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc converts a scanned row into a typed value. Each domain package
// supplies scan functions for its own entities.
type ScanFunc[T any] func(Scanner) (T, error)

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func WithTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, err
	}

	return result, nil
}

// QueryOne runs a query expected to yield exactly one row and scans it.
func QueryOne[T any](ctx context.Context, q Querier, scan ScanFunc[T], query string, args ...any) (T, error) {
	return scan(q.QueryRowContext(ctx, query, args...))
}

// QueryMany runs a query and scans every row. A query matching nothing
// yields an empty slice, never nil.
func QueryMany[T any](ctx context.Context, q Querier, scan ScanFunc[T], query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ExecExpectOne runs a statement that must affect at least one row,
// returning sql.ErrNoRows when nothing matched.
func ExecExpectOne(ctx context.Context, e Executor, query string, args ...any) error {
	result, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
