// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithinTx runs fn inside a single database transaction.
//
// The transaction is committed when fn returns nil and rolled back
// otherwise, including when the context deadline lapses mid-way. This is
// the boundary that keeps multi-row operations (cascading deletes in
// particular) all-or-nothing: a cascade either commits completely or
// leaves no trace.
func WithinTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin transaction: %w", err)
	}

	// Rollback is a no-op after a successful commit.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit transaction: %w", err)
	}

	return nil
}
