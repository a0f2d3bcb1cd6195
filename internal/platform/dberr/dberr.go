// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/askora/askora/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows → NOT_FOUND
//   - SQLSTATE 23505 (unique_violation) → CONFLICT
//   - SQLSTATE 23503 (foreign_key_violation) → NOT_FOUND (the referenced parent is gone)
//   - SQLSTATE 40001 (serialization_failure) / 40P01 (deadlock) → EDIT_CONFLICT
//   - anything else → INTERNAL_ERROR
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream, pass through untouched.
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("A record with the same identity already exists")
		case pgerrcode.ForeignKeyViolation:
			// An insert/update referenced a parent row that no longer exists.
			return ErrNotFound
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return apperr.EditConflict("Resource")
		}
	}

	return apperr.Internal(err)
}
