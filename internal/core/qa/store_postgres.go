// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is the pgx-backed implementation of the qa persistence
// ports. One instance serves as [QuestionRepository], [AnswerRepository],
// [CommentRepository], and [VoteLedger].
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a repository bound to the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}
