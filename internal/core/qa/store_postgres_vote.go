// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"context"
	"fmt"

	"github.com/askora/askora/internal/platform/database/schema"
	"github.com/askora/askora/internal/platform/dberr"
)

// # Vote Ledger

// The toggle is a single upsert. The composite primary key on
// (target id, voter id) makes the first vote insert an active row and every
// later vote flip the existing row in place, under the row lock Postgres
// takes for the conflicting insert. Two simultaneous votes by the same
// voter therefore serialize; the ledger can never grow a second row for
// the pair, and the returned state is the row state each toggle left.

// ToggleQuestionVote flips the voter's vote on a question and returns the
// resulting active state.
func (repository *PostgresRepository) ToggleQuestionVote(context context.Context, questionID, voterID string) (bool, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, TRUE)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = NOT %s.%s
		RETURNING %s`,
		schema.ForumQuestionVote.Table,
		schema.ForumQuestionVote.QuestionID, schema.ForumQuestionVote.VoterID, schema.ForumQuestionVote.IsActive,
		schema.ForumQuestionVote.QuestionID, schema.ForumQuestionVote.VoterID,
		schema.ForumQuestionVote.IsActive, schema.ForumQuestionVote.Table, schema.ForumQuestionVote.IsActive,
		schema.ForumQuestionVote.IsActive,
	)

	var active bool
	if err := repository.db.QueryRow(context, query, questionID, voterID).Scan(&active); err != nil {
		return false, dberr.Wrap(err, "toggle_question_vote")
	}
	return active, nil
}

// ToggleAnswerVote flips the voter's vote on an answer and returns the
// resulting active state.
func (repository *PostgresRepository) ToggleAnswerVote(context context.Context, answerID, voterID string) (bool, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, TRUE)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = NOT %s.%s
		RETURNING %s`,
		schema.ForumAnswerVote.Table,
		schema.ForumAnswerVote.AnswerID, schema.ForumAnswerVote.VoterID, schema.ForumAnswerVote.IsActive,
		schema.ForumAnswerVote.AnswerID, schema.ForumAnswerVote.VoterID,
		schema.ForumAnswerVote.IsActive, schema.ForumAnswerVote.Table, schema.ForumAnswerVote.IsActive,
		schema.ForumAnswerVote.IsActive,
	)

	var active bool
	if err := repository.db.QueryRow(context, query, answerID, voterID).Scan(&active); err != nil {
		return false, dberr.Wrap(err, "toggle_answer_vote")
	}
	return active, nil
}
