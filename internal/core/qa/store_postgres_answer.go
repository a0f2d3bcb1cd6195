// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/askora/askora/internal/platform/database/schema"
	"github.com/askora/askora/internal/platform/dberr"
	"github.com/askora/askora/internal/platform/postgres"
)

// # Answer Persistence

// InsertAnswer persists a new answer. A question id that references no
// question surfaces as NotFound through the foreign key bridge.
func (repository *PostgresRepository) InsertAnswer(context context.Context, answer *Answer) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.ForumAnswer.Table,
		schema.ForumAnswer.ID, schema.ForumAnswer.QuestionID, schema.ForumAnswer.Body,
		schema.ForumAnswer.Author, schema.ForumAnswer.AuthorID,
		schema.ForumAnswer.Version, schema.ForumAnswer.CreatedAt, schema.ForumAnswer.UpdatedAt,
	)

	if _, err := repository.db.Exec(context, query,
		answer.ID, answer.QuestionID, answer.Body,
		answer.Author, answer.AuthorID,
		answer.Version, answer.CreatedAt, answer.UpdatedAt,
	); err != nil {
		return dberr.Wrap(err, "insert_answer")
	}
	return nil
}

// FindAnswerByID loads a single answer with its live vote score and its
// comments.
func (repository *PostgresRepository) FindAnswerByID(context context.Context, id string) (*Answer, error) {
	query := fmt.Sprintf(
		`SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s,
			(SELECT COUNT(*) FROM %s v WHERE v.%s = a.%s AND v.%s) AS score
		FROM %s a WHERE a.%s = $1`,
		schema.ForumAnswer.ID, schema.ForumAnswer.QuestionID, schema.ForumAnswer.Body,
		schema.ForumAnswer.Author, schema.ForumAnswer.AuthorID,
		schema.ForumAnswer.Version, schema.ForumAnswer.CreatedAt, schema.ForumAnswer.UpdatedAt,
		schema.ForumAnswerVote.Table, schema.ForumAnswerVote.AnswerID, schema.ForumAnswer.ID,
		schema.ForumAnswerVote.IsActive,
		schema.ForumAnswer.Table, schema.ForumAnswer.ID,
	)

	answer := &Answer{Comments: make([]*Comment, 0)}
	err := repository.db.QueryRow(context, query, id).Scan(
		&answer.ID, &answer.QuestionID, &answer.Body,
		&answer.Author, &answer.AuthorID,
		&answer.Version, &answer.CreatedAt, &answer.UpdatedAt,
		&answer.Score,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_answer")
	}

	comments, err := repository.commentsForAnswers(context, []string{answer.ID})
	if err != nil {
		return nil, err
	}
	if attached, ok := comments[answer.ID]; ok {
		answer.Comments = attached
	}

	return answer, nil
}

// AnswerExists reports whether an answer row is present.
func (repository *PostgresRepository) AnswerExists(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ForumAnswer.Table, schema.ForumAnswer.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "answer_exists")
	}
	return exists, nil
}

// UpdateAnswerBody rewrites the body under an optimistic version check.
// A missed match is reported as [ErrStaleVersion].
func (repository *PostgresRepository) UpdateAnswerBody(context context.Context, id, body string, version int) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $2, %s = %s + 1, %s = now() WHERE %s = $1 AND %s = $3`,
		schema.ForumAnswer.Table,
		schema.ForumAnswer.Body,
		schema.ForumAnswer.Version, schema.ForumAnswer.Version,
		schema.ForumAnswer.UpdatedAt,
		schema.ForumAnswer.ID, schema.ForumAnswer.Version,
	)

	commandTag, err := repository.db.Exec(context, query, id, body, version)
	if err != nil {
		return dberr.Wrap(err, "update_answer")
	}
	if commandTag.RowsAffected() == 0 {
		return ErrStaleVersion
	}
	return nil
}

// DeleteAnswerCascade removes an answer with its comments and vote rows in
// one transaction, children first.
func (repository *PostgresRepository) DeleteAnswerCascade(context context.Context, id string) error {
	statements := []string{
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.ForumComment.Table, schema.ForumComment.AnswerID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.ForumAnswerVote.Table, schema.ForumAnswerVote.AnswerID),
	}
	deleteAnswer := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ForumAnswer.Table, schema.ForumAnswer.ID)

	err := postgres.WithinTx(context, repository.db, func(tx pgx.Tx) error {
		for _, statement := range statements {
			if _, err := tx.Exec(context, statement, id); err != nil {
				return err
			}
		}

		commandTag, err := tx.Exec(context, deleteAnswer, id)
		if err != nil {
			return err
		}
		if commandTag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, "delete_answer")
	}
	return nil
}

// answersForQuestion loads every answer of a question with vote scores,
// then hydrates all their comments in one batched query.
func (repository *PostgresRepository) answersForQuestion(context context.Context, questionID string) ([]*Answer, error) {
	query := fmt.Sprintf(
		`SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s,
			(SELECT COUNT(*) FROM %s v WHERE v.%s = a.%s AND v.%s) AS score
		FROM %s a WHERE a.%s = $1 ORDER BY a.%s ASC`,
		schema.ForumAnswer.ID, schema.ForumAnswer.QuestionID, schema.ForumAnswer.Body,
		schema.ForumAnswer.Author, schema.ForumAnswer.AuthorID,
		schema.ForumAnswer.Version, schema.ForumAnswer.CreatedAt, schema.ForumAnswer.UpdatedAt,
		schema.ForumAnswerVote.Table, schema.ForumAnswerVote.AnswerID, schema.ForumAnswer.ID,
		schema.ForumAnswerVote.IsActive,
		schema.ForumAnswer.Table, schema.ForumAnswer.QuestionID, schema.ForumAnswer.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, questionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_answers")
	}
	defer rows.Close()

	answers := make([]*Answer, 0)
	answerIDs := make([]string, 0)
	answerMap := make(map[string]*Answer)
	for rows.Next() {
		answer := &Answer{Comments: make([]*Comment, 0)}
		if err := rows.Scan(
			&answer.ID, &answer.QuestionID, &answer.Body,
			&answer.Author, &answer.AuthorID,
			&answer.Version, &answer.CreatedAt, &answer.UpdatedAt,
			&answer.Score,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_answer")
		}
		answers = append(answers, answer)
		answerIDs = append(answerIDs, answer.ID)
		answerMap[answer.ID] = answer
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_answers")
	}

	if len(answerIDs) == 0 {
		return answers, nil
	}

	comments, err := repository.commentsForAnswers(context, answerIDs)
	if err != nil {
		return nil, err
	}
	for answerID, attached := range comments {
		if answer, ok := answerMap[answerID]; ok {
			answer.Comments = attached
		}
	}

	return answers, nil
}
