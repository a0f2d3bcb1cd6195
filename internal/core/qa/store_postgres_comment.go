// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"context"
	"fmt"

	"github.com/askora/askora/internal/platform/database/schema"
	"github.com/askora/askora/internal/platform/dberr"
)

// # Comment Persistence

// InsertComment persists a new comment. An answer id that references no
// answer surfaces as NotFound through the foreign key bridge.
func (repository *PostgresRepository) InsertComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.ForumComment.Table,
		schema.ForumComment.ID, schema.ForumComment.AnswerID, schema.ForumComment.Body,
		schema.ForumComment.Author, schema.ForumComment.AuthorID,
		schema.ForumComment.Version, schema.ForumComment.CreatedAt, schema.ForumComment.UpdatedAt,
	)

	if _, err := repository.db.Exec(context, query,
		comment.ID, comment.AnswerID, comment.Body,
		comment.Author, comment.AuthorID,
		comment.Version, comment.CreatedAt, comment.UpdatedAt,
	); err != nil {
		return dberr.Wrap(err, "insert_comment")
	}
	return nil
}

// FindCommentByID loads a single comment.
func (repository *PostgresRepository) FindCommentByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.ForumComment.ID, schema.ForumComment.AnswerID, schema.ForumComment.Body,
		schema.ForumComment.Author, schema.ForumComment.AuthorID,
		schema.ForumComment.Version, schema.ForumComment.CreatedAt, schema.ForumComment.UpdatedAt,
		schema.ForumComment.Table, schema.ForumComment.ID,
	)

	comment := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.AnswerID, &comment.Body,
		&comment.Author, &comment.AuthorID,
		&comment.Version, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}
	return comment, nil
}

// UpdateCommentBody rewrites the body under an optimistic version check.
// A missed match is reported as [ErrStaleVersion].
func (repository *PostgresRepository) UpdateCommentBody(context context.Context, id, body string, version int) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $2, %s = %s + 1, %s = now() WHERE %s = $1 AND %s = $3`,
		schema.ForumComment.Table,
		schema.ForumComment.Body,
		schema.ForumComment.Version, schema.ForumComment.Version,
		schema.ForumComment.UpdatedAt,
		schema.ForumComment.ID, schema.ForumComment.Version,
	)

	commandTag, err := repository.db.Exec(context, query, id, body, version)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if commandTag.RowsAffected() == 0 {
		return ErrStaleVersion
	}
	return nil
}

// DeleteComment removes a comment row. Comments have no children, so no
// cascade is involved. Deleting an absent comment reports NotFound.
func (repository *PostgresRepository) DeleteComment(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ForumComment.Table, schema.ForumComment.ID)

	commandTag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if commandTag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// commentsForAnswers loads the comments for a batch of answer ids in a
// single query, keyed by answer id and ordered oldest first.
func (repository *PostgresRepository) commentsForAnswers(context context.Context, answerIDs []string) (map[string][]*Comment, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s, %s, %s FROM %s
		WHERE %s = ANY($1::uuid[]) ORDER BY %s ASC`,
		schema.ForumComment.ID, schema.ForumComment.AnswerID, schema.ForumComment.Body,
		schema.ForumComment.Author, schema.ForumComment.AuthorID,
		schema.ForumComment.Version, schema.ForumComment.CreatedAt, schema.ForumComment.UpdatedAt,
		schema.ForumComment.Table,
		schema.ForumComment.AnswerID, schema.ForumComment.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, answerIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "load_comments")
	}
	defer rows.Close()

	comments := make(map[string][]*Comment)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.AnswerID, &comment.Body,
			&comment.Author, &comment.AuthorID,
			&comment.Version, &comment.CreatedAt, &comment.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments[comment.AnswerID] = append(comments[comment.AnswerID], comment)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "load_comments")
	}
	return comments, nil
}
