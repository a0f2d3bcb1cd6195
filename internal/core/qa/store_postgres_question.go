// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/askora/askora/internal/platform/database/schema"
	"github.com/askora/askora/internal/platform/dberr"
	"github.com/askora/askora/internal/platform/postgres"
	"github.com/askora/askora/pkg/slice"
)

// # Question Persistence

// InsertQuestion persists a new question and its initial tag links in a
// single transaction. A tag id that references no tag surfaces as NotFound
// through the foreign key bridge.
func (repository *PostgresRepository) InsertQuestion(context context.Context, question *Question, tagIDs []int) error {
	insertQuestion := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.ForumQuestion.Table,
		schema.ForumQuestion.ID, schema.ForumQuestion.Title, schema.ForumQuestion.Body,
		schema.ForumQuestion.Author, schema.ForumQuestion.AuthorID, schema.ForumQuestion.Views,
		schema.ForumQuestion.Version, schema.ForumQuestion.CreatedAt, schema.ForumQuestion.UpdatedAt,
	)
	insertLink := fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.ForumQuestionTag.Table, schema.ForumQuestionTag.QuestionID, schema.ForumQuestionTag.TagID,
	)

	err := postgres.WithinTx(context, repository.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, insertQuestion,
			question.ID, question.Title, question.Body,
			question.Author, question.AuthorID, question.Views,
			question.Version, question.CreatedAt, question.UpdatedAt,
		); err != nil {
			return err
		}

		for _, tagID := range tagIDs {
			if _, err := tx.Exec(context, insertLink, question.ID, tagID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, "insert_question")
	}
	return nil
}

// FindQuestionByID loads a question with its full child graph: tags,
// answers with live vote scores, and every answer's comments. Children are
// gathered in one query per level, never one per row.
func (repository *PostgresRepository) FindQuestionByID(context context.Context, id string) (*Question, error) {
	questionQuery := fmt.Sprintf(
		`SELECT q.%s, q.%s, q.%s, q.%s, q.%s, q.%s, q.%s, q.%s, q.%s,
			(SELECT COUNT(*) FROM %s v WHERE v.%s = q.%s AND v.%s) AS score
		FROM %s q WHERE q.%s = $1`,
		schema.ForumQuestion.ID, schema.ForumQuestion.Title, schema.ForumQuestion.Body,
		schema.ForumQuestion.Author, schema.ForumQuestion.AuthorID, schema.ForumQuestion.Views,
		schema.ForumQuestion.Version, schema.ForumQuestion.CreatedAt, schema.ForumQuestion.UpdatedAt,
		schema.ForumQuestionVote.Table, schema.ForumQuestionVote.QuestionID, schema.ForumQuestion.ID,
		schema.ForumQuestionVote.IsActive,
		schema.ForumQuestion.Table, schema.ForumQuestion.ID,
	)

	question := &Question{Tags: make([]TagRef, 0)}
	err := repository.db.QueryRow(context, questionQuery, id).Scan(
		&question.ID, &question.Title, &question.Body,
		&question.Author, &question.AuthorID, &question.Views,
		&question.Version, &question.CreatedAt, &question.UpdatedAt,
		&question.Score,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_question")
	}

	tags, err := repository.tagsForQuestions(context, []string{question.ID})
	if err != nil {
		return nil, err
	}
	question.Tags = tags[question.ID]
	if question.Tags == nil {
		question.Tags = make([]TagRef, 0)
	}

	answers, err := repository.answersForQuestion(context, question.ID)
	if err != nil {
		return nil, err
	}
	question.Answers = answers
	question.AnswerCount = len(answers)

	return question, nil
}

// QuestionExists reports whether a question row is present.
func (repository *PostgresRepository) QuestionExists(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ForumQuestion.Table, schema.ForumQuestion.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "question_exists")
	}
	return exists, nil
}

// ListQuestions retrieves a filtered, sorted page of questions with their
// vote scores, answer counts, and tags. Answers themselves are not loaded.
func (repository *PostgresRepository) ListQuestions(context context.Context, filter Filter, limit, offset int) ([]*Question, int, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("q.%s ILIKE $%d", schema.ForumQuestion.Title, len(args)))
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("q.%s = $%d", schema.ForumQuestion.AuthorID, len(args)))
	}
	if filter.TagSlug != "" {
		args = append(args, filter.TagSlug)
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM %s qt JOIN %s t ON t.%s = qt.%s WHERE qt.%s = q.%s AND t.%s = $%d)`,
			schema.ForumQuestionTag.Table, schema.ForumTag.Table,
			schema.ForumTag.ID, schema.ForumQuestionTag.TagID,
			schema.ForumQuestionTag.QuestionID, schema.ForumQuestion.ID,
			schema.ForumTag.Slug, len(args),
		))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s q%s`, schema.ForumQuestion.Table, whereClause)

	total := 0
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_questions")
	}

	orderClause := fmt.Sprintf("q.%s DESC", schema.ForumQuestion.CreatedAt)
	switch filter.Sort {
	case "views":
		orderClause = fmt.Sprintf("q.%s DESC", schema.ForumQuestion.Views)
	case "score":
		orderClause = "score DESC"
	}

	args = append(args, limit, offset)
	pageQuery := fmt.Sprintf(
		`SELECT q.%s, q.%s, q.%s, q.%s, q.%s, q.%s, q.%s, q.%s, q.%s,
			(SELECT COUNT(*) FROM %s v WHERE v.%s = q.%s AND v.%s) AS score,
			(SELECT COUNT(*) FROM %s a WHERE a.%s = q.%s) AS answer_count
		FROM %s q%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		schema.ForumQuestion.ID, schema.ForumQuestion.Title, schema.ForumQuestion.Body,
		schema.ForumQuestion.Author, schema.ForumQuestion.AuthorID, schema.ForumQuestion.Views,
		schema.ForumQuestion.Version, schema.ForumQuestion.CreatedAt, schema.ForumQuestion.UpdatedAt,
		schema.ForumQuestionVote.Table, schema.ForumQuestionVote.QuestionID, schema.ForumQuestion.ID,
		schema.ForumQuestionVote.IsActive,
		schema.ForumAnswer.Table, schema.ForumAnswer.QuestionID, schema.ForumQuestion.ID,
		schema.ForumQuestion.Table, whereClause, orderClause, len(args)-1, len(args),
	)

	rows, err := repository.db.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_questions")
	}
	defer rows.Close()

	questions := make([]*Question, 0)
	for rows.Next() {
		question := &Question{Tags: make([]TagRef, 0)}
		if err := rows.Scan(
			&question.ID, &question.Title, &question.Body,
			&question.Author, &question.AuthorID, &question.Views,
			&question.Version, &question.CreatedAt, &question.UpdatedAt,
			&question.Score, &question.AnswerCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_question")
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_questions")
	}

	if len(questions) > 0 {
		ids := slice.Map(questions, func(question *Question) string { return question.ID })
		tags, err := repository.tagsForQuestions(context, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, question := range questions {
			if attached, ok := tags[question.ID]; ok {
				question.Tags = attached
			}
		}
	}

	return questions, total, nil
}

// UpdateQuestionBody rewrites the body if and only if the stored version
// still matches. A missed match is reported as [ErrStaleVersion] for the
// service to re-resolve.
func (repository *PostgresRepository) UpdateQuestionBody(context context.Context, id, body string, version int) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $2, %s = %s + 1, %s = now() WHERE %s = $1 AND %s = $3`,
		schema.ForumQuestion.Table,
		schema.ForumQuestion.Body,
		schema.ForumQuestion.Version, schema.ForumQuestion.Version,
		schema.ForumQuestion.UpdatedAt,
		schema.ForumQuestion.ID, schema.ForumQuestion.Version,
	)

	commandTag, err := repository.db.Exec(context, query, id, body, version)
	if err != nil {
		return dberr.Wrap(err, "update_question")
	}
	if commandTag.RowsAffected() == 0 {
		return ErrStaleVersion
	}
	return nil
}

// DeleteQuestionCascade removes a question with everything beneath it in
// one transaction: comments on its answers, answer votes, the answers,
// question votes, tag links, then the question row. Tags themselves are
// shared vocabulary and survive.
func (repository *PostgresRepository) DeleteQuestionCascade(context context.Context, id string) error {
	answerIDs := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.ForumAnswer.ID, schema.ForumAnswer.Table, schema.ForumAnswer.QuestionID)

	statements := []string{
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`,
			schema.ForumComment.Table, schema.ForumComment.AnswerID, answerIDs),
		fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`,
			schema.ForumAnswerVote.Table, schema.ForumAnswerVote.AnswerID, answerIDs),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.ForumAnswer.Table, schema.ForumAnswer.QuestionID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.ForumQuestionVote.Table, schema.ForumQuestionVote.QuestionID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.ForumQuestionTag.Table, schema.ForumQuestionTag.QuestionID),
	}
	deleteQuestion := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ForumQuestion.Table, schema.ForumQuestion.ID)

	err := postgres.WithinTx(context, repository.db, func(tx pgx.Tx) error {
		for _, statement := range statements {
			if _, err := tx.Exec(context, statement, id); err != nil {
				return err
			}
		}

		commandTag, err := tx.Exec(context, deleteQuestion, id)
		if err != nil {
			return err
		}
		if commandTag.RowsAffected() == 0 {
			// Lost a race against a concurrent delete. Rolling back leaves
			// nothing half-removed.
			return dberr.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, "delete_question")
	}
	return nil
}

// AddQuestionViews folds a buffered view delta into the persisted counter.
func (repository *PostgresRepository) AddQuestionViews(context context.Context, id string, delta int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $2 WHERE %s = $1`,
		schema.ForumQuestion.Table,
		schema.ForumQuestion.Views, schema.ForumQuestion.Views,
		schema.ForumQuestion.ID,
	)

	if _, err := repository.db.Exec(context, query, id, delta); err != nil {
		return dberr.Wrap(err, "add_question_views")
	}
	return nil
}

// # Tag Links

// AttachTag links a tag to a question. Re-attaching an existing link is a
// no-op rather than an error.
func (repository *PostgresRepository) AttachTag(context context.Context, questionID string, tagID int) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.ForumQuestionTag.Table, schema.ForumQuestionTag.QuestionID, schema.ForumQuestionTag.TagID)

	if _, err := repository.db.Exec(context, query, questionID, tagID); err != nil {
		return dberr.Wrap(err, "attach_tag")
	}
	return nil
}

// DetachTag removes a tag link from a question. Detaching an absent link
// is a no-op.
func (repository *PostgresRepository) DetachTag(context context.Context, questionID string, tagID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ForumQuestionTag.Table, schema.ForumQuestionTag.QuestionID, schema.ForumQuestionTag.TagID)

	if _, err := repository.db.Exec(context, query, questionID, tagID); err != nil {
		return dberr.Wrap(err, "detach_tag")
	}
	return nil
}

// tagsForQuestions loads the tag projections for a batch of question ids
// in a single query, keyed by question id.
func (repository *PostgresRepository) tagsForQuestions(context context.Context, questionIDs []string) (map[string][]TagRef, error) {
	query := fmt.Sprintf(
		`SELECT qt.%s, t.%s, t.%s, t.%s
		FROM %s qt JOIN %s t ON t.%s = qt.%s
		WHERE qt.%s = ANY($1::uuid[]) ORDER BY t.%s ASC`,
		schema.ForumQuestionTag.QuestionID, schema.ForumTag.ID, schema.ForumTag.Name, schema.ForumTag.Slug,
		schema.ForumQuestionTag.Table, schema.ForumTag.Table,
		schema.ForumTag.ID, schema.ForumQuestionTag.TagID,
		schema.ForumQuestionTag.QuestionID, schema.ForumTag.Name,
	)

	rows, err := repository.db.Query(context, query, questionIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "load_question_tags")
	}
	defer rows.Close()

	tags := make(map[string][]TagRef)
	for rows.Next() {
		var questionID string
		var tagRef TagRef
		if err := rows.Scan(&questionID, &tagRef.ID, &tagRef.Name, &tagRef.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_question_tag")
		}
		tags[questionID] = append(tags[questionID], tagRef)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "load_question_tags")
	}
	return tags, nil
}
