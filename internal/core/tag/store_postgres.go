// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askora/askora/internal/platform/database/schema"
	"github.com/askora/askora/internal/platform/dberr"
	"github.com/askora/askora/internal/platform/postgres"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListTags returns the whole vocabulary with per-tag usage counts,
// ordered by name.
func (repository *PostgresRepository) ListTags(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(
		`SELECT t.%s, t.%s, t.%s, t.%s,
			(SELECT COUNT(*) FROM %s qt WHERE qt.%s = t.%s) AS question_count
		FROM %s t ORDER BY t.%s ASC`,
		schema.ForumTag.ID, schema.ForumTag.Name, schema.ForumTag.Slug, schema.ForumTag.CreatedAt,
		schema.ForumQuestionTag.Table, schema.ForumQuestionTag.TagID, schema.ForumTag.ID,
		schema.ForumTag.Table, schema.ForumTag.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt, &tag.QuestionCount); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	return tags, nil
}

// GetTagByID fetches a single tag by primary key.
func (repository *PostgresRepository) GetTagByID(context context.Context, id int) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.ForumTag.ID, schema.ForumTag.Name, schema.ForumTag.Slug, schema.ForumTag.CreatedAt,
		schema.ForumTag.Table, schema.ForumTag.ID)

	tag := &Tag{}
	if err := repository.db.QueryRow(context, query, id).Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
		return nil, dberr.Wrap(err, "get_tag")
	}
	return tag, nil
}

// GetTagBySlug fetches a single tag by its URL slug.
func (repository *PostgresRepository) GetTagBySlug(context context.Context, slug string) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.ForumTag.ID, schema.ForumTag.Name, schema.ForumTag.Slug, schema.ForumTag.CreatedAt,
		schema.ForumTag.Table, schema.ForumTag.Slug)

	tag := &Tag{}
	if err := repository.db.QueryRow(context, query, slug).Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
		return nil, dberr.Wrap(err, "get_tag_by_slug")
	}
	return tag, nil
}

// CreateTag inserts a new tag and backfills the generated id. A name or
// slug collision surfaces as CONFLICT through the unique-violation bridge.
func (repository *PostgresRepository) CreateTag(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
		schema.ForumTag.Table,
		schema.ForumTag.Name, schema.ForumTag.Slug, schema.ForumTag.CreatedAt,
		schema.ForumTag.ID)

	if err := repository.db.QueryRow(context, query, tag.Name, tag.Slug, tag.CreatedAt).Scan(&tag.ID); err != nil {
		return dberr.Wrap(err, "create_tag")
	}
	return nil
}

// RenameTag updates a tag's name and slug.
func (repository *PostgresRepository) RenameTag(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.ForumTag.Table,
		schema.ForumTag.Name, schema.ForumTag.Slug,
		schema.ForumTag.ID)

	commandTag, err := repository.db.Exec(context, query, tag.ID, tag.Name, tag.Slug)
	if err != nil {
		return dberr.Wrap(err, "rename_tag")
	}
	if commandTag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// DeleteTag removes a tag and its question links in one transaction.
// Questions carrying the tag are never touched.
func (repository *PostgresRepository) DeleteTag(context context.Context, id int) error {
	deleteLinks := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ForumQuestionTag.Table, schema.ForumQuestionTag.TagID)
	deleteTag := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ForumTag.Table, schema.ForumTag.ID)

	err := postgres.WithinTx(context, repository.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, deleteLinks, id); err != nil {
			return err
		}

		commandTag, err := tx.Exec(context, deleteTag, id)
		if err != nil {
			return err
		}
		if commandTag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}
	return nil
}
