// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package tag

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/askora/askora/internal/platform/apperr"
	"github.com/askora/askora/internal/platform/dberr"
	"github.com/askora/askora/internal/platform/validate"
	"github.com/askora/askora/pkg/slug"
)

const maxNameLength = 60

// Service orchestrates the tag vocabulary. Names are unique, slugs are
// derived from names and unique as well; both collisions surface as 409.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Lookups

// ListTags returns the whole vocabulary with usage counts.
func (service *Service) ListTags(context context.Context) ([]*Tag, error) {
	return service.repo.ListTags(context)
}

// GetTagBySlug resolves a tag by its URL slug.
func (service *Service) GetTagBySlug(context context.Context, tagSlug string) (*Tag, error) {
	tag, err := service.repo.GetTagBySlug(context, tagSlug)
	if err != nil {
		return nil, remapNotFound(err)
	}
	return tag, nil
}

// # Management

/*
CreateTag adds a new tag to the vocabulary.

Description: The slug is always derived from the name; callers cannot pick
one. Both name and slug carry unique constraints, so "Memory Management"
and "memory management" collide on the slug even though the names differ.

Parameters:
  - context: context.Context
  - name: string (Display name)

Returns:
  - *Tag: The created tag with its generated id
  - error: ValidationError on bad input, Conflict on a duplicate
*/
func (service *Service) CreateTag(context context.Context, name string) (*Tag, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag := &Tag{
		Name:      name,
		Slug:      slug.From(name),
		CreatedAt: time.Now().UTC(),
	}

	if err := service.repo.CreateTag(context, tag); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "tag_created",
		slog.Int("tag_id", tag.ID),
		slog.String("slug", tag.Slug),
	)
	return tag, nil
}

/*
RenameTag changes a tag's display name and regenerates its slug. Links to
questions follow the tag id and are unaffected.
*/
func (service *Service) RenameTag(context context.Context, id int, name string) (*Tag, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag, err := service.repo.GetTagByID(context, id)
	if err != nil {
		return nil, remapNotFound(err)
	}

	tag.Name = name
	tag.Slug = slug.From(name)
	if err := service.repo.RenameTag(context, tag); err != nil {
		return nil, remapNotFound(err)
	}
	return tag, nil
}

/*
DeleteTag removes a tag from the vocabulary together with its question
links. The questions themselves stay; content deletion never follows a
vocabulary change.
*/
func (service *Service) DeleteTag(context context.Context, id int) error {
	if err := service.repo.DeleteTag(context, id); err != nil {
		return remapNotFound(err)
	}

	service.logger.InfoContext(context, "tag_deleted", slog.Int("tag_id", id))
	return nil
}

func remapNotFound(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Tag")
	}
	return err
}
