// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package tag_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askora/askora/internal/core/tag"
	"github.com/askora/askora/internal/platform/apperr"
	"github.com/askora/askora/internal/platform/dberr"
)

// fakeRepo enforces the same uniqueness the database does: one tag per
// name and one per slug.
type fakeRepo struct {
	tags   map[int]*tag.Tag
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tags: make(map[int]*tag.Tag), nextID: 1}
}

func (repo *fakeRepo) ListTags(_ context.Context) ([]*tag.Tag, error) {
	tags := make([]*tag.Tag, 0, len(repo.tags))
	for _, stored := range repo.tags {
		copied := *stored
		tags = append(tags, &copied)
	}
	return tags, nil
}

func (repo *fakeRepo) GetTagByID(_ context.Context, id int) (*tag.Tag, error) {
	stored, ok := repo.tags[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (repo *fakeRepo) GetTagBySlug(_ context.Context, slug string) (*tag.Tag, error) {
	for _, stored := range repo.tags {
		if stored.Slug == slug {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeRepo) CreateTag(_ context.Context, created *tag.Tag) error {
	for _, stored := range repo.tags {
		if stored.Name == created.Name || stored.Slug == created.Slug {
			return apperr.Conflict("A record with the same identity already exists")
		}
	}
	created.ID = repo.nextID
	repo.nextID++
	copied := *created
	repo.tags[created.ID] = &copied
	return nil
}

func (repo *fakeRepo) RenameTag(_ context.Context, renamed *tag.Tag) error {
	if _, ok := repo.tags[renamed.ID]; !ok {
		return dberr.ErrNotFound
	}
	for id, stored := range repo.tags {
		if id != renamed.ID && (stored.Name == renamed.Name || stored.Slug == renamed.Slug) {
			return apperr.Conflict("A record with the same identity already exists")
		}
	}
	copied := *renamed
	repo.tags[renamed.ID] = &copied
	return nil
}

func (repo *fakeRepo) DeleteTag(_ context.Context, id int) error {
	if _, ok := repo.tags[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.tags, id)
	return nil
}

func newTestService(repo *fakeRepo) *tag.Service {
	return tag.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_CreateTag covers slug derivation and both collision modes:
an exact name duplicate and a slug-level duplicate with a differing name.
*/
func TestService_CreateTag(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.CreateTag(context.Background(), "Memory Management")
	require.NoError(t, err)
	assert.Equal(t, "memory-management", created.Slug)
	assert.NotZero(t, created.ID)

	_, err = service.CreateTag(context.Background(), "Memory Management")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	_, err = service.CreateTag(context.Background(), "memory MANAGEMENT")
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code, "same slug must collide even with a different name")

	_, err = service.CreateTag(context.Background(), "")
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestService_RenameTag verifies the slug follows the name and missing ids
report NotFound.
*/
func TestService_RenameTag(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.CreateTag(context.Background(), "Concurency")
	require.NoError(t, err)

	renamed, err := service.RenameTag(context.Background(), created.ID, "Concurrency")
	require.NoError(t, err)
	assert.Equal(t, "concurrency", renamed.Slug)

	_, err = service.RenameTag(context.Background(), 999, "Whatever")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestService_DeleteTag verifies deletion and its loud repeat.
*/
func TestService_DeleteTag(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.CreateTag(context.Background(), "Go")
	require.NoError(t, err)

	require.NoError(t, service.DeleteTag(context.Background(), created.ID))

	err = service.DeleteTag(context.Background(), created.ID)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)

	_, err = service.GetTagBySlug(context.Background(), "go")
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}
