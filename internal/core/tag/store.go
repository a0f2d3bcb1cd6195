// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package tag

import "context"

// Repository is the persistence port for the tag vocabulary.
type Repository interface {
	ListTags(context context.Context) ([]*Tag, error)
	GetTagByID(context context.Context, id int) (*Tag, error)
	GetTagBySlug(context context.Context, slug string) (*Tag, error)
	CreateTag(context context.Context, tag *Tag) error
	RenameTag(context context.Context, tag *Tag) error
	DeleteTag(context context.Context, id int) error
}
