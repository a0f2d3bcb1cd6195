// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import "time"

// Question is the root content entity. Answers hang off questions and are
// loaded eagerly on detail reads; the slice stays nil on list reads.
type Question struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Author   string `json:"author"`
	AuthorID string `json:"author_id"`

	// Views is the persisted counter plus any buffered delta at read time.
	Views int64 `json:"views"`

	// Score is the number of currently active votes on the question.
	Score int `json:"score"`

	// AnswerCount is populated on list reads where answers are not loaded.
	AnswerCount int `json:"answer_count"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tags    []TagRef  `json:"tags"`
	Answers []*Answer `json:"answers,omitempty"`
}

// TagRef is the lightweight projection of a tag attached to a question.
// Tag management itself lives in the tag domain.
type TagRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter holds the parameters for a paginated question search.
type Filter struct {
	Query    string // Substring match against title
	TagSlug  string // Restrict to questions carrying the tag
	AuthorID string // Restrict to a single author
	Sort     string // latest (default), views, score
}
