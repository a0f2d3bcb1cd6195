// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package tag

import "time"

// Tag is a shared vocabulary label questions can carry. Tags are global,
// flat, and survive the deletion of every question that carries them.
type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`

	// QuestionCount is the number of questions currently carrying the tag,
	// populated on list reads.
	QuestionCount int `json:"question_count"`
}

// Global field names for validation
const (
	FieldName = "name"
)
