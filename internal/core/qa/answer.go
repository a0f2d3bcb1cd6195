// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import "time"

// Answer is a reply to a question. QuestionID is assigned at creation and
// never changes; an answer cannot be moved between questions.
type Answer struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Body       string `json:"body"`
	Author     string `json:"author"`
	AuthorID   string `json:"author_id"`

	// Score is the number of currently active votes on the answer.
	Score int `json:"score"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments []*Comment `json:"comments"`
}
