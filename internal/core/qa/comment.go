// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import "time"

// Comment is a remark on an answer. AnswerID is assigned at creation and
// never changes. Comments are not votable.
type Comment struct {
	ID        string    `json:"id"`
	AnswerID  string    `json:"answer_id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"author_id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
