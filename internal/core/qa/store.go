// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"context"
	"errors"
)

// ErrStaleVersion is returned by the body-update methods when the row was
// present at load time but its version no longer matches. The service
// re-resolves it exactly once: vanished row means NotFound, surviving row
// means an edit conflict surfaced to the caller.
var ErrStaleVersion = errors.New("qa: stale version")

// QuestionRepository is the persistence port for questions, including their
// tag links and the cascade that removes a question with all descendants.
type QuestionRepository interface {
	InsertQuestion(context context.Context, question *Question, tagIDs []int) error
	FindQuestionByID(context context.Context, id string) (*Question, error)
	QuestionExists(context context.Context, id string) (bool, error)
	ListQuestions(context context.Context, filter Filter, limit, offset int) ([]*Question, int, error)
	UpdateQuestionBody(context context.Context, id, body string, version int) error
	DeleteQuestionCascade(context context.Context, id string) error
	AddQuestionViews(context context.Context, id string, delta int64) error
	AttachTag(context context.Context, questionID string, tagID int) error
	DetachTag(context context.Context, questionID string, tagID int) error
}

// AnswerRepository is the persistence port for answers and their cascade.
type AnswerRepository interface {
	InsertAnswer(context context.Context, answer *Answer) error
	FindAnswerByID(context context.Context, id string) (*Answer, error)
	AnswerExists(context context.Context, id string) (bool, error)
	UpdateAnswerBody(context context.Context, id, body string, version int) error
	DeleteAnswerCascade(context context.Context, id string) error
}

// CommentRepository is the persistence port for comments. Comments have no
// children, so their delete is a plain row removal.
type CommentRepository interface {
	InsertComment(context context.Context, comment *Comment) error
	FindCommentByID(context context.Context, id string) (*Comment, error)
	UpdateCommentBody(context context.Context, id, body string, version int) error
	DeleteComment(context context.Context, id string) error
}

// VoteLedger toggles a voter's single vote row on a target. Implementations
// must guarantee at most one row per (target, voter) and report the state
// the toggle left behind.
type VoteLedger interface {
	ToggleQuestionVote(context context.Context, questionID, voterID string) (bool, error)
	ToggleAnswerVote(context context.Context, answerID, voterID string) (bool, error)
}
