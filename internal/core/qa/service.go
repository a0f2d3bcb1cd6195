// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/askora/askora/internal/platform/apperr"
	"github.com/askora/askora/internal/platform/dberr"
	"github.com/askora/askora/internal/platform/validate"
	"github.com/askora/askora/pkg/uuid"
)

// Content length caps enforced at the service boundary.
const (
	maxTitleLength     = 300
	maxBodyLength      = 30000
	maxCommentLength   = 5000
	maxTagsPerQuestion = 5
)

// # Service Layer

// Service orchestrates the content lifecycle of the forum. Every mutation
// passes through it: validation first, then the ownership guard, then
// persistence. Handlers never talk to repositories directly.
type Service struct {
	questions QuestionRepository
	answers   AnswerRepository
	comments  CommentRepository
	votes     VoteLedger
	views     ViewCounter
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(
	questions QuestionRepository,
	answers AnswerRepository,
	comments CommentRepository,
	votes VoteLedger,
	views ViewCounter,
	logger *slog.Logger,
) *Service {
	return &Service{
		questions: questions,
		answers:   answers,
		comments:  comments,
		votes:     votes,
		views:     views,
		logger:    logger,
	}
}

// # Question Lookups

/*
GetQuestion fetches a question with its full child graph and records a view.

Description: The detail read eagerly loads tags, answers with their live
vote scores, and every answer's comments. The view bump goes through the
buffered counter; the returned Views merges the persisted column with the
buffer so readers see their own view. A counter outage degrades the number,
never the read.

Parameters:
  - context: context.Context
  - id: string (Question UUID)

Returns:
  - *Question: The hydrated question
  - error: NotFound if no such question exists
*/
func (service *Service) GetQuestion(context context.Context, id string) (*Question, error) {
	question, err := service.questions.FindQuestionByID(context, id)
	if err != nil {
		return nil, remapNotFound(err, KindQuestion)
	}

	pending, err := service.views.Record(context, question.ID)
	if err != nil {
		service.logger.WarnContext(context, "view_record_failed",
			slog.String("question_id", question.ID),
			slog.String("error", err.Error()),
		)
		return question, nil
	}
	question.Views += pending

	return question, nil
}

/*
ListQuestions retrieves a paginated, filtered collection of questions.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for search text, tag, author, sort)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Question: Page of questions with scores, answer counts, and tags
  - int: Total count matching the filter
  - error: Repository level errors
*/
func (service *Service) ListQuestions(context context.Context, filter Filter, limit, offset int) ([]*Question, int, error) {
	return service.questions.ListQuestions(context, filter, limit, offset)
}

// # Content Creation

/*
CreateQuestion posts a new question on behalf of the principal.

Description: The author identity is stamped from the principal exactly once
here; nothing downstream ever rewrites it. Tag links are persisted together
with the question row.

Parameters:
  - context: context.Context
  - principal: Principal (The authenticated author)
  - title: string
  - body: string
  - tagIDs: []int (Existing tag ids to attach, may be empty)

Returns:
  - *Question: The created question, reloaded with its tags
  - error: ValidationError on bad input, NotFound on an unknown tag id
*/
func (service *Service) CreateQuestion(context context.Context, principal Principal, title, body string, tagIDs []int) (*Question, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, maxTitleLength)
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, maxBodyLength)
	validator.Custom(FieldTagIDs, len(tagIDs) > maxTagsPerQuestion, "A question carries at most 5 tags")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	question := &Question{
		ID:        uuid.New(),
		Title:     title,
		Body:      body,
		Author:    principal.Username,
		AuthorID:  principal.ID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.questions.InsertQuestion(context, question, tagIDs); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Tag")
		}
		return nil, err
	}

	service.logger.InfoContext(context, "question_created",
		slog.String("question_id", question.ID),
		slog.String("author_id", principal.ID),
	)

	return service.questions.FindQuestionByID(context, question.ID)
}

/*
CreateAnswer posts a new answer to a question on behalf of the principal.

Description: The parent question id is fixed at creation; answers cannot be
re-parented afterwards. Answering a missing question reports NotFound before
anything is written.

Parameters:
  - context: context.Context
  - principal: Principal (The authenticated author)
  - questionID: string (Parent question UUID)
  - body: string

Returns:
  - *Answer: The created answer
  - error: ValidationError on bad input, NotFound on a missing question
*/
func (service *Service) CreateAnswer(context context.Context, principal Principal, questionID, body string) (*Answer, error) {
	validator := &validate.Validator{}
	validator.UUID("question_id", questionID)
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, maxBodyLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.questions.QuestionExists(context, questionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Question")
	}

	now := time.Now().UTC()
	answer := &Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		Body:       body,
		Author:     principal.Username,
		AuthorID:   principal.ID,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
		Comments:   make([]*Comment, 0),
	}

	if err := service.answers.InsertAnswer(context, answer); err != nil {
		return nil, remapNotFound(err, KindQuestion)
	}

	service.logger.InfoContext(context, "answer_created",
		slog.String("answer_id", answer.ID),
		slog.String("question_id", questionID),
		slog.String("author_id", principal.ID),
	)

	return answer, nil
}

/*
CreateComment posts a new comment on an answer on behalf of the principal.

Parameters:
  - context: context.Context
  - principal: Principal (The authenticated author)
  - answerID: string (Parent answer UUID)
  - body: string

Returns:
  - *Comment: The created comment
  - error: ValidationError on bad input, NotFound on a missing answer
*/
func (service *Service) CreateComment(context context.Context, principal Principal, answerID, body string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.UUID("answer_id", answerID)
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, maxCommentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.answers.AnswerExists(context, answerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Answer")
	}

	now := time.Now().UTC()
	comment := &Comment{
		ID:        uuid.New(),
		AnswerID:  answerID,
		Body:      body,
		Author:    principal.Username,
		AuthorID:  principal.ID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.comments.InsertComment(context, comment); err != nil {
		return nil, remapNotFound(err, KindAnswer)
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("answer_id", answerID),
		slog.String("author_id", principal.ID),
	)

	return comment, nil
}

// # Tag Links

/*
TagQuestion attaches an existing tag to a question. Only the question's
author or an admin may change its tags. Attaching a tag twice is a no-op.
*/
func (service *Service) TagQuestion(context context.Context, principal Principal, questionID string, tagID int) error {
	question, err := service.questions.FindQuestionByID(context, questionID)
	if err != nil {
		return remapNotFound(err, KindQuestion)
	}
	if !CanModify(principal, question.AuthorID) {
		return apperr.Forbidden("You are not allowed to modify this question")
	}

	if err := service.questions.AttachTag(context, questionID, tagID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Tag")
		}
		return err
	}
	return nil
}

/*
UntagQuestion detaches a tag from a question under the same guard as
[Service.TagQuestion]. Detaching an absent link is a no-op.
*/
func (service *Service) UntagQuestion(context context.Context, principal Principal, questionID string, tagID int) error {
	question, err := service.questions.FindQuestionByID(context, questionID)
	if err != nil {
		return remapNotFound(err, KindQuestion)
	}
	if !CanModify(principal, question.AuthorID) {
		return apperr.Forbidden("You are not allowed to modify this question")
	}

	return service.questions.DetachTag(context, questionID, tagID)
}

// remapNotFound renames the generic repository NotFound to the concrete
// resource so clients read "Question not found", not "Resource not found".
func remapNotFound(err error, kind Kind) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound(kind.Label())
	}
	return err
}
