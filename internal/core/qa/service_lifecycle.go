// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"context"
	"errors"
	"log/slog"

	"github.com/askora/askora/internal/platform/apperr"
	"github.com/askora/askora/internal/platform/dberr"
	"github.com/askora/askora/internal/platform/validate"
)

// # Uniform Lifecycle Operations

/*
Edit replaces the body of a question, answer, or comment.

Description: Editing never touches the title, the author stamp, or the
parent link; only the body moves. The stored version is checked on write,
so an edit racing another writer fails cleanly instead of silently
clobbering. A failed version check is re-resolved exactly once: if the row
vanished underneath the editor the caller gets NotFound, otherwise the
conflict is surfaced as-is. There is no automatic retry.

Parameters:
  - context: context.Context
  - principal: Principal (The acting user)
  - kind: Kind (question, answer, or comment)
  - id: string (Target UUID)
  - body: string (Replacement body)

Returns:
  - error: NotFound, Forbidden, ValidationError, or EditConflict
*/
func (service *Service) Edit(context context.Context, principal Principal, kind Kind, id, body string) error {
	maxLength := maxBodyLength
	if kind == KindComment {
		maxLength = maxCommentLength
	}

	validator := &validate.Validator{}
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, maxLength)
	if err := validator.Err(); err != nil {
		return err
	}

	authorID, version, err := service.loadForModify(context, kind, id)
	if err != nil {
		return err
	}
	if !CanModify(principal, authorID) {
		return apperr.Forbidden("You are not allowed to modify this " + string(kind))
	}

	switch kind {
	case KindQuestion:
		err = service.questions.UpdateQuestionBody(context, id, body, version)
	case KindAnswer:
		err = service.answers.UpdateAnswerBody(context, id, body, version)
	case KindComment:
		err = service.comments.UpdateCommentBody(context, id, body, version)
	}

	if errors.Is(err, ErrStaleVersion) {
		return service.resolveStaleEdit(context, kind, id)
	}
	return err
}

/*
Delete removes a question, answer, or comment together with everything
beneath it.

Description: The guard runs against the item as it exists right now. The
cascade is explicit and transactional: a question takes its answers, their
comments, all vote rows, and its tag links; an answer takes its comments
and vote rows; a comment takes only itself. Tags are shared vocabulary and
are never deleted by content removal. Deleting an already-deleted item
reports NotFound, so a repeated delete is loud, not silent.

Parameters:
  - context: context.Context
  - principal: Principal (The acting user)
  - kind: Kind (question, answer, or comment)
  - id: string (Target UUID)

Returns:
  - error: NotFound or Forbidden
*/
func (service *Service) Delete(context context.Context, principal Principal, kind Kind, id string) error {
	authorID, _, err := service.loadForModify(context, kind, id)
	if err != nil {
		return err
	}
	if !CanModify(principal, authorID) {
		return apperr.Forbidden("You are not allowed to delete this " + string(kind))
	}

	switch kind {
	case KindQuestion:
		err = service.questions.DeleteQuestionCascade(context, id)
	case KindAnswer:
		err = service.answers.DeleteAnswerCascade(context, id)
	case KindComment:
		err = service.comments.DeleteComment(context, id)
	}
	if err != nil {
		return remapNotFound(err, kind)
	}

	service.logger.InfoContext(context, "content_deleted",
		slog.String("kind", string(kind)),
		slog.String("id", id),
		slog.String("actor_id", principal.ID),
	)
	return nil
}

/*
Vote toggles the principal's vote on a question or an answer.

Description: The ledger holds at most one row per (target, voter). The
first vote creates it active; every later vote flips it. The returned
state is what this toggle left behind, so a client can render the button
without a follow-up read. Voting carries no ownership check; authors may
vote on their own content.

Parameters:
  - context: context.Context
  - principal: Principal (The voter)
  - kind: Kind (question or answer; comments are not votable)
  - id: string (Target UUID)

Returns:
  - VoteState: Active is true when the vote now counts
  - error: NotFound on a missing target, ValidationError on a bad kind
*/
func (service *Service) Vote(context context.Context, principal Principal, kind Kind, id string) (VoteState, error) {
	var exists bool
	var err error

	switch kind {
	case KindQuestion:
		exists, err = service.questions.QuestionExists(context, id)
	case KindAnswer:
		exists, err = service.answers.AnswerExists(context, id)
	default:
		return VoteState{}, apperr.ValidationError("Only questions and answers accept votes")
	}
	if err != nil {
		return VoteState{}, err
	}
	if !exists {
		return VoteState{}, apperr.NotFound(kind.Label())
	}

	var active bool
	switch kind {
	case KindQuestion:
		active, err = service.votes.ToggleQuestionVote(context, id, principal.ID)
	case KindAnswer:
		active, err = service.votes.ToggleAnswerVote(context, id, principal.ID)
	}
	if err != nil {
		return VoteState{}, remapNotFound(err, kind)
	}

	return VoteState{Active: active}, nil
}

// loadForModify fetches the author stamp and current version of the target,
// mapping a missing row to the kind's NotFound.
func (service *Service) loadForModify(context context.Context, kind Kind, id string) (string, int, error) {
	switch kind {
	case KindQuestion:
		question, err := service.questions.FindQuestionByID(context, id)
		if err != nil {
			return "", 0, remapNotFound(err, kind)
		}
		return question.AuthorID, question.Version, nil
	case KindAnswer:
		answer, err := service.answers.FindAnswerByID(context, id)
		if err != nil {
			return "", 0, remapNotFound(err, kind)
		}
		return answer.AuthorID, answer.Version, nil
	case KindComment:
		comment, err := service.comments.FindCommentByID(context, id)
		if err != nil {
			return "", 0, remapNotFound(err, kind)
		}
		return comment.AuthorID, comment.Version, nil
	default:
		return "", 0, apperr.ValidationError("Unknown content kind")
	}
}

// resolveStaleEdit runs the single re-resolution pass after a version
// mismatch: a vanished row becomes NotFound, a surviving row means a real
// write-write race and stays a conflict.
func (service *Service) resolveStaleEdit(context context.Context, kind Kind, id string) error {
	var exists bool
	var err error

	switch kind {
	case KindQuestion:
		exists, err = service.questions.QuestionExists(context, id)
	case KindAnswer:
		exists, err = service.answers.AnswerExists(context, id)
	case KindComment:
		_, err = service.comments.FindCommentByID(context, id)
		if errors.Is(err, dberr.ErrNotFound) {
			err = nil
		} else if err == nil {
			exists = true
		}
	}
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(kind.Label())
	}
	return apperr.EditConflict(kind.Label())
}
