// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"net/http"

	requestutil "github.com/askora/askora/internal/platform/request"
	"github.com/askora/askora/internal/platform/respond"
)

// # Answer Endpoints

// createAnswerRequest defines the inbound JSON schema for posting an answer.
type createAnswerRequest struct {
	Body string `json:"body"`
}

/*
POST /api/v1/questions/{id}/answers.

Description: Posts a new answer to the question as the authenticated user.
The parent question is fixed for the answer's lifetime.

Request (Body):
  - createAnswerRequest: JSON object

Response:
  - 201: Answer: The created answer
  - 400: 400: Validation: Missing body
  - 404: 404: ErrNotFound: Question not found
*/
func (handler *Handler) createAnswer(writer http.ResponseWriter, request *http.Request) {
	actor, err := principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createAnswerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	answer, err := handler.service.CreateAnswer(request.Context(), actor, requestutil.ID(request, "id"), input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, answer)
}

/*
PATCH /api/v1/answers/{id}.

Response:
  - 204: No content
  - 403: 403: ErrForbidden: Not the author and not an admin
  - 404: 404: ErrNotFound: Answer not found
  - 409: 409: EditConflict: A concurrent edit won the race
*/
func (handler *Handler) editAnswer(writer http.ResponseWriter, request *http.Request) {
	handler.edit(writer, request, KindAnswer)
}

/*
DELETE /api/v1/answers/{id}.

Description: Removes the answer with its comments and vote rows. The parent
question is untouched.

Response:
  - 204: No content
  - 403: 403: ErrForbidden: Not the author and not an admin
  - 404: 404: ErrNotFound: Answer not found (including repeat deletes)
*/
func (handler *Handler) deleteAnswer(writer http.ResponseWriter, request *http.Request) {
	handler.remove(writer, request, KindAnswer)
}

/*
POST /api/v1/answers/{id}/votes.

Response:
  - 200: VoteState: {"active": bool}
  - 404: 404: ErrNotFound: Answer not found
*/
func (handler *Handler) voteAnswer(writer http.ResponseWriter, request *http.Request) {
	handler.vote(writer, request, KindAnswer)
}

// # Comment Endpoints

// createCommentRequest defines the inbound JSON schema for posting a comment.
type createCommentRequest struct {
	Body string `json:"body"`
}

/*
POST /api/v1/answers/{id}/comments.

Description: Posts a new comment on the answer as the authenticated user.
The parent answer is fixed for the comment's lifetime.

Response:
  - 201: Comment: The created comment
  - 400: 400: Validation: Missing body
  - 404: 404: ErrNotFound: Answer not found
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	actor, err := principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), actor, requestutil.ID(request, "id"), input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
PATCH /api/v1/comments/{id}.

Response:
  - 204: No content
  - 403: 403: ErrForbidden: Not the author and not an admin
  - 404: 404: ErrNotFound: Comment not found
  - 409: 409: EditConflict: A concurrent edit won the race
*/
func (handler *Handler) editComment(writer http.ResponseWriter, request *http.Request) {
	handler.edit(writer, request, KindComment)
}

/*
DELETE /api/v1/comments/{id}.

Response:
  - 204: No content
  - 403: 403: ErrForbidden: Not the author and not an admin
  - 404: 404: ErrNotFound: Comment not found (including repeat deletes)
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	handler.remove(writer, request, KindComment)
}
