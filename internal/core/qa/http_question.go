// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"net/http"

	requestutil "github.com/askora/askora/internal/platform/request"
	"github.com/askora/askora/internal/platform/respond"
	"github.com/askora/askora/pkg/pagination"
)

// # Question Endpoints

/*
GET /api/v1/questions.

Description: Retrieves a paginated list of questions with vote scores,
answer counts, and tags. Answers are not included; fetch a question by id
for the full thread.

Request:
  - q: string (Substring search against titles)
  - tag: string (Tag slug filter)
  - author: string (Author user id filter)
  - sort: string (latest, views, score)
  - limit: int
  - page: int

Response:
  - 200: []Question: Paginated list of questions
*/
func (handler *Handler) listQuestions(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	questions, total, err := handler.service.ListQuestions(request.Context(), listFilter(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, questions, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/questions/{id}.

Description: Retrieves the full thread for a question: tags, answers with
their vote scores, and each answer's comments. Reading the detail records
a view.

Response:
  - 200: Question: The hydrated question
  - 404: 404: ErrNotFound: Question not found
*/
func (handler *Handler) getQuestion(writer http.ResponseWriter, request *http.Request) {
	question, err := handler.service.GetQuestion(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, question)
}

// createQuestionRequest defines the inbound JSON schema for posting a question.
type createQuestionRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	TagIDs []int  `json:"tag_ids"`
}

/*
POST /api/v1/questions.

Description: Posts a new question as the authenticated user. The author
stamp is taken from the verified token, never from the payload.

Request (Body):
  - createQuestionRequest: JSON object

Response:
  - 201: Question: The created question with its tags
  - 400: 400: Validation: Missing title/body or too many tags
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 404: 404: ErrNotFound: A tag id references no tag
*/
func (handler *Handler) createQuestion(writer http.ResponseWriter, request *http.Request) {
	actor, err := principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createQuestionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	question, err := handler.service.CreateQuestion(request.Context(), actor, input.Title, input.Body, input.TagIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, question)
}

/*
PATCH /api/v1/questions/{id}.

Description: Replaces the question body. Title, author, and creation stamp
are immutable. Only the author or an admin may edit.

Response:
  - 204: No content
  - 403: 403: ErrForbidden: Not the author and not an admin
  - 404: 404: ErrNotFound: Question not found
  - 409: 409: EditConflict: A concurrent edit won the race
*/
func (handler *Handler) editQuestion(writer http.ResponseWriter, request *http.Request) {
	handler.edit(writer, request, KindQuestion)
}

/*
DELETE /api/v1/questions/{id}.

Description: Removes the question with all its answers, their comments,
every related vote row, and its tag links. Tags themselves survive.

Response:
  - 204: No content
  - 403: 403: ErrForbidden: Not the author and not an admin
  - 404: 404: ErrNotFound: Question not found (including repeat deletes)
*/
func (handler *Handler) deleteQuestion(writer http.ResponseWriter, request *http.Request) {
	handler.remove(writer, request, KindQuestion)
}

/*
POST /api/v1/questions/{id}/votes.

Description: Toggles the caller's vote on the question and returns the
resulting state.

Response:
  - 200: VoteState: {"active": bool}
  - 404: 404: ErrNotFound: Question not found
*/
func (handler *Handler) voteQuestion(writer http.ResponseWriter, request *http.Request) {
	handler.vote(writer, request, KindQuestion)
}

/*
PUT /api/v1/questions/{id}/tags/{tagID}.

Description: Attaches an existing tag to the question. Idempotent. Only the
question's author or an admin may change its tags.

Response:
  - 204: No content
  - 403: 403: ErrForbidden: Not the author and not an admin
  - 404: 404: ErrNotFound: Question or tag not found
*/
func (handler *Handler) tagQuestion(writer http.ResponseWriter, request *http.Request) {
	actor, err := principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tagID, err := tagIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.TagQuestion(request.Context(), actor, requestutil.ID(request, "id"), tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/questions/{id}/tags/{tagID}.

Description: Detaches a tag from the question. Idempotent.

Response:
  - 204: No content
  - 403: 403: ErrForbidden: Not the author and not an admin
  - 404: 404: ErrNotFound: Question not found
*/
func (handler *Handler) untagQuestion(writer http.ResponseWriter, request *http.Request) {
	actor, err := principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tagID, err := tagIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UntagQuestion(request.Context(), actor, requestutil.ID(request, "id"), tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
