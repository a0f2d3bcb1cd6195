// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

/*
Package qa HTTP layer.

# Routing Strategy

  - Public (v1): Question discovery endpoints accessible to all visitors.
  - Restricted (v1): Every mutation requires authentication; ownership is
    enforced in the [Service], not in routing, so a forbidden edit is a
    clean 403 and never a routing concern.

The handler translates between the web/JSON layer and the domain [Service].
*/
package qa

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/askora/askora/internal/platform/apperr"
	"github.com/askora/askora/internal/platform/middleware"
	requestutil "github.com/askora/askora/internal/platform/request"
	"github.com/askora/askora/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for forum content.
type Handler struct {
	service *Service
}

// NewHandler constructs a new qa [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// QuestionRoutes returns a [chi.Router] for the /questions subtree.
func (handler *Handler) QuestionRoutes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listQuestions)
	router.Get("/{id}", handler.getQuestion)

	// ## Authenticated Mutations
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.createQuestion)
		authed.Patch("/{id}", handler.editQuestion)
		authed.Delete("/{id}", handler.deleteQuestion)
		authed.Post("/{id}/votes", handler.voteQuestion)
		authed.Post("/{id}/answers", handler.createAnswer)

		// Tag links
		authed.Put("/{id}/tags/{tagID}", handler.tagQuestion)
		authed.Delete("/{id}/tags/{tagID}", handler.untagQuestion)
	})

	return router
}

// AnswerRoutes returns a [chi.Router] for the /answers subtree. Answers are
// read through their question, so every endpoint here mutates.
func (handler *Handler) AnswerRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Patch("/{id}", handler.editAnswer)
		authed.Delete("/{id}", handler.deleteAnswer)
		authed.Post("/{id}/votes", handler.voteAnswer)
		authed.Post("/{id}/comments", handler.createComment)
	})

	return router
}

// CommentRoutes returns a [chi.Router] for the /comments subtree.
func (handler *Handler) CommentRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Patch("/{id}", handler.editComment)
		authed.Delete("/{id}", handler.deleteComment)
	})

	return router
}

// # Shared Helpers

// principal extracts the acting user from the request context. Routes that
// reach this are behind RequireAuth, so a missing principal is a 401 from
// a misconfigured chain, not a user error.
func principal(request *http.Request) (Principal, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return Principal{}, err
	}
	return PrincipalFromClaims(claims), nil
}

// tagIDParam parses the {tagID} route parameter.
func tagIDParam(request *http.Request) (int, error) {
	tagID, err := strconv.Atoi(requestutil.Param(request, "tagID"))
	if err != nil {
		return 0, apperr.ValidationError("Tag id must be an integer")
	}
	return tagID, nil
}

// edit funnels the three PATCH endpoints through the uniform lifecycle op.
func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request, kind Kind) {
	actor, err := principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input editRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Edit(request.Context(), actor, kind, requestutil.ID(request, "id"), input.Body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// remove funnels the three DELETE endpoints through the uniform lifecycle op.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request, kind Kind) {
	actor, err := principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actor, kind, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// vote funnels the two vote endpoints through the uniform lifecycle op.
func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request, kind Kind) {
	actor, err := principal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.Vote(request.Context(), actor, kind, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}

// # Request Payloads

// editRequest defines the inbound JSON schema shared by every edit endpoint.
type editRequest struct {
	Body string `json:"body"`
}

// listFilter builds the question [Filter] from query parameters.
func listFilter(request *http.Request) Filter {
	queryParams := request.URL.Query()
	return Filter{
		Query:    queryParams.Get("q"),
		TagSlug:  queryParams.Get("tag"),
		AuthorID: queryParams.Get("author"),
		Sort:     queryParams.Get("sort"),
	}
}
