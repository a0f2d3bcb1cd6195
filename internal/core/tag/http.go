// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

/*
Package tag manages the shared tag vocabulary and its HTTP interface.

# Routing Strategy

  - Public (v1): Listing and slug lookups for all visitors.
  - Restricted (v1): Vocabulary changes require [sec.RoleAdmin].
*/
package tag

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/askora/askora/internal/platform/apperr"
	"github.com/askora/askora/internal/platform/middleware"
	requestutil "github.com/askora/askora/internal/platform/request"
	"github.com/askora/askora/internal/platform/respond"
	"github.com/askora/askora/internal/platform/sec"
)

// Handler implements the HTTP layer for the tag vocabulary.
type Handler struct {
	service *Service
}

// NewHandler constructs a new tag [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the tag endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Vocabulary
	router.Get("/", handler.listTags)
	router.Get("/{slug}", handler.getTag)

	// ## Vocabulary Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createTag)
		admin.Patch("/{id}", handler.renameTag)
		admin.Delete("/{id}", handler.deleteTag)
	})

	return router
}

/*
GET /api/v1/tags.

Response:
  - 200: []Tag: Full vocabulary with usage counts
*/
func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

/*
GET /api/v1/tags/{slug}.

Response:
  - 200: Tag: The resolved tag
  - 404: 404: ErrNotFound: Tag not found
*/
func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	tag, err := handler.service.GetTagBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tag)
}

// tagRequest defines the inbound JSON schema for vocabulary changes.
type tagRequest struct {
	Name string `json:"name"`
}

/*
POST /api/v1/tags.

Response:
  - 201: Tag: The created tag
  - 400: 400: Validation: Missing or oversized name
  - 409: 409: Conflict: Name or slug already taken
*/
func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.CreateTag(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tag)
}

/*
PATCH /api/v1/tags/{id}.

Response:
  - 200: Tag: The renamed tag
  - 404: 404: ErrNotFound: Tag not found
  - 409: 409: Conflict: New name or slug already taken
*/
func (handler *Handler) renameTag(writer http.ResponseWriter, request *http.Request) {
	id, err := idParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.RenameTag(request.Context(), id, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tag)
}

/*
DELETE /api/v1/tags/{id}.

Description: Removes the tag and detaches it from every question. The
questions survive.

Response:
  - 204: No content
  - 404: 404: ErrNotFound: Tag not found
*/
func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	id, err := idParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTag(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func idParam(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Tag id must be an integer")
	}
	return id, nil
}
