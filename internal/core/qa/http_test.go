// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askora/askora/internal/core/qa"
	"github.com/askora/askora/internal/platform/ctxutil"
	"github.com/askora/askora/internal/platform/sec"
)

// asUser attaches verified claims to the request, standing in for the
// Authenticate middleware.
func asUser(request *http.Request, principal qa.Principal) *http.Request {
	claims := &sec.AuthClaims{
		UserID:   principal.ID,
		Username: principal.Username,
		Role:     string(principal.Role),
	}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

/*
TestHandler_AuthGating verifies that discovery stays public while every
mutation demands authentication, with errors in the standard envelope.
*/
func TestHandler_AuthGating(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())
	router := qa.NewHandler(service).QuestionRoutes()

	t.Run("public_list", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data []json.RawMessage `json:"data"`
			Meta struct {
				Total int `json:"total"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, 0, envelope.Meta.Total)
	})

	t.Run("anonymous_post_rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := strings.NewReader(`{"title":"T","body":"B"}`)
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", body))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var envelope struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "UNAUTHORIZED", envelope.Code)
		assert.Empty(t, store.questions, "nothing may be written")
	})

	t.Run("authenticated_post", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := strings.NewReader(`{"title":"How do channels close?","body":"Long story."}`)
		request := asUser(httptest.NewRequest(http.MethodPost, "/", body), alice)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var envelope struct {
			Data qa.Question `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "alice", envelope.Data.Author)
		assert.Equal(t, alice.ID, envelope.Data.AuthorID)
	})
}

/*
TestHandler_ErrorMapping verifies the HTTP face of the error taxonomy:
forbidden edits are clean 403s, missing targets clean 404s, bad payloads
400s with field details. None of them surface as 500.
*/
func TestHandler_ErrorMapping(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())
	handler := qa.NewHandler(service)
	questions := handler.QuestionRoutes()

	seed, err := service.CreateQuestion(context.Background(), alice, "Seed", "Seed body", nil)
	require.NoError(t, err)

	t.Run("forbidden_edit_is_403", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := strings.NewReader(`{"body":"hijack"}`)
		request := asUser(httptest.NewRequest(http.MethodPatch, "/"+seed.ID, body), carol)
		questions.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("missing_question_is_404", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/019522ad-0000-7000-8000-00000000ffff", nil)
		questions.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var envelope struct {
			Code  string `json:"code"`
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "NOT_FOUND", envelope.Code)
		assert.Equal(t, "Question not found", envelope.Error)
	})

	t.Run("invalid_payload_is_400", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := strings.NewReader(`{"title":"","body":""}`)
		request := asUser(httptest.NewRequest(http.MethodPost, "/", body), alice)
		questions.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var envelope struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
		assert.NotEmpty(t, envelope.Details)
	})

	t.Run("vote_toggle_roundtrip", func(t *testing.T) {
		for _, want := range []bool{true, false} {
			recorder := httptest.NewRecorder()
			request := asUser(httptest.NewRequest(http.MethodPost, "/"+seed.ID+"/votes", nil), bob)
			questions.ServeHTTP(recorder, request)

			require.Equal(t, http.StatusOK, recorder.Code)

			var envelope struct {
				Data qa.VoteState `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, want, envelope.Data.Active)
		}
	})
}
