// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askora/askora/internal/core/qa"
	"github.com/askora/askora/internal/platform/apperr"
	"github.com/askora/askora/internal/platform/sec"
)

var (
	alice = qa.Principal{ID: "user-alice", Username: "alice", Role: sec.RoleMember}
	bob   = qa.Principal{ID: "user-bob", Username: "bob", Role: sec.RoleMember}
	carol = qa.Principal{ID: "user-carol", Username: "carol", Role: sec.RoleMember}
	admin = qa.Principal{ID: "user-admin", Username: "admin", Role: sec.RoleAdmin}
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.Code
}

/*
TestService_CreateQuestion_StampsAuthor verifies that the author identity
and creation stamp are fixed from the principal at creation time, and that
tag ids must reference existing tags.
*/
func TestService_CreateQuestion_StampsAuthor(t *testing.T) {
	store := newFakeStore()
	store.knownTags[1] = qa.TagRef{ID: 1, Name: "go", Slug: "go"}
	service := newTestService(store, newFakeViews())

	question, err := service.CreateQuestion(context.Background(), alice, "How do slices grow?", "Details inside.", []int{1})
	require.NoError(t, err)

	assert.Equal(t, "alice", question.Author)
	assert.Equal(t, alice.ID, question.AuthorID)
	assert.Equal(t, 1, question.Version)
	assert.NotEmpty(t, question.ID)
	require.Len(t, question.Tags, 1)
	assert.Equal(t, "go", question.Tags[0].Slug)

	_, err = service.CreateQuestion(context.Background(), alice, "Another", "Body", []int{99})
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

/*
TestService_Edit_Guard verifies the ownership rule on edits: a stranger's
attempt fails with Forbidden and leaves the body byte-identical, the author
and an admin both succeed, and neither touches the title or author stamp.
*/
func TestService_Edit_Guard(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())

	question, err := service.CreateQuestion(context.Background(), alice, "Original title", "Original body", nil)
	require.NoError(t, err)

	err = service.Edit(context.Background(), carol, qa.KindQuestion, question.ID, "carol was here")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
	assert.Equal(t, "Original body", store.questions[question.ID].Body)
	assert.Equal(t, 1, store.questions[question.ID].Version)

	require.NoError(t, service.Edit(context.Background(), alice, qa.KindQuestion, question.ID, "author edit"))
	assert.Equal(t, "author edit", store.questions[question.ID].Body)
	assert.Equal(t, 2, store.questions[question.ID].Version)

	require.NoError(t, service.Edit(context.Background(), admin, qa.KindQuestion, question.ID, "admin edit"))
	assert.Equal(t, "admin edit", store.questions[question.ID].Body)

	// Title and author stamp never move through edits.
	assert.Equal(t, "Original title", store.questions[question.ID].Title)
	assert.Equal(t, alice.ID, store.questions[question.ID].AuthorID)
}

/*
TestService_Edit_Validation verifies that an empty replacement body is
rejected with field details before anything is written.
*/
func TestService_Edit_Validation(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())

	question, err := service.CreateQuestion(context.Background(), alice, "Title", "Body", nil)
	require.NoError(t, err)

	err = service.Edit(context.Background(), alice, qa.KindQuestion, question.ID, "   ")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	require.NotEmpty(t, appError.Details)
	assert.Equal(t, "body", appError.Details[0].Field)
	assert.Equal(t, "Body", store.questions[question.ID].Body)
}

/*
TestService_Edit_ConflictResolution verifies the single re-resolution pass
after a missed version check: a surviving row surfaces the conflict, a
vanished row becomes NotFound. No retry happens either way.
*/
func TestService_Edit_ConflictResolution(t *testing.T) {
	t.Run("row_survives", func(t *testing.T) {
		store := newFakeStore()
		service := newTestService(store, newFakeViews())

		question, err := service.CreateQuestion(context.Background(), alice, "Title", "Body", nil)
		require.NoError(t, err)

		store.failUpdate = "stale"
		err = service.Edit(context.Background(), alice, qa.KindQuestion, question.ID, "new body")
		assert.Equal(t, "EDIT_CONFLICT", errCode(t, err))
		assert.Equal(t, "Body", store.questions[question.ID].Body)
	})

	t.Run("row_vanished", func(t *testing.T) {
		store := newFakeStore()
		service := newTestService(store, newFakeViews())

		question, err := service.CreateQuestion(context.Background(), alice, "Title", "Body", nil)
		require.NoError(t, err)

		store.failUpdate = "vanish"
		err = service.Edit(context.Background(), alice, qa.KindQuestion, question.ID, "new body")
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

/*
TestService_Vote_Alternation verifies strict toggle semantics: repeated
votes by the same voter alternate active/inactive while the ledger never
grows past one row for the pair. Self-votes are allowed.
*/
func TestService_Vote_Alternation(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())

	question, err := service.CreateQuestion(context.Background(), alice, "Title", "Body", nil)
	require.NoError(t, err)

	expected := []bool{true, false, true, false, true}
	for i, want := range expected {
		state, err := service.Vote(context.Background(), bob, qa.KindQuestion, question.ID)
		require.NoError(t, err)
		assert.Equal(t, want, state.Active, "toggle %d", i+1)
		assert.Len(t, store.questionVotes, 1, "ledger must stay a single row")
	}

	// The author voting their own question is a second ledger row, not an error.
	state, err := service.Vote(context.Background(), alice, qa.KindQuestion, question.ID)
	require.NoError(t, err)
	assert.True(t, state.Active)
	assert.Len(t, store.questionVotes, 2)
}

/*
TestService_Vote_Targets verifies that voting checks target existence
before touching the ledger, and that comments reject votes outright.
*/
func TestService_Vote_Targets(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())

	_, err := service.Vote(context.Background(), bob, qa.KindQuestion, "019522ad-0000-7000-8000-000000000000")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
	assert.Empty(t, store.questionVotes)

	_, err = service.Vote(context.Background(), bob, qa.KindComment, "irrelevant")
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, err))
}

// buildThread posts a question by alice with one answer each from bob and
// alice, a comment on bob's answer, and votes from all three users.
func buildThread(t *testing.T, service *qa.Service) (questionID, bobAnswerID string) {
	t.Helper()
	background := context.Background()

	question, err := service.CreateQuestion(background, alice, "Thread", "Thread body", nil)
	require.NoError(t, err)

	bobAnswer, err := service.CreateAnswer(background, bob, question.ID, "Bob's answer")
	require.NoError(t, err)
	aliceAnswer, err := service.CreateAnswer(background, alice, question.ID, "Alice's answer")
	require.NoError(t, err)

	_, err = service.CreateComment(background, alice, bobAnswer.ID, "Thanks!")
	require.NoError(t, err)
	_, err = service.CreateComment(background, carol, aliceAnswer.ID, "Hm.")
	require.NoError(t, err)

	for _, voter := range []qa.Principal{alice, bob, carol} {
		_, err = service.Vote(background, voter, qa.KindQuestion, question.ID)
		require.NoError(t, err)
		_, err = service.Vote(background, voter, qa.KindAnswer, bobAnswer.ID)
		require.NoError(t, err)
	}

	return question.ID, bobAnswer.ID
}

/*
TestService_DeleteQuestion_Cascade exercises the full cascade: an admin
removing a question takes its answers, their comments, every vote row, and
its tag links, while an unrelated question's content stays byte-untouched
and the tag vocabulary survives.
*/
func TestService_DeleteQuestion_Cascade(t *testing.T) {
	store := newFakeStore()
	store.knownTags[1] = qa.TagRef{ID: 1, Name: "go", Slug: "go"}
	service := newTestService(store, newFakeViews())
	background := context.Background()

	questionID, _ := buildThread(t, service)
	require.NoError(t, service.TagQuestion(background, alice, questionID, 1))

	// Unrelated content that must survive.
	other, err := service.CreateQuestion(background, carol, "Other", "Other body", []int{1})
	require.NoError(t, err)
	otherAnswer, err := service.CreateAnswer(background, carol, other.ID, "Other answer")
	require.NoError(t, err)
	_, err = service.CreateComment(background, bob, otherAnswer.ID, "Other comment")
	require.NoError(t, err)
	_, err = service.Vote(background, bob, qa.KindQuestion, other.ID)
	require.NoError(t, err)
	_, err = service.Vote(background, alice, qa.KindAnswer, otherAnswer.ID)
	require.NoError(t, err)

	// A bystander cannot delete someone else's question.
	err = service.Delete(background, bob, qa.KindQuestion, questionID)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
	assert.Contains(t, store.questions, questionID)

	// The admin can, and the cascade takes exactly the thread.
	require.NoError(t, service.Delete(background, admin, qa.KindQuestion, questionID))

	assert.NotContains(t, store.questions, questionID)
	assert.Len(t, store.questions, 1)
	assert.Len(t, store.answers, 1)
	assert.Len(t, store.comments, 1)
	assert.Len(t, store.questionVotes, 1)
	assert.Len(t, store.answerVotes, 1)
	assert.NotContains(t, store.tagLinks, questionID)

	// Tags are shared vocabulary; deleting tagged content never deletes them.
	assert.Contains(t, store.knownTags, 1)
	assert.True(t, store.tagLinks[other.ID][1])

	assert.Equal(t, "Other body", store.questions[other.ID].Body)
	assert.Equal(t, "Other answer", store.answers[otherAnswer.ID].Body)
}

/*
TestService_DeleteAnswer_Cascade verifies that removing an answer takes its
comments and vote rows but leaves the parent question and sibling answers
in place.
*/
func TestService_DeleteAnswer_Cascade(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())
	background := context.Background()

	questionID, bobAnswerID := buildThread(t, service)

	require.NoError(t, service.Delete(background, bob, qa.KindAnswer, bobAnswerID))

	assert.Contains(t, store.questions, questionID)
	assert.NotContains(t, store.answers, bobAnswerID)
	assert.Len(t, store.answers, 1, "sibling answer survives")
	assert.Len(t, store.comments, 1, "only the deleted answer's comment is gone")
	assert.Empty(t, store.answerVotes)
	assert.Len(t, store.questionVotes, 3, "question votes are untouched")
}

/*
TestService_Delete_Idempotence verifies that deletion is not silently
idempotent: the second delete of the same item reports NotFound.
*/
func TestService_Delete_Idempotence(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())
	background := context.Background()

	question, err := service.CreateQuestion(background, alice, "Title", "Body", nil)
	require.NoError(t, err)
	answer, err := service.CreateAnswer(background, bob, question.ID, "Answer")
	require.NoError(t, err)
	comment, err := service.CreateComment(background, carol, answer.ID, "Comment")
	require.NoError(t, err)

	require.NoError(t, service.Delete(background, carol, qa.KindComment, comment.ID))
	err = service.Delete(background, carol, qa.KindComment, comment.ID)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))

	require.NoError(t, service.Delete(background, alice, qa.KindQuestion, question.ID))
	err = service.Delete(background, alice, qa.KindQuestion, question.ID)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))

	// The answer went with the question's cascade.
	err = service.Delete(background, bob, qa.KindAnswer, answer.ID)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

/*
TestService_GetQuestion verifies the detail read: the full child graph is
loaded and every read bumps the buffered view counter.
*/
func TestService_GetQuestion(t *testing.T) {
	store := newFakeStore()
	views := newFakeViews()
	service := newTestService(store, views)
	background := context.Background()

	questionID, bobAnswerID := buildThread(t, service)

	question, err := service.GetQuestion(background, questionID)
	require.NoError(t, err)

	require.Len(t, question.Answers, 2)
	assert.Equal(t, bobAnswerID, question.Answers[0].ID)
	require.Len(t, question.Answers[0].Comments, 1)
	assert.Equal(t, 3, question.Score, "three active question votes")
	assert.Equal(t, 3, question.Answers[0].Score)
	assert.Equal(t, int64(1), question.Views)

	again, err := service.GetQuestion(background, questionID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.Views)

	_, err = service.GetQuestion(background, "019522ad-0000-7000-8000-000000000001")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

/*
TestService_CreateAnswer_MissingQuestion verifies parent existence checks
run before any write for answers and comments.
*/
func TestService_CreateAnswer_MissingQuestion(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, newFakeViews())
	background := context.Background()

	_, err := service.CreateAnswer(background, bob, "019522ad-0000-7000-8000-000000000002", "Answer")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
	assert.Empty(t, store.answers)

	_, err = service.CreateComment(background, bob, "019522ad-0000-7000-8000-000000000003", "Comment")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
	assert.Empty(t, store.comments)
}
