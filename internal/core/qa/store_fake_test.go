// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/askora/askora/internal/core/qa"
	"github.com/askora/askora/internal/platform/dberr"
)

// fakeStore is an in-memory stand-in for the Postgres repository. It honors
// the same contracts: generic NotFound for missing rows, ErrStaleVersion on
// a missed version check, at most one vote row per (target, voter).
type fakeStore struct {
	questions     map[string]*qa.Question
	answers       map[string]*qa.Answer
	comments      map[string]*qa.Comment
	questionVotes map[string]bool
	answerVotes   map[string]bool
	tagLinks      map[string]map[int]bool
	knownTags     map[int]qa.TagRef

	// failUpdate forces the next body update to report a stale version:
	// "stale" keeps the row, "vanish" deletes it first.
	failUpdate string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions:     make(map[string]*qa.Question),
		answers:       make(map[string]*qa.Answer),
		comments:      make(map[string]*qa.Comment),
		questionVotes: make(map[string]bool),
		answerVotes:   make(map[string]bool),
		tagLinks:      make(map[string]map[int]bool),
		knownTags:     make(map[int]qa.TagRef),
	}
}

func voteKey(targetID, voterID string) string {
	return targetID + "|" + voterID
}

func countActive(votes map[string]bool, targetID string) int {
	active := 0
	for key, isActive := range votes {
		if strings.HasPrefix(key, targetID+"|") && isActive {
			active++
		}
	}
	return active
}

// # QuestionRepository

func (store *fakeStore) InsertQuestion(_ context.Context, question *qa.Question, tagIDs []int) error {
	for _, tagID := range tagIDs {
		if _, ok := store.knownTags[tagID]; !ok {
			return dberr.ErrNotFound
		}
	}

	stored := *question
	store.questions[question.ID] = &stored

	links := make(map[int]bool)
	for _, tagID := range tagIDs {
		links[tagID] = true
	}
	store.tagLinks[question.ID] = links
	return nil
}

func (store *fakeStore) FindQuestionByID(_ context.Context, id string) (*qa.Question, error) {
	stored, ok := store.questions[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}

	question := *stored
	question.Score = countActive(store.questionVotes, id)
	question.Tags = store.tagRefs(id)
	question.Answers = store.answersOf(id)
	question.AnswerCount = len(question.Answers)
	return &question, nil
}

func (store *fakeStore) QuestionExists(_ context.Context, id string) (bool, error) {
	_, ok := store.questions[id]
	return ok, nil
}

func (store *fakeStore) ListQuestions(_ context.Context, filter qa.Filter, limit, offset int) ([]*qa.Question, int, error) {
	matched := make([]*qa.Question, 0)
	for _, stored := range store.questions {
		if filter.Query != "" && !strings.Contains(strings.ToLower(stored.Title), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.AuthorID != "" && stored.AuthorID != filter.AuthorID {
			continue
		}
		question := *stored
		question.Score = countActive(store.questionVotes, stored.ID)
		question.Tags = store.tagRefs(stored.ID)
		question.AnswerCount = len(store.answersOf(stored.ID))
		matched = append(matched, &question)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []*qa.Question{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (store *fakeStore) UpdateQuestionBody(_ context.Context, id, body string, version int) error {
	switch store.failUpdate {
	case "stale":
		store.failUpdate = ""
		return qa.ErrStaleVersion
	case "vanish":
		store.failUpdate = ""
		delete(store.questions, id)
		return qa.ErrStaleVersion
	}

	stored, ok := store.questions[id]
	if !ok || stored.Version != version {
		return qa.ErrStaleVersion
	}
	stored.Body = body
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (store *fakeStore) DeleteQuestionCascade(_ context.Context, id string) error {
	if _, ok := store.questions[id]; !ok {
		return dberr.ErrNotFound
	}

	for answerID, answer := range store.answers {
		if answer.QuestionID != id {
			continue
		}
		for commentID, comment := range store.comments {
			if comment.AnswerID == answerID {
				delete(store.comments, commentID)
			}
		}
		for key := range store.answerVotes {
			if strings.HasPrefix(key, answerID+"|") {
				delete(store.answerVotes, key)
			}
		}
		delete(store.answers, answerID)
	}
	for key := range store.questionVotes {
		if strings.HasPrefix(key, id+"|") {
			delete(store.questionVotes, key)
		}
	}
	delete(store.tagLinks, id)
	delete(store.questions, id)
	return nil
}

func (store *fakeStore) AddQuestionViews(_ context.Context, id string, delta int64) error {
	if stored, ok := store.questions[id]; ok {
		stored.Views += delta
	}
	return nil
}

func (store *fakeStore) AttachTag(_ context.Context, questionID string, tagID int) error {
	if _, ok := store.knownTags[tagID]; !ok {
		return dberr.ErrNotFound
	}
	if store.tagLinks[questionID] == nil {
		store.tagLinks[questionID] = make(map[int]bool)
	}
	store.tagLinks[questionID][tagID] = true
	return nil
}

func (store *fakeStore) DetachTag(_ context.Context, questionID string, tagID int) error {
	delete(store.tagLinks[questionID], tagID)
	return nil
}

// # AnswerRepository

func (store *fakeStore) InsertAnswer(_ context.Context, answer *qa.Answer) error {
	if _, ok := store.questions[answer.QuestionID]; !ok {
		return dberr.ErrNotFound
	}
	stored := *answer
	store.answers[answer.ID] = &stored
	return nil
}

func (store *fakeStore) FindAnswerByID(_ context.Context, id string) (*qa.Answer, error) {
	stored, ok := store.answers[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	answer := *stored
	answer.Score = countActive(store.answerVotes, id)
	answer.Comments = store.commentsOf(id)
	return &answer, nil
}

func (store *fakeStore) AnswerExists(_ context.Context, id string) (bool, error) {
	_, ok := store.answers[id]
	return ok, nil
}

func (store *fakeStore) UpdateAnswerBody(_ context.Context, id, body string, version int) error {
	stored, ok := store.answers[id]
	if !ok || stored.Version != version {
		return qa.ErrStaleVersion
	}
	stored.Body = body
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (store *fakeStore) DeleteAnswerCascade(_ context.Context, id string) error {
	if _, ok := store.answers[id]; !ok {
		return dberr.ErrNotFound
	}
	for commentID, comment := range store.comments {
		if comment.AnswerID == id {
			delete(store.comments, commentID)
		}
	}
	for key := range store.answerVotes {
		if strings.HasPrefix(key, id+"|") {
			delete(store.answerVotes, key)
		}
	}
	delete(store.answers, id)
	return nil
}

// # CommentRepository

func (store *fakeStore) InsertComment(_ context.Context, comment *qa.Comment) error {
	if _, ok := store.answers[comment.AnswerID]; !ok {
		return dberr.ErrNotFound
	}
	stored := *comment
	store.comments[comment.ID] = &stored
	return nil
}

func (store *fakeStore) FindCommentByID(_ context.Context, id string) (*qa.Comment, error) {
	stored, ok := store.comments[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	comment := *stored
	return &comment, nil
}

func (store *fakeStore) UpdateCommentBody(_ context.Context, id, body string, version int) error {
	stored, ok := store.comments[id]
	if !ok || stored.Version != version {
		return qa.ErrStaleVersion
	}
	stored.Body = body
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (store *fakeStore) DeleteComment(_ context.Context, id string) error {
	if _, ok := store.comments[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(store.comments, id)
	return nil
}

// # VoteLedger

func (store *fakeStore) ToggleQuestionVote(_ context.Context, questionID, voterID string) (bool, error) {
	key := voteKey(questionID, voterID)
	if active, ok := store.questionVotes[key]; ok {
		store.questionVotes[key] = !active
		return !active, nil
	}
	store.questionVotes[key] = true
	return true, nil
}

func (store *fakeStore) ToggleAnswerVote(_ context.Context, answerID, voterID string) (bool, error) {
	key := voteKey(answerID, voterID)
	if active, ok := store.answerVotes[key]; ok {
		store.answerVotes[key] = !active
		return !active, nil
	}
	store.answerVotes[key] = true
	return true, nil
}

// # Internal hydration helpers

func (store *fakeStore) tagRefs(questionID string) []qa.TagRef {
	refs := make([]qa.TagRef, 0)
	for tagID := range store.tagLinks[questionID] {
		refs = append(refs, store.knownTags[tagID])
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs
}

func (store *fakeStore) answersOf(questionID string) []*qa.Answer {
	answers := make([]*qa.Answer, 0)
	for _, stored := range store.answers {
		if stored.QuestionID != questionID {
			continue
		}
		answer := *stored
		answer.Score = countActive(store.answerVotes, stored.ID)
		answer.Comments = store.commentsOf(stored.ID)
		answers = append(answers, &answer)
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].CreatedAt.Before(answers[j].CreatedAt) })
	return answers
}

func (store *fakeStore) commentsOf(answerID string) []*qa.Comment {
	comments := make([]*qa.Comment, 0)
	for _, stored := range store.comments {
		if stored.AnswerID != answerID {
			continue
		}
		comment := *stored
		comments = append(comments, &comment)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments
}

// # View counter fake

type fakeViews struct {
	counts map[string]int64
}

func newFakeViews() *fakeViews {
	return &fakeViews{counts: make(map[string]int64)}
}

func (views *fakeViews) Record(_ context.Context, questionID string) (int64, error) {
	views.counts[questionID]++
	return views.counts[questionID], nil
}

// # Wiring helper

func newTestService(store *fakeStore, views *fakeViews) *qa.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return qa.NewService(store, store, store, store, views, logger)
}
