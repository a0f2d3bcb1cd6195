// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

/*
Package qa implements the content lifecycle of the forum: questions, the
answers posted to them, and the comments posted to answers.

It owns four concerns:

  - The content store (questions, answers, comments, their tag links).
  - The vote ledger: at most one vote row per (target, voter), toggled.
  - The ownership guard deciding who may edit or delete an item.
  - The cascade engine that removes an item together with everything
    hanging off it, transactionally and child-first.

Identity is consumed, never produced: callers arrive as a [Principal]
built from verified token claims.
*/
package qa

import "github.com/askora/askora/internal/platform/sec"

// # Content Kinds

// Kind discriminates the three user-authored content types. The lifecycle
// operations that behave uniformly across types (edit, delete, vote) take
// a Kind instead of being triplicated.
type Kind string

const (
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
	KindComment  Kind = "comment"
)

// Label returns the capitalized resource name used in client-facing errors.
func (k Kind) Label() string {
	switch k {
	case KindQuestion:
		return "Question"
	case KindAnswer:
		return "Answer"
	case KindComment:
		return "Comment"
	default:
		return "Content"
	}
}

// # Principal

// Principal is the acting user as established by the authentication layer.
// The zero value represents an anonymous caller and never passes the guard.
type Principal struct {
	ID       string
	Username string
	Role     sec.UserRole
}

// PrincipalFromClaims converts verified token claims into a [Principal].
func PrincipalFromClaims(claims *sec.AuthClaims) Principal {
	if claims == nil {
		return Principal{}
	}
	return Principal{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     sec.UserRole(claims.Role),
	}
}

// # Vote State

// VoteState reports the voter's relationship to a target after a toggle.
type VoteState struct {
	// Active is true when the voter currently has a counted vote on the target.
	Active bool `json:"active"`
}

// Global field names for validation
const (
	FieldTitle  = "title"
	FieldBody   = "body"
	FieldTagIDs = "tag_ids"
)
