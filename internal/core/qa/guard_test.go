// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askora/askora/internal/core/qa"
	"github.com/askora/askora/internal/platform/sec"
)

/*
TestCanModify covers the ownership rule shared by every edit and delete:
the author may, admins may, nobody else does.
*/
func TestCanModify(t *testing.T) {
	tests := []struct {
		name      string
		principal qa.Principal
		authorID  string
		allowed   bool
	}{
		{"author_member", qa.Principal{ID: "alice", Role: sec.RoleMember}, "alice", true},
		{"other_member", qa.Principal{ID: "carol", Role: sec.RoleMember}, "alice", false},
		{"admin_not_author", qa.Principal{ID: "root", Role: sec.RoleAdmin}, "alice", true},
		{"admin_author", qa.Principal{ID: "root", Role: sec.RoleAdmin}, "root", true},
		{"moderator_not_author", qa.Principal{ID: "mod", Role: sec.RoleModerator}, "alice", false},
		{"anonymous", qa.Principal{}, "alice", false},
		{"anonymous_vs_empty_author", qa.Principal{}, "", false},
		{"unknown_role_author", qa.Principal{ID: "alice", Role: "whatever"}, "alice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, qa.CanModify(tt.principal, tt.authorID))
		})
	}
}
