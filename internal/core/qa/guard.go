// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import "github.com/askora/askora/internal/platform/sec"

// # Ownership Guard

// CanModify reports whether the principal may edit or delete content owned
// by authorID. The rule is uniform across questions, answers, and comments:
// the author may, and admins may regardless of authorship.
//
// An anonymous principal (empty ID) never passes, even against content
// whose author id is somehow empty.
func CanModify(principal Principal, authorID string) bool {
	if principal.ID != "" && principal.ID == authorID {
		return true
	}
	return principal.Role.AtLeast(sec.RoleAdmin)
}
