package senka

import (
	"testing"
)

func TestUserBriefNilSafety(t *testing.T) {
	var ub *UserBrief
	if ub.IsAuthed() || ub.IsAdmin() || ub.IsWriter() {
		t.Error("anonymous viewer should hold no role")
	}
}

func TestUserBriefRoles(t *testing.T) {
	member := &UserBrief{ID: 1, Role: RoleMember}
	if !member.IsAuthed() || member.IsWriter() || member.IsAdmin() {
		t.Error("member should be authed but hold no authoring role")
	}

	writer := &UserBrief{ID: 2, Role: RoleWriter}
	if !writer.IsWriter() || writer.IsAdmin() {
		t.Error("writer should author tasks without being an admin")
	}

	admin := &UserBrief{ID: 3, Role: RoleAdmin}
	if !admin.IsWriter() || !admin.IsAdmin() {
		t.Error("admin should hold every role")
	}
}
