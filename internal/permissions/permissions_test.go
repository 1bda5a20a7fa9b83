package permissions

import (
	"testing"

	"github.com/stackmoneyup/backend/internal/models"
)

func TestCan(t *testing.T) {
	owner := &models.Actor{ID: "u1", Role: models.RoleUser}
	other := &models.Actor{ID: "u2", Role: models.RoleUser}
	editor := &models.Actor{ID: "u3", Role: models.RoleEditor}
	admin := &models.Actor{ID: "u4", Role: models.RoleAdmin}

	tests := []struct {
		name   string
		actor  *models.Actor
		action Action
		owner  string
		want   bool
	}{
		{"nil actor denied", nil, DeleteComment, "u1", false},
		{"author edits own comment", owner, EditComment, "u1", true},
		{"other user cannot edit comment", other, EditComment, "u1", false},
		{"editor cannot edit foreign comment", editor, EditComment, "u1", false},
		{"admin cannot edit foreign comment", admin, EditComment, "u1", false},
		{"author deletes own comment", owner, DeleteComment, "u1", true},
		{"other user cannot delete comment", other, DeleteComment, "u1", false},
		{"editor deletes foreign comment", editor, DeleteComment, "u1", true},
		{"admin deletes foreign comment", admin, DeleteComment, "u1", true},
		{"regular user cannot moderate", owner, ModerateComment, "", false},
		{"editor moderates", editor, ModerateComment, "", true},
		{"admin moderates", admin, ModerateComment, "", true},
		{"author edits own post", owner, EditPost, "u1", true},
		{"editor edits foreign post", editor, EditPost, "u1", true},
		{"other user cannot edit post", other, EditPost, "u1", false},
		{"regular user cannot publish", owner, PublishPost, "", false},
		{"editor publishes", editor, PublishPost, "", true},
		{"editor manages tags", editor, ManageTags, "", true},
		{"user cannot manage tags", other, ManageTags, "", false},
		{"editor cannot manage users", editor, ManageUsers, "", false},
		{"admin manages users", admin, ManageUsers, "", true},
		{"editor views analytics", editor, ViewAnalytics, "", true},
		{"user cannot view analytics", owner, ViewAnalytics, "", false},
		{"unknown action denied", admin, Action("nope"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.actor, tt.action, tt.owner); got != tt.want {
				t.Errorf("Can(%v, %q, %q) = %v, want %v", tt.actor, tt.action, tt.owner, got, tt.want)
			}
		})
	}
}
