// Package permissions centralizes every ownership/role decision made by the
// application layer. The database enforces its own row-level rules; both
// layers must agree for a mutation to go through.
package permissions

import "github.com/stackmoneyup/backend/internal/models"

// Action is something an actor may attempt against a resource.
type Action string

const (
	EditComment     Action = "comment:edit"
	DeleteComment   Action = "comment:delete"
	ModerateComment Action = "comment:moderate"
	EditPost        Action = "post:edit"
	DeletePost      Action = "post:delete"
	PublishPost     Action = "post:publish"
	ManageTags      Action = "tag:manage"
	ManageUsers     Action = "user:manage"
	ViewAnalytics   Action = "analytics:view"
)

// Can reports whether the actor may perform the action on a resource owned by
// ownerID. ownerID is ignored for actions that are purely role-gated; pass ""
// for those. A nil actor is always denied.
func Can(actor *models.Actor, action Action, ownerID string) bool {
	if actor == nil {
		return false
	}

	isStaff := actor.Role == models.RoleEditor || actor.Role == models.RoleAdmin
	isOwner := ownerID != "" && actor.ID == ownerID

	switch action {
	case EditComment:
		// Comment edits are author-only; staff may delete but not rewrite.
		return isOwner
	case DeleteComment:
		return isOwner || isStaff
	case ModerateComment, PublishPost, ManageTags, ViewAnalytics:
		return isStaff
	case EditPost, DeletePost:
		return isOwner || isStaff
	case ManageUsers:
		return actor.Role == models.RoleAdmin
	default:
		return false
	}
}
