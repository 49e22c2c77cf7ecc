// Package policy centralizes role-based UI gating. Allowed is a pure
// function over the viewer role and a resource/action pair; callers
// re-derive it from the current session on every render so a
// sign-out/sign-in is reflected immediately.
package policy

import (
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// Resource identifies what an action applies to.
type Resource string

const (
	ResourceProjects Resource = "projects"
	ResourceTasks    Resource = "tasks"
	ResourceUsers    Resource = "users"
	ResourceProfile  Resource = "profile"
)

// Action is a UI affordance subject to role gating.
type Action string

const (
	ActionView            Action = "view"
	ActionAdd             Action = "add"
	ActionEdit            Action = "edit"
	ActionDelete          Action = "delete"
	ActionRename          Action = "rename"
	ActionChangeStatus    Action = "change-status"
	ActionChangeRole      Action = "change-role"
	ActionReassignUser    Action = "reassign-user"
	ActionReassignProject Action = "reassign-project"
)

// Allowed reports whether role may perform action on resource.
// PROJECT_MANAGER may do everything. DEVELOPER views all resources,
// edits tasks short of renaming them or moving them to another user,
// and flips their own profile status. GUEST only views.
func Allowed(role entities.Role, resource Resource, action Action) bool {
	if action == ActionView {
		return true
	}

	switch role {
	case entities.RoleProjectManager:
		return true
	case entities.RoleDeveloper:
		return developerAllowed(resource, action)
	default:
		return false
	}
}

func developerAllowed(resource Resource, action Action) bool {
	switch resource {
	case ResourceTasks:
		switch action {
		case ActionEdit, ActionChangeStatus, ActionReassignProject:
			return true
		}
	case ResourceProfile:
		switch action {
		case ActionEdit, ActionChangeStatus:
			return true
		}
	}
	return false
}

// CardActions returns the mutating affordances to render on one card
// of the given resource, in display order. Add is a page-level
// affordance, not a card one.
func CardActions(role entities.Role, resource Resource) []Action {
	var actions []Action
	for _, a := range []Action{ActionEdit, ActionDelete} {
		if Allowed(role, resource, a) {
			actions = append(actions, a)
		}
	}
	return actions
}
