package views

import (
	"context"

	"github.com/crewdeck/crewdeck/internal/application/enrich"
	"github.com/crewdeck/crewdeck/internal/application/policy"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// UserEdit is the user edit dialog's form state: role and status, the
// two fields the dialog exposes.
type UserEdit struct {
	Role   entities.Role
	Status entities.UserStatus
}

// UsersPage lists all employees enriched with project and task names.
type UsersPage struct {
	*ListPage[enrich.UserView]
	deps Deps
}

// NewUsersPage builds the page; call Load to fetch.
func NewUsersPage(ctx context.Context, deps Deps) *UsersPage {
	page := &UsersPage{deps: deps}
	page.ListPage = newListPage(ctx, func(ctx context.Context) ([]enrich.UserView, error) {
		users, err := deps.Client.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		return deps.Resolver.Users(ctx, users), nil
	}, func(v enrich.UserView) int64 { return v.ID })
	return page
}

// Role returns the viewer role, re-read from the session.
func (p *UsersPage) Role() entities.Role {
	return p.deps.Session.Role()
}

// Cards renders the current list for the viewer.
func (p *UsersPage) Cards() []Card {
	role := p.Role()
	items := p.Items()
	cards := make([]Card, len(items))
	for i, view := range items {
		cards[i] = UserCard(view, role)
	}
	return cards
}

// SaveEdit updates the target user's role and status via a
// whole-record PUT, patching the list on success.
func (p *UsersPage) SaveEdit(id int64, edit UserEdit) error {
	role := p.Role()
	if !policy.Allowed(role, policy.ResourceUsers, policy.ActionEdit) {
		return entities.ErrActionDenied
	}

	current, ok := p.Find(id)
	if !ok {
		return entities.ErrUserNotFound
	}

	updated := current.User
	if edit.Role.IsValid() && policy.Allowed(role, policy.ResourceUsers, policy.ActionChangeRole) {
		updated.Role = edit.Role
	}
	if edit.Status.IsValid() && policy.Allowed(role, policy.ResourceUsers, policy.ActionChangeStatus) {
		updated.Status = edit.Status
	}

	saved, err := p.deps.Client.UpdateUser(p.Context(), updated)
	if err != nil {
		return err
	}

	views := p.deps.Resolver.Users(p.Context(), []entities.User{*saved})
	p.patch(views[0])
	return nil
}

// ConfirmDelete issues the delete for the confirmed user.
func (p *UsersPage) ConfirmDelete(id int64) error {
	if !policy.Allowed(p.Role(), policy.ResourceUsers, policy.ActionDelete) {
		return entities.ErrActionDenied
	}

	if err := p.deps.Client.DeleteUser(p.Context(), id); err != nil {
		return err
	}

	p.remove(id)
	return nil
}
