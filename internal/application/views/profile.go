package views

import (
	"context"
	"sync"

	"github.com/crewdeck/crewdeck/internal/application/policy"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// ProfilePage shows the signed-in user and their assigned tasks. The
// task section is the full task list filtered client-side by assignee,
// matching the backend's lack of a dedicated "my tasks" endpoint on
// this path. The edit dialog only exposes the fields the viewer's role
// may change; the save payload merges exactly those.
type ProfilePage struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	state  State
	errMsg string

	user  *entities.User
	tasks []entities.Task

	dialogOpen bool

	deps Deps
}

// NewProfilePage builds the page; call Load to fetch.
func NewProfilePage(ctx context.Context, deps Deps) *ProfilePage {
	pageCtx, cancel := context.WithCancel(ctx)
	return &ProfilePage{
		ctx:    pageCtx,
		cancel: cancel,
		state:  StateLoading,
		deps:   deps,
	}
}

// Load fetches the user record and the task list. Both are mandatory
// for this page, so the join is strict.
func (p *ProfilePage) Load() {
	userID, ok := p.deps.Session.UserID()
	if !ok {
		p.fail(entities.ErrNotSignedIn)
		return
	}

	var wg sync.WaitGroup
	var user *entities.User
	var tasks []entities.Task
	var userErr, tasksErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = p.deps.Client.GetUser(p.ctx, userID)
	}()
	go func() {
		defer wg.Done()
		tasks, tasksErr = p.deps.Client.ListTasks(p.ctx)
	}()
	wg.Wait()

	if userErr != nil {
		p.fail(userErr)
		return
	}
	if tasksErr != nil {
		p.fail(tasksErr)
		return
	}

	mine := tasks[:0]
	for _, t := range tasks {
		if t.AssignedTo(userID) {
			mine = append(mine, t)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx.Err() != nil {
		return
	}
	p.state = StateReady
	p.user = user
	p.tasks = mine
}

func (p *ProfilePage) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx.Err() != nil {
		return
	}
	p.state = StateError
	p.errMsg = err.Error()
}

// Close tears the page down.
func (p *ProfilePage) Close() {
	p.cancel()
}

// State returns the lifecycle state.
func (p *ProfilePage) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Error returns the page-level error message, if any.
func (p *ProfilePage) Error() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// User returns the profile owner.
func (p *ProfilePage) User() *entities.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// Tasks returns the owner's assigned tasks.
func (p *ProfilePage) Tasks() []entities.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entities.Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// CanEdit reports whether the viewer may open the edit dialog at all.
func (p *ProfilePage) CanEdit() bool {
	return policy.Allowed(p.deps.Session.Role(), policy.ResourceProfile, policy.ActionEdit)
}

// CanChangeRole reports whether the role selector renders.
func (p *ProfilePage) CanChangeRole() bool {
	return policy.Allowed(p.deps.Session.Role(), policy.ResourceProfile, policy.ActionChangeRole)
}

// CanChangeStatus reports whether the status selector renders.
func (p *ProfilePage) CanChangeStatus() bool {
	return policy.Allowed(p.deps.Session.Role(), policy.ResourceProfile, policy.ActionChangeStatus)
}

// OpenEdit opens the edit dialog, prefilled from the loaded user.
func (p *ProfilePage) OpenEdit() (UserEdit, bool) {
	if !p.CanEdit() {
		return UserEdit{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return UserEdit{}, false
	}
	p.dialogOpen = true
	return UserEdit{Role: p.user.Role, Status: p.user.Status}, true
}

// CloseDialog abandons the edit without touching the user.
func (p *ProfilePage) CloseDialog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialogOpen = false
}

// DialogOpen reports whether the edit dialog is open.
func (p *ProfilePage) DialogOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dialogOpen
}

// SaveEdit sends the whole record with only the permitted fields
// changed, patches the local copy on success and keeps the session
// role in step when the owner changed their own role.
func (p *ProfilePage) SaveEdit(edit UserEdit) error {
	role := p.deps.Session.Role()
	if !policy.Allowed(role, policy.ResourceProfile, policy.ActionEdit) {
		return entities.ErrActionDenied
	}

	p.mu.Lock()
	if p.user == nil {
		p.mu.Unlock()
		return entities.ErrUserNotFound
	}
	updated := *p.user
	p.mu.Unlock()

	if edit.Role.IsValid() && policy.Allowed(role, policy.ResourceProfile, policy.ActionChangeRole) {
		updated.Role = edit.Role
	}
	if edit.Status.IsValid() && policy.Allowed(role, policy.ResourceProfile, policy.ActionChangeStatus) {
		updated.Status = edit.Status
	}

	saved, err := p.deps.Client.UpdateUser(p.ctx, updated)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.ctx.Err() != nil {
		p.mu.Unlock()
		return nil
	}
	p.user = saved
	p.dialogOpen = false
	p.mu.Unlock()

	if saved.Role != role {
		if err := p.deps.Session.SetRole(saved.Role); err != nil {
			p.deps.Logger.WithError(err).Warn("failed to persist role change")
		}
	}
	return nil
}
