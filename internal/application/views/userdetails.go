package views

import (
	"context"
	"sync"

	"github.com/crewdeck/crewdeck/internal/application/policy"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// UserDetailsPage shows one employee with their assigned projects and
// tasks, plus a role/status edit dialog. The user fetch is mandatory;
// the project and task sections are tolerant and fall back to empty on
// failure.
type UserDetailsPage struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	userID int64
	state  State
	errMsg string

	user     *entities.User
	projects []entities.Project
	tasks    []entities.Task

	dialogOpen bool

	deps Deps
}

// NewUserDetailsPage builds the page for one user id; call Load to
// fetch.
func NewUserDetailsPage(ctx context.Context, deps Deps, userID int64) *UserDetailsPage {
	pageCtx, cancel := context.WithCancel(ctx)
	return &UserDetailsPage{
		ctx:    pageCtx,
		cancel: cancel,
		userID: userID,
		state:  StateLoading,
		deps:   deps,
	}
}

// Load fetches the user, then their projects and tasks in parallel.
func (p *UserDetailsPage) Load() {
	user, err := p.deps.Client.GetUser(p.ctx, p.userID)
	if err != nil {
		p.fail(err)
		return
	}

	var wg sync.WaitGroup
	var projects []entities.Project
	var tasks []entities.Task

	wg.Add(2)
	go func() {
		defer wg.Done()
		// Failure leaves the section empty rather than failing the page.
		if list, err := p.deps.Client.ProjectsForUser(p.ctx, p.userID); err == nil {
			projects = list
		}
	}()
	go func() {
		defer wg.Done()
		if list, err := p.deps.Client.TasksForUser(p.ctx, p.userID); err == nil {
			tasks = list
		}
	}()
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx.Err() != nil {
		return
	}
	p.state = StateReady
	p.user = user
	p.projects = projects
	p.tasks = tasks
}

func (p *UserDetailsPage) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx.Err() != nil {
		return
	}
	p.state = StateError
	p.errMsg = err.Error()
}

// Close tears the page down.
func (p *UserDetailsPage) Close() {
	p.cancel()
}

// State returns the lifecycle state.
func (p *UserDetailsPage) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Error returns the page-level error message, if any.
func (p *UserDetailsPage) Error() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// User returns the loaded user.
func (p *UserDetailsPage) User() *entities.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// Assignments returns the user's projects and tasks.
func (p *UserDetailsPage) Assignments() ([]entities.Project, []entities.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	projects := make([]entities.Project, len(p.projects))
	copy(projects, p.projects)
	tasks := make([]entities.Task, len(p.tasks))
	copy(tasks, p.tasks)
	return projects, tasks
}

// CanEdit reports whether the viewer may edit this user.
func (p *UserDetailsPage) CanEdit() bool {
	return policy.Allowed(p.deps.Session.Role(), policy.ResourceUsers, policy.ActionEdit)
}

// OpenEdit opens the edit dialog, prefilled from the loaded user.
func (p *UserDetailsPage) OpenEdit() (UserEdit, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return UserEdit{}, false
	}
	p.dialogOpen = true
	return UserEdit{Role: p.user.Role, Status: p.user.Status}, true
}

// CloseDialog abandons the edit without touching the user.
func (p *UserDetailsPage) CloseDialog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialogOpen = false
}

// DialogOpen reports whether the edit dialog is open.
func (p *UserDetailsPage) DialogOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dialogOpen
}

// SaveEdit puts the whole record with the edited role and status. On
// failure the dialog stays open and the error is the alert text.
func (p *UserDetailsPage) SaveEdit(edit UserEdit) error {
	role := p.deps.Session.Role()
	if !policy.Allowed(role, policy.ResourceUsers, policy.ActionEdit) {
		return entities.ErrActionDenied
	}

	p.mu.Lock()
	if p.user == nil {
		p.mu.Unlock()
		return entities.ErrUserNotFound
	}
	updated := *p.user
	p.mu.Unlock()

	if edit.Role.IsValid() && policy.Allowed(role, policy.ResourceUsers, policy.ActionChangeRole) {
		updated.Role = edit.Role
	}
	if edit.Status.IsValid() && policy.Allowed(role, policy.ResourceUsers, policy.ActionChangeStatus) {
		updated.Status = edit.Status
	}

	saved, err := p.deps.Client.UpdateUser(p.ctx, updated)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx.Err() != nil {
		return nil
	}
	p.user = saved
	p.dialogOpen = false
	return nil
}
