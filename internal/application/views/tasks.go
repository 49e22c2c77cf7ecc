package views

import (
	"context"

	"github.com/crewdeck/crewdeck/internal/application/enrich"
	"github.com/crewdeck/crewdeck/internal/application/forms"
	"github.com/crewdeck/crewdeck/internal/application/policy"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// TaskEdit is the edit dialog's form state. Reference fields are
// pointers: nil clears the assignment.
type TaskEdit struct {
	Name              string
	Description       string
	Status            entities.TaskStatus
	AssignedProjectID *int64
	AssignedUserID    *int64
}

// TasksPage lists all tasks enriched with project and assignee names.
type TasksPage struct {
	*ListPage[enrich.TaskView]
	deps Deps
}

// NewTasksPage builds the page; call Load to fetch.
func NewTasksPage(ctx context.Context, deps Deps) *TasksPage {
	page := &TasksPage{deps: deps}
	page.ListPage = newListPage(ctx, func(ctx context.Context) ([]enrich.TaskView, error) {
		// The primary list is mandatory; enrichment is tolerant.
		tasks, err := deps.Client.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		return deps.Resolver.Tasks(ctx, tasks), nil
	}, func(v enrich.TaskView) int64 { return v.ID })
	return page
}

// Role returns the viewer role, re-read from the session.
func (p *TasksPage) Role() entities.Role {
	return p.deps.Session.Role()
}

// CanAdd reports whether the viewer may create tasks.
func (p *TasksPage) CanAdd() bool {
	return policy.Allowed(p.Role(), policy.ResourceTasks, policy.ActionAdd)
}

// Cards renders the current list for the viewer.
func (p *TasksPage) Cards() []Card {
	role := p.Role()
	items := p.Items()
	cards := make([]Card, len(items))
	for i, view := range items {
		cards[i] = TaskCard(view, role)
	}
	return cards
}

// SaveNew validates the create form and creates the task.
func (p *TasksPage) SaveNew(form forms.TaskForm, projectID, userID *int64) error {
	if !policy.Allowed(p.Role(), policy.ResourceTasks, policy.ActionAdd) {
		return entities.ErrActionDenied
	}
	if errs := forms.Validate(form); errs != nil {
		return errs
	}

	created, err := p.deps.Client.CreateTask(p.Context(), entities.Task{
		Name:              form.Name,
		Description:       form.Description,
		Status:            form.Status,
		AssignedProjectID: projectID,
		AssignedUserID:    userID,
	})
	if err != nil {
		return err
	}

	views := p.deps.Resolver.Tasks(p.Context(), []entities.Task{*created})
	p.insert(views[0])
	return nil
}

// SaveEdit merges the edit form into the task, honoring per-field
// policy: a developer's rename or user reassignment is ignored rather
// than sent. The update is a whole-record PUT; success patches the
// in-memory list and closes the dialog.
func (p *TasksPage) SaveEdit(id int64, edit TaskEdit) error {
	role := p.Role()
	if !policy.Allowed(role, policy.ResourceTasks, policy.ActionEdit) {
		return entities.ErrActionDenied
	}

	current, ok := p.Find(id)
	if !ok {
		return entities.ErrTaskNotFound
	}

	updated := current.Task
	updated.Description = edit.Description
	if policy.Allowed(role, policy.ResourceTasks, policy.ActionRename) {
		updated.Name = edit.Name
	}
	if policy.Allowed(role, policy.ResourceTasks, policy.ActionChangeStatus) && edit.Status.IsValid() {
		updated.Status = edit.Status
	}
	if policy.Allowed(role, policy.ResourceTasks, policy.ActionReassignProject) {
		updated.AssignedProjectID = edit.AssignedProjectID
	}
	if policy.Allowed(role, policy.ResourceTasks, policy.ActionReassignUser) {
		updated.AssignedUserID = edit.AssignedUserID
	}

	saved, err := p.deps.Client.UpdateTask(p.Context(), updated)
	if err != nil {
		return err
	}

	views := p.deps.Resolver.Tasks(p.Context(), []entities.Task{*saved})
	p.patch(views[0])
	return nil
}

// ConfirmDelete issues the delete for the confirmed task.
func (p *TasksPage) ConfirmDelete(id int64) error {
	if !policy.Allowed(p.Role(), policy.ResourceTasks, policy.ActionDelete) {
		return entities.ErrActionDenied
	}

	if err := p.deps.Client.DeleteTask(p.Context(), id); err != nil {
		return err
	}

	p.remove(id)
	return nil
}
