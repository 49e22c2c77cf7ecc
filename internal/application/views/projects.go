package views

import (
	"context"

	"github.com/crewdeck/crewdeck/internal/application/forms"
	"github.com/crewdeck/crewdeck/internal/application/policy"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// ProjectsPage lists all projects with create/edit/delete dialogs.
// Projects carry no references, so the list is not enriched.
type ProjectsPage struct {
	*ListPage[entities.Project]
	deps Deps
}

// NewProjectsPage builds the page; call Load to fetch.
func NewProjectsPage(ctx context.Context, deps Deps) *ProjectsPage {
	page := &ProjectsPage{deps: deps}
	page.ListPage = newListPage(ctx, func(ctx context.Context) ([]entities.Project, error) {
		return deps.Client.ListProjects(ctx)
	}, func(p entities.Project) int64 { return p.ID })
	return page
}

// Role returns the viewer role, re-read from the session.
func (p *ProjectsPage) Role() entities.Role {
	return p.deps.Session.Role()
}

// CanAdd reports whether the viewer may create projects.
func (p *ProjectsPage) CanAdd() bool {
	return policy.Allowed(p.Role(), policy.ResourceProjects, policy.ActionAdd)
}

// Cards renders the current list for the viewer.
func (p *ProjectsPage) Cards() []Card {
	role := p.Role()
	items := p.Items()
	cards := make([]Card, len(items))
	for i, project := range items {
		cards[i] = ProjectCard(project, role)
	}
	return cards
}

// SaveNew validates the create form and creates the project through
// the backend's PUT upsert. On success the new project joins the list
// and the dialog closes; on failure the dialog stays open and the
// returned error is the alert text.
func (p *ProjectsPage) SaveNew(form forms.ProjectForm) error {
	if !policy.Allowed(p.Role(), policy.ResourceProjects, policy.ActionAdd) {
		return entities.ErrActionDenied
	}
	if errs := forms.Validate(form); errs != nil {
		return errs
	}

	saved, err := p.deps.Client.SaveProject(p.Context(), entities.Project{
		Name: form.Name,
		Date: form.Date,
	})
	if err != nil {
		return err
	}

	p.insert(*saved)
	return nil
}

// SaveEdit validates the edit form and updates the project, patching
// the in-memory list on success.
func (p *ProjectsPage) SaveEdit(id int64, form forms.ProjectForm) error {
	if !policy.Allowed(p.Role(), policy.ResourceProjects, policy.ActionEdit) {
		return entities.ErrActionDenied
	}
	if errs := forms.Validate(form); errs != nil {
		return errs
	}

	saved, err := p.deps.Client.SaveProject(p.Context(), entities.Project{
		ID:   id,
		Name: form.Name,
		Date: form.Date,
	})
	if err != nil {
		return err
	}

	p.patch(*saved)
	return nil
}

// ConfirmDelete issues the delete for the entity in the confirmation
// dialog. On failure the project stays in the list and the dialog
// stays open.
func (p *ProjectsPage) ConfirmDelete(id int64) error {
	if !policy.Allowed(p.Role(), policy.ResourceProjects, policy.ActionDelete) {
		return entities.ErrActionDenied
	}

	if err := p.deps.Client.DeleteProject(p.Context(), id); err != nil {
		return err
	}

	p.remove(id)
	return nil
}
