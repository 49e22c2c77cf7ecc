// Package enrich resolves the single-level foreign references carried
// by task and user lists into display names. Lookups for one list fan
// out concurrently; a failed or absent reference resolves to an absent
// name instead of failing the entity, and output order always matches
// input order.
package enrich

import (
	"context"
	"sync"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
	"github.com/crewdeck/crewdeck/internal/ports"
)

// NameLookup resolves a referenced entity's display name by id.
type NameLookup func(ctx context.Context, id int64) (string, error)

// TaskView is a task plus resolved display names. Nil means the
// reference is absent or its lookup failed.
type TaskView struct {
	entities.Task
	ProjectName *string
	UserName    *string
}

// UserView is a user plus resolved display names.
type UserView struct {
	entities.User
	ProjectName *string
	TaskName    *string
}

// Resolver enriches lists using the configured lookups.
type Resolver struct {
	projectName NameLookup
	userName    NameLookup
	taskName    NameLookup
}

// NewResolver builds a resolver on top of the resource client.
func NewResolver(client ports.ResourceClient) *Resolver {
	return &Resolver{
		projectName: func(ctx context.Context, id int64) (string, error) {
			p, err := client.GetProject(ctx, id)
			if err != nil {
				return "", err
			}
			return p.Name, nil
		},
		userName: func(ctx context.Context, id int64) (string, error) {
			u, err := client.GetUser(ctx, id)
			if err != nil {
				return "", err
			}
			return u.FullName(), nil
		},
		taskName: func(ctx context.Context, id int64) (string, error) {
			t, err := client.GetTask(ctx, id)
			if err != nil {
				return "", err
			}
			return t.Name, nil
		},
	}
}

// NewResolverFuncs builds a resolver from bare lookups; used by tests
// and by callers that already hold the referenced data.
func NewResolverFuncs(projectName, userName, taskName NameLookup) *Resolver {
	return &Resolver{projectName: projectName, userName: userName, taskName: taskName}
}

// Tasks enriches a task list with project and assignee names.
func (r *Resolver) Tasks(ctx context.Context, tasks []entities.Task) []TaskView {
	views := make([]TaskView, len(tasks))

	var wg sync.WaitGroup
	for i := range tasks {
		views[i].Task = tasks[i]
		r.spawn(ctx, &wg, tasks[i].AssignedProjectID, r.projectName, &views[i].ProjectName)
		r.spawn(ctx, &wg, tasks[i].AssignedUserID, r.userName, &views[i].UserName)
	}
	wg.Wait()

	return views
}

// Users enriches a user list with project and task names.
func (r *Resolver) Users(ctx context.Context, users []entities.User) []UserView {
	views := make([]UserView, len(users))

	var wg sync.WaitGroup
	for i := range users {
		views[i].User = users[i]
		r.spawn(ctx, &wg, users[i].ProjectID, r.projectName, &views[i].ProjectName)
		r.spawn(ctx, &wg, users[i].TaskID, r.taskName, &views[i].TaskName)
	}
	wg.Wait()

	return views
}

// spawn starts one lookup when the reference is present. Each goroutine
// writes only its own output slot, so no lock is needed.
func (r *Resolver) spawn(ctx context.Context, wg *sync.WaitGroup, id *int64, lookup NameLookup, out **string) {
	if id == nil || lookup == nil {
		return
	}

	refID := *id
	wg.Add(1)
	go func() {
		defer wg.Done()
		name, err := lookup(ctx, refID)
		if err != nil {
			return
		}
		*out = &name
	}()
}
