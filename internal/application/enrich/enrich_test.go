package enrich

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

func ref(id int64) *int64 { return &id }

func namesFromTable(table map[int64]string) NameLookup {
	return func(ctx context.Context, id int64) (string, error) {
		name, ok := table[id]
		if !ok {
			return "", fmt.Errorf("no entity %d", id)
		}
		return name, nil
	}
}

func TestTasksResolvesBothReferences(t *testing.T) {
	resolver := NewResolverFuncs(
		namesFromTable(map[int64]string{7: "Atlas"}),
		namesFromTable(map[int64]string{3: "Mert Kaya"}),
		nil,
	)

	views := resolver.Tasks(context.Background(), []entities.Task{
		{ID: 1, Name: "Ship it", AssignedProjectID: ref(7), AssignedUserID: ref(3)},
	})

	require.Len(t, views, 1)
	require.NotNil(t, views[0].ProjectName)
	assert.Equal(t, "Atlas", *views[0].ProjectName)
	require.NotNil(t, views[0].UserName)
	assert.Equal(t, "Mert Kaya", *views[0].UserName)
}

func TestTasksPartialFailureKeepsOtherName(t *testing.T) {
	// Project 7 resolves, user 99 does not: the view keeps the task,
	// the project name, and an absent user name.
	resolver := NewResolverFuncs(
		namesFromTable(map[int64]string{7: "Atlas"}),
		namesFromTable(map[int64]string{}),
		nil,
	)

	views := resolver.Tasks(context.Background(), []entities.Task{
		{ID: 1, Name: "Ship it", AssignedProjectID: ref(7), AssignedUserID: ref(99)},
	})

	require.Len(t, views, 1)
	require.NotNil(t, views[0].ProjectName)
	assert.Equal(t, "Atlas", *views[0].ProjectName)
	assert.Nil(t, views[0].UserName)
	assert.Equal(t, "Ship it", views[0].Name)
}

func TestTasksNilReferenceIssuesNoLookup(t *testing.T) {
	var calls atomic.Int64
	counting := func(ctx context.Context, id int64) (string, error) {
		calls.Add(1)
		return "never", nil
	}

	resolver := NewResolverFuncs(counting, counting, counting)
	views := resolver.Tasks(context.Background(), []entities.Task{
		{ID: 1, Name: "Unassigned"},
	})

	require.Len(t, views, 1)
	assert.Nil(t, views[0].ProjectName)
	assert.Nil(t, views[0].UserName)
	assert.Zero(t, calls.Load())
}

func TestTasksPreservesInputOrder(t *testing.T) {
	// Lookups resolve in reverse call order; output order must still
	// follow input order.
	var mu sync.Mutex
	pending := make([]chan struct{}, 0, 3)

	slow := func(ctx context.Context, id int64) (string, error) {
		mu.Lock()
		gate := make(chan struct{})
		pending = append(pending, gate)
		if len(pending) == 3 {
			for i := len(pending) - 1; i >= 0; i-- {
				close(pending[i])
			}
		}
		mu.Unlock()
		<-gate
		return fmt.Sprintf("project-%d", id), nil
	}

	resolver := NewResolverFuncs(slow, nil, nil)
	views := resolver.Tasks(context.Background(), []entities.Task{
		{ID: 10, AssignedProjectID: ref(1)},
		{ID: 20, AssignedProjectID: ref(2)},
		{ID: 30, AssignedProjectID: ref(3)},
	})

	require.Len(t, views, 3)
	assert.Equal(t, int64(10), views[0].ID)
	assert.Equal(t, int64(20), views[1].ID)
	assert.Equal(t, int64(30), views[2].ID)
	require.NotNil(t, views[1].ProjectName)
	assert.Equal(t, "project-2", *views[1].ProjectName)
}

func TestUsersResolvesProjectAndTask(t *testing.T) {
	resolver := NewResolverFuncs(
		namesFromTable(map[int64]string{7: "Atlas"}),
		nil,
		namesFromTable(map[int64]string{4: "Review sprint backlog"}),
	)

	views := resolver.Users(context.Background(), []entities.User{
		{ID: 1, Name: "Defne", Surname: "Aksoy", ProjectID: ref(7), TaskID: ref(4)},
		{ID: 2, Name: "Guest", Surname: "Account"},
	})

	require.Len(t, views, 2)
	require.NotNil(t, views[0].ProjectName)
	assert.Equal(t, "Atlas", *views[0].ProjectName)
	require.NotNil(t, views[0].TaskName)
	assert.Equal(t, "Review sprint backlog", *views[0].TaskName)

	assert.Nil(t, views[1].ProjectName)
	assert.Nil(t, views[1].TaskName)
}

func TestEmptyListsReturnEmpty(t *testing.T) {
	resolver := NewResolverFuncs(nil, nil, nil)

	assert.Empty(t, resolver.Tasks(context.Background(), nil))
	assert.Empty(t, resolver.Users(context.Background(), nil))
}
