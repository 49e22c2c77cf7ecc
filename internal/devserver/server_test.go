package devserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdeck/crewdeck/internal/adapters/rest"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
	"github.com/crewdeck/crewdeck/internal/infrastructure/config"
	"github.com/crewdeck/crewdeck/internal/infrastructure/logger"
	"github.com/crewdeck/crewdeck/internal/ports"
)

// memSession is a throwaway ports.SessionStore for driving the rest
// client against the devserver.
type memSession struct {
	token  string
	userID *int64
	role   entities.Role
}

func (m *memSession) Token() (string, bool) { return m.token, m.token != "" }
func (m *memSession) Role() entities.Role   { return entities.ParseRole(string(m.role)) }
func (m *memSession) UserID() (int64, bool) {
	if m.userID == nil {
		return 0, false
	}
	return *m.userID, true
}
func (m *memSession) SetRole(r entities.Role) error { m.role = r; return nil }
func (m *memSession) SetSession(token string, userID int64, role entities.Role) error {
	m.token, m.userID, m.role = token, &userID, role
	return nil
}
func (m *memSession) Clear() error {
	m.token, m.userID, m.role = "", nil, ""
	return nil
}

var _ ports.SessionStore = (*memSession)(nil)

func testConfig(seed bool) config.DevServerConfig {
	return config.DevServerConfig{
		Port:              0,
		JWTSecret:         "test-secret",
		JWTExpiresIn:      time.Hour,
		JWTIssuer:         "devserver-test",
		RateLimitRequests: 10000,
		RateLimitWindow:   time.Minute,
		MetricsEnabled:    false,
		SeedData:          seed,
	}
}

// newTestBackend starts the devserver behind httptest and returns a
// rest client bound to it plus the client's session store.
func newTestBackend(t *testing.T, seed bool) (*rest.Client, *memSession) {
	t.Helper()

	srv := New(testConfig(seed), logger.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	session := &memSession{}
	client := rest.NewClient(ts.URL, 5*time.Second, session, logger.Nop())
	return client, session
}

func signIn(t *testing.T, client *rest.Client, session *memSession, mail, password string) *ports.LoginResponse {
	t.Helper()
	resp, err := client.Login(context.Background(), ports.LoginRequest{Mail: mail, Password: password})
	require.NoError(t, err)
	require.NoError(t, session.SetSession(resp.Token, resp.UserID, resp.Role))
	return resp
}

func TestRegisterAndLoginFlow(t *testing.T) {
	client, session := newTestBackend(t, false)
	ctx := context.Background()

	err := client.Register(ctx, ports.RegisterRequest{
		Name:     "Defne",
		Surname:  "Aksoy",
		Mail:     "defne@crewdeck.dev",
		Password: "crewdeck",
		Phone:    "+905550000001",
	})
	require.NoError(t, err)

	resp := signIn(t, client, session, "defne@crewdeck.dev", "crewdeck")
	assert.NotEmpty(t, resp.Token)
	assert.NotZero(t, resp.UserID)
	assert.Equal(t, entities.RoleDeveloper, resp.Role)

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Defne Aksoy", users[0].FullName())
	assert.Equal(t, entities.UserStatusAvailable, users[0].Status)
}

func TestRegisterDuplicateMail(t *testing.T) {
	client, _ := newTestBackend(t, false)
	ctx := context.Background()

	req := ports.RegisterRequest{
		Name: "Defne", Surname: "Aksoy", Mail: "defne@crewdeck.dev",
		Password: "crewdeck", Phone: "+905550000001",
	}
	require.NoError(t, client.Register(ctx, req))

	err := client.Register(ctx, req)
	require.Error(t, err)
	assert.Equal(t, "Mail already registered", err.Error())
}

func TestRegisterValidationRejectsShortPassword(t *testing.T) {
	client, _ := newTestBackend(t, false)

	err := client.Register(context.Background(), ports.RegisterRequest{
		Name: "Defne", Surname: "Aksoy", Mail: "defne@crewdeck.dev",
		Password: "abc", Phone: "+905550000001",
	})
	require.Error(t, err)
	assert.Equal(t, "validation failed", err.Error())
}

func TestLoginWrongPassword(t *testing.T) {
	client, _ := newTestBackend(t, true)

	_, err := client.Login(context.Background(), ports.LoginRequest{
		Mail: "defne@crewdeck.dev", Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	client, _ := newTestBackend(t, true)

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Missing authorization header", err.Error())
}

func TestSeededDataIsServed(t *testing.T) {
	client, session := newTestBackend(t, true)
	ctx := context.Background()

	signIn(t, client, session, "defne@crewdeck.dev", "crewdeck")

	projects, err := client.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestProjectCreateThroughPut(t *testing.T) {
	client, session := newTestBackend(t, false)
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, ports.RegisterRequest{
		Name: "Defne", Surname: "Aksoy", Mail: "defne@crewdeck.dev",
		Password: "crewdeck", Phone: "+905550000001",
		Role: entities.RoleProjectManager,
	}))
	signIn(t, client, session, "defne@crewdeck.dev", "crewdeck")

	created, err := client.SaveProject(ctx, entities.Project{Name: "Atlas", Date: "2024-03-01"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// The same verb with a known id replaces the record.
	created.Name = "Atlas v2"
	updated, err := client.SaveProject(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := client.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Atlas v2", got.Name)
}

func TestDeleteRequiresProjectManager(t *testing.T) {
	client, session := newTestBackend(t, true)
	ctx := context.Background()

	// The seeded developer may not delete.
	signIn(t, client, session, "mert@crewdeck.dev", "crewdeck")

	projects, err := client.ListProjects(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, projects)

	err = client.DeleteProject(ctx, projects[0].ID)
	require.Error(t, err)
	assert.Equal(t, "Insufficient permissions", err.Error())

	// The seeded manager may.
	signIn(t, client, session, "defne@crewdeck.dev", "crewdeck")
	require.NoError(t, client.DeleteProject(ctx, projects[0].ID))

	_, err = client.GetProject(ctx, projects[0].ID)
	require.Error(t, err)
	assert.True(t, rest.IsNotFound(err))
}

func TestTasksForUserFilters(t *testing.T) {
	client, session := newTestBackend(t, true)
	ctx := context.Background()

	signIn(t, client, session, "defne@crewdeck.dev", "crewdeck")

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)

	var developer *entities.User
	for i := range users {
		if users[i].Mail == "mert@crewdeck.dev" {
			developer = &users[i]
		}
	}
	require.NotNil(t, developer)

	tasks, err := client.TasksForUser(ctx, developer.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].AssignedTo(developer.ID))

	projects, err := client.ProjectsForUser(ctx, developer.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Horizon", projects[0].Name)
}

func TestTaskUpdatePutsWholeRecord(t *testing.T) {
	client, session := newTestBackend(t, true)
	ctx := context.Background()

	signIn(t, client, session, "defne@crewdeck.dev", "crewdeck")

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	task := tasks[0]
	task.Status = entities.TaskStatusFinished
	task.AssignedUserID = nil

	updated, err := client.UpdateTask(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusFinished, updated.Status)
	assert.Nil(t, updated.AssignedUserID)

	got, err := client.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusFinished, got.Status)
	assert.Nil(t, got.AssignedUserID)
}

func TestInvalidTokenRejected(t *testing.T) {
	client, session := newTestBackend(t, true)

	require.NoError(t, session.SetSession("garbage-token", 1, entities.RoleProjectManager))
	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid token", err.Error())
}

func TestShutdown(t *testing.T) {
	srv := New(testConfig(false), logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
}
