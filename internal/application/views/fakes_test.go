package views

import (
	"context"
	"sync"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
	"github.com/crewdeck/crewdeck/internal/infrastructure/logger"
	"github.com/crewdeck/crewdeck/internal/ports"
)

// fakeSession is an in-memory ports.SessionStore.
type fakeSession struct {
	mu     sync.Mutex
	token  string
	userID *int64
	role   entities.Role
}

func sessionFor(role entities.Role, userID int64) *fakeSession {
	return &fakeSession{token: "tok-test", userID: &userID, role: role}
}

func guestSession() *fakeSession {
	return &fakeSession{}
}

func (f *fakeSession) Token() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != ""
}

func (f *fakeSession) Role() entities.Role {
	f.mu.Lock()
	defer f.mu.Unlock()
	return entities.ParseRole(string(f.role))
}

func (f *fakeSession) UserID() (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userID == nil {
		return 0, false
	}
	return *f.userID, true
}

func (f *fakeSession) SetRole(r entities.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.role = r
	return nil
}

func (f *fakeSession) SetSession(token string, userID int64, role entities.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token, f.userID, f.role = token, &userID, role
	return nil
}

func (f *fakeSession) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token, f.userID, f.role = "", nil, ""
	return nil
}

// fakeClient is an in-memory ports.ResourceClient with per-method
// error injection and call counting.
type fakeClient struct {
	mu sync.Mutex

	projects []entities.Project
	tasks    []entities.Task
	users    []entities.User

	nextID int64

	errs  map[string]error
	calls map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		nextID: 100,
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *fakeClient) failWith(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
}

func (f *fakeClient) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// enter records the call and returns any injected error.
func (f *fakeClient) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	return f.errs[method]
}

func (f *fakeClient) ListProjects(ctx context.Context) ([]entities.Project, error) {
	if err := f.enter("ListProjects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeClient) GetProject(ctx context.Context, id int64) (*entities.Project, error) {
	if err := f.enter("GetProject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, entities.ErrProjectNotFound
}

func (f *fakeClient) ProjectsForUser(ctx context.Context, userID int64) ([]entities.Project, error) {
	if err := f.enter("ProjectsForUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Project
	for _, u := range f.users {
		if u.ID == userID && u.ProjectID != nil {
			for _, p := range f.projects {
				if p.ID == *u.ProjectID {
					out = append(out, p)
				}
			}
		}
	}
	return out, nil
}

func (f *fakeClient) SaveProject(ctx context.Context, p entities.Project) (*entities.Project, error) {
	if err := f.enter("SaveProject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		p.ID = f.nextID
		f.nextID++
		f.projects = append(f.projects, p)
		return &p, nil
	}
	for i := range f.projects {
		if f.projects[i].ID == p.ID {
			f.projects[i] = p
		}
	}
	return &p, nil
}

func (f *fakeClient) DeleteProject(ctx context.Context, id int64) error {
	if err := f.enter("DeleteProject"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.projects[:0]
	for _, p := range f.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.projects = kept
	return nil
}

func (f *fakeClient) ListTasks(ctx context.Context) ([]entities.Task, error) {
	if err := f.enter("ListTasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeClient) GetTask(ctx context.Context, id int64) (*entities.Task, error) {
	if err := f.enter("GetTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (f *fakeClient) TasksForUser(ctx context.Context, userID int64) ([]entities.Task, error) {
	if err := f.enter("TasksForUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Task
	for _, t := range f.tasks {
		if t.AssignedTo(userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeClient) CreateTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	if err := f.enter("CreateTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.nextID
	f.nextID++
	f.tasks = append(f.tasks, t)
	return &t, nil
}

func (f *fakeClient) UpdateTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	if err := f.enter("UpdateTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			f.tasks[i] = t
		}
	}
	return &t, nil
}

func (f *fakeClient) DeleteTask(ctx context.Context, id int64) error {
	if err := f.enter("DeleteTask"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

func (f *fakeClient) Register(ctx context.Context, req ports.RegisterRequest) error {
	return f.enter("Register")
}

func (f *fakeClient) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	if err := f.enter("Login"); err != nil {
		return nil, err
	}
	return &ports.LoginResponse{Token: "tok-test", UserID: 1, Role: entities.RoleDeveloper}, nil
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]entities.User, error) {
	if err := f.enter("ListUsers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	if err := f.enter("GetUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (f *fakeClient) UpdateUser(ctx context.Context, u entities.User) (*entities.User, error) {
	if err := f.enter("UpdateUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = u
		}
	}
	return &u, nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	if err := f.enter("DeleteUser"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

var _ ports.ResourceClient = (*fakeClient)(nil)

func testDeps(client ports.ResourceClient, session ports.SessionStore) Deps {
	return NewDeps(client, session, logger.Nop())
}

func ref(id int64) *int64 { return &id }
