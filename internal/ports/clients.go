package ports

import (
	"context"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// ProjectClient covers the project endpoints of the backend. Save is a
// PUT upsert: the observed backend creates projects through the update
// verb and the client preserves that contract.
type ProjectClient interface {
	ListProjects(ctx context.Context) ([]entities.Project, error)
	GetProject(ctx context.Context, id int64) (*entities.Project, error)
	ProjectsForUser(ctx context.Context, userID int64) ([]entities.Project, error)
	SaveProject(ctx context.Context, p entities.Project) (*entities.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// TaskClient covers the task endpoints of the backend.
type TaskClient interface {
	ListTasks(ctx context.Context) ([]entities.Task, error)
	GetTask(ctx context.Context, id int64) (*entities.Task, error)
	TasksForUser(ctx context.Context, userID int64) ([]entities.Task, error)
	CreateTask(ctx context.Context, t entities.Task) (*entities.Task, error)
	UpdateTask(ctx context.Context, t entities.Task) (*entities.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// UserClient covers the user and session-establishment endpoints.
type UserClient interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetUser(ctx context.Context, id int64) (*entities.User, error)
	UpdateUser(ctx context.Context, u entities.User) (*entities.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ResourceClient bundles the three resource surfaces; the REST adapter
// implements all of them on one connection.
type ResourceClient interface {
	ProjectClient
	TaskClient
	UserClient
}

// SessionStore mediates all access to the persisted session (token,
// user id, role). Implementations must be safe for concurrent reads.
type SessionStore interface {
	Token() (string, bool)
	Role() entities.Role
	UserID() (int64, bool)
	SetRole(r entities.Role) error
	SetSession(token string, userID int64, role entities.Role) error
	Clear() error
}

// Request/Response Types

type RegisterRequest struct {
	Name     string              `json:"name" validate:"required"`
	Surname  string              `json:"surname" validate:"required"`
	Mail     string              `json:"mail" validate:"required,email"`
	Password string              `json:"password" validate:"required,min=6"`
	Phone    string              `json:"phone" validate:"required,min=10"`
	Role     entities.Role       `json:"role"`
	Status   entities.UserStatus `json:"status"`
}

type LoginRequest struct {
	Mail     string `json:"mail" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse is the session-establishment payload. The backend
// returns the bearer token plus the identity the client persists.
type LoginResponse struct {
	Token  string        `json:"token"`
	UserID int64         `json:"id"`
	Role   entities.Role `json:"role"`
}
