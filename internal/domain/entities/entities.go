package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNotSignedIn     = errors.New("not signed in")
	ErrActionDenied    = errors.New("action not permitted for role")
)

// Enums and types
type Role string

const (
	RoleDeveloper      Role = "DEVELOPER"
	RoleProjectManager Role = "PROJECT_MANAGER"
	RoleGuest          Role = "GUEST"
)

type UserStatus string

const (
	UserStatusAvailable   UserStatus = "AVAILABLE"
	UserStatusUnavailable UserStatus = "UNAVAILABLE"
)

type TaskStatus string

const (
	TaskStatusTodo        TaskStatus = "TODO"
	TaskStatusInProgress  TaskStatus = "IN_PROGRESS"
	TaskStatusNeedsReview TaskStatus = "NEEDS_REVIEW"
	TaskStatusFinished    TaskStatus = "FINISHED"
)

// Project represents a project as served by the backend.
// Field names on the wire follow the existing API contract.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"projectName"`
	Date string `json:"projectDate"` // ISO 8601 string, passed through as-is
}

// Task represents a task as served by the backend. The assigned project
// and user references are single-valued and nullable; nil means
// unassigned.
type Task struct {
	ID                int64      `json:"id"`
	Name              string     `json:"task_name"`
	Description       string     `json:"task_description"`
	Status            TaskStatus `json:"status"`
	AssignedProjectID *int64     `json:"assignedProjectId"`
	AssignedUserID    *int64     `json:"assignedUserId"`
}

// User represents an employee account. GorevID is the user's assigned
// task reference; the legacy wire name is kept for backend
// compatibility.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Mail      string     `json:"mail"`
	Phone     string     `json:"phone"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status"`
	ProjectID *int64     `json:"projectId"`
	TaskID    *int64     `json:"gorevId"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}

func (u *User) IsAvailable() bool {
	return u.Status == UserStatusAvailable
}

// HasProject reports whether the user carries a project reference.
func (u *User) HasProject() bool {
	return u.ProjectID != nil
}

// HasTask reports whether the user carries a task reference.
func (u *User) HasTask() bool {
	return u.TaskID != nil
}

// HasProject reports whether the task carries a project reference.
func (t *Task) HasProject() bool {
	return t.AssignedProjectID != nil
}

// HasAssignee reports whether the task carries a user reference.
func (t *Task) HasAssignee() bool {
	return t.AssignedUserID != nil
}

// AssignedTo reports whether the task is assigned to the given user.
func (t *Task) AssignedTo(userID int64) bool {
	return t.AssignedUserID != nil && *t.AssignedUserID == userID
}

// ParsedDate parses the project date, falling back to the zero time
// when the backend sends something unparseable.
func (p *Project) ParsedDate() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, p.Date); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Utility methods
func (r Role) IsValid() bool {
	switch r {
	case RoleDeveloper, RoleProjectManager, RoleGuest:
		return true
	default:
		return false
	}
}

// ParseRole maps a stored role value to a Role, defaulting to GUEST
// for absent or unrecognized input.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.IsValid() {
		return RoleGuest
	}
	return r
}

func (us UserStatus) IsValid() bool {
	switch us {
	case UserStatusAvailable, UserStatusUnavailable:
		return true
	default:
		return false
	}
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusNeedsReview, TaskStatusFinished:
		return true
	default:
		return false
	}
}
