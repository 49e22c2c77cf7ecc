package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleDeveloper, ParseRole("DEVELOPER"))
	assert.Equal(t, RoleProjectManager, ParseRole("PROJECT_MANAGER"))
	assert.Equal(t, RoleGuest, ParseRole("GUEST"))

	// Absent or unrecognized roles degrade to guest.
	assert.Equal(t, RoleGuest, ParseRole(""))
	assert.Equal(t, RoleGuest, ParseRole("developer"))
	assert.Equal(t, RoleGuest, ParseRole("SUPERUSER"))
}

func TestTaskAssignedTo(t *testing.T) {
	id := int64(3)
	task := Task{AssignedUserID: &id}

	assert.True(t, task.AssignedTo(3))
	assert.False(t, task.AssignedTo(4))
	assert.False(t, (&Task{}).AssignedTo(3))
}

func TestProjectParsedDate(t *testing.T) {
	p := Project{Date: "2024-03-01"}
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.ParsedDate())

	rfc := Project{Date: "2024-03-01T10:30:00Z"}
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), rfc.ParsedDate())

	garbage := Project{Date: "yesterday"}
	assert.True(t, garbage.ParsedDate().IsZero())
}

func TestUserFullName(t *testing.T) {
	u := User{Name: "Defne", Surname: "Aksoy"}
	assert.Equal(t, "Defne Aksoy", u.FullName())
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, TaskStatusNeedsReview.IsValid())
	assert.False(t, TaskStatus("DONE").IsValid())
	assert.True(t, UserStatusUnavailable.IsValid())
	assert.False(t, UserStatus("BUSY").IsValid())
}
