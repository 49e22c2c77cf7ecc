package devserver

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

func ref(id int64) *int64 { return &id }

// seed loads a small demo dataset so the dashboard has something to
// show on first run. The demo accounts all use the password "crewdeck".
func (s *Server) seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte("crewdeck"), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorw("Failed to seed demo data", "error", err)
		return
	}

	atlas := s.store.upsertProject(entities.Project{Name: "Atlas", Date: "2024-03-01"})
	horizon := s.store.upsertProject(entities.Project{Name: "Horizon", Date: "2024-06-15"})

	manager, _ := s.store.createUser(entities.User{
		Name:      "Defne",
		Surname:   "Aksoy",
		Mail:      "defne@crewdeck.dev",
		Phone:     "+905550000001",
		Role:      entities.RoleProjectManager,
		Status:    entities.UserStatusAvailable,
		ProjectID: ref(atlas.ID),
	}, string(hash))

	developer, _ := s.store.createUser(entities.User{
		Name:      "Mert",
		Surname:   "Kaya",
		Mail:      "mert@crewdeck.dev",
		Phone:     "+905550000002",
		Role:      entities.RoleDeveloper,
		Status:    entities.UserStatusAvailable,
		ProjectID: ref(horizon.ID),
	}, string(hash))

	s.store.createUser(entities.User{
		Name:    "Guest",
		Surname: "Account",
		Mail:    "guest@crewdeck.dev",
		Phone:   "+905550000003",
		Role:    entities.RoleGuest,
		Status:  entities.UserStatusUnavailable,
	}, string(hash))

	review := s.store.createTask(entities.Task{
		Name:              "Review sprint backlog",
		Description:       "Groom and prioritize the Atlas backlog for the next sprint.",
		Status:            entities.TaskStatusTodo,
		AssignedProjectID: ref(atlas.ID),
		AssignedUserID:    ref(manager.ID),
	})

	api := s.store.createTask(entities.Task{
		Name:              "Implement reports endpoint",
		Description:       "Expose weekly progress reports over the Horizon API.",
		Status:            entities.TaskStatusInProgress,
		AssignedProjectID: ref(horizon.ID),
		AssignedUserID:    ref(developer.ID),
	})

	s.store.createTask(entities.Task{
		Name:        "Draft onboarding guide",
		Description: "Unassigned documentation task.",
		Status:      entities.TaskStatusTodo,
	})

	// Back-references mirror what the real backend stores.
	manager.TaskID = ref(review.ID)
	developer.TaskID = ref(api.ID)
	s.store.updateUser(manager)
	s.store.updateUser(developer)

	s.logger.Infow("Seeded demo data",
		"projects", 2,
		"tasks", 3,
		"users", 3,
	)
}
