package devserver

import (
	"sort"
	"sync"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// account pairs a user record with its password hash; the hash never
// leaves the store.
type account struct {
	user entities.User
	hash string
}

// store is the in-memory dataset behind the devserver. Everything is
// guarded by one mutex; the dataset is small by construction.
type store struct {
	mu       sync.RWMutex
	nextID   int64
	projects map[int64]entities.Project
	tasks    map[int64]entities.Task
	accounts map[int64]account
}

func newStore() *store {
	return &store{
		nextID:   1,
		projects: make(map[int64]entities.Project),
		tasks:    make(map[int64]entities.Task),
		accounts: make(map[int64]account),
	}
}

func (s *store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Projects

func (s *store) listProjects() []entities.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sortByID(out, func(p entities.Project) int64 { return p.ID })
	return out
}

func (s *store) getProject(id int64) (entities.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	return p, ok
}

// upsertProject implements the backend's create-via-PUT contract: a
// zero or unknown id creates, a known id replaces.
func (s *store) upsertProject(p entities.Project) entities.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.allocID()
	}
	s.projects[p.ID] = p
	return p
}

func (s *store) deleteProject(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false
	}
	delete(s.projects, id)
	return true
}

// Tasks

func (s *store) listTasks() []entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sortByID(out, func(t entities.Task) int64 { return t.ID })
	return out
}

func (s *store) getTask(id int64) (entities.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	return t, ok
}

func (s *store) tasksForUser(userID int64) []entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entities.Task
	for _, t := range s.tasks {
		if t.AssignedTo(userID) {
			out = append(out, t)
		}
	}
	sortByID(out, func(t entities.Task) int64 { return t.ID })
	return out
}

func (s *store) createTask(t entities.Task) entities.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.allocID()
	s.tasks[t.ID] = t
	return t
}

func (s *store) updateTask(t entities.Task) (entities.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		return entities.Task{}, false
	}
	s.tasks[t.ID] = t
	return t, true
}

func (s *store) deleteTask(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// Users

func (s *store) listUsers() []entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	sortByID(out, func(u entities.User) int64 { return u.ID })
	return out
}

func (s *store) getUser(id int64) (entities.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	return a.user, ok
}

func (s *store) findByMail(mail string) (entities.User, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.user.Mail == mail {
			return a.user, a.hash, true
		}
	}
	return entities.User{}, "", false
}

func (s *store) createUser(u entities.User, hash string) (entities.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.user.Mail == u.Mail {
			return entities.User{}, false
		}
	}
	u.ID = s.allocID()
	s.accounts[u.ID] = account{user: u, hash: hash}
	return u, true
}

func (s *store) updateUser(u entities.User) (entities.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[u.ID]
	if !ok {
		return entities.User{}, false
	}
	a.user = u
	s.accounts[u.ID] = a
	return u, true
}

func (s *store) deleteUser(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return false
	}
	delete(s.accounts, id)
	return true
}

// projectsForUser returns the project a user is assigned to, as a
// list, matching the projects-by-user endpoint shape.
func (s *store) projectsForUser(userID int64) []entities.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[userID]
	if !ok || a.user.ProjectID == nil {
		return nil
	}
	p, ok := s.projects[*a.user.ProjectID]
	if !ok {
		return nil
	}
	return []entities.Project{p}
}

func sortByID[T any](items []T, idOf func(T) int64) {
	sort.Slice(items, func(i, j int) bool {
		return idOf(items[i]) < idOf(items[j])
	})
}
