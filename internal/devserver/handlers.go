package devserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
	"github.com/crewdeck/crewdeck/internal/ports"
)

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// Auth handlers

func (s *Server) register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	role := req.Role
	if !role.IsValid() {
		role = entities.RoleDeveloper
	}
	status := req.Status
	if !status.IsValid() {
		status = entities.UserStatusAvailable
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorw("Failed to hash password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to register user")
	}

	user := entities.User{
		Name:    req.Name,
		Surname: req.Surname,
		Mail:    req.Mail,
		Phone:   req.Phone,
		Role:    role,
		Status:  status,
	}

	created, ok := s.store.createUser(user, string(hash))
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "Mail already registered")
	}

	s.logger.Infow("User registered", "user_id", created.ID, "mail", created.Mail)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, hash, ok := s.store.findByMail(req.Mail)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		s.logger.Warnw("Failed login attempt", "mail", req.Mail, "ip", c.RealIP())
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Errorw("Failed to sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to login")
	}

	s.logger.Infow("User logged in", "user_id", user.ID)
	return c.JSON(http.StatusOK, ports.LoginResponse{
		Token:  token,
		UserID: user.ID,
		Role:   user.Role,
	})
}

// Project handlers

func (s *Server) listProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listProjects())
}

func (s *Server) getProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, ok := s.store.getProject(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) projectsForUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	projects := s.store.projectsForUser(id)
	if projects == nil {
		projects = []entities.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) upsertProject(c echo.Context) error {
	var project entities.Project
	if err := c.Bind(&project); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if project.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Project name is required")
	}

	saved := s.store.upsertProject(project)
	s.logger.Infow("Project saved", "project_id", saved.ID)
	return c.JSON(http.StatusOK, saved)
}

func (s *Server) deleteProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if !s.store.deleteProject(id) {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	s.logger.Infow("Project deleted", "project_id", id)
	return c.NoContent(http.StatusNoContent)
}

// Task handlers

func (s *Server) listTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listTasks())
}

func (s *Server) getTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, ok := s.store.getTask(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) tasksForUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tasks := s.store.tasksForUser(id)
	if tasks == nil {
		tasks = []entities.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTask(c echo.Context) error {
	var task entities.Task
	if err := c.Bind(&task); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if task.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Task name is required")
	}
	if !task.Status.IsValid() {
		task.Status = entities.TaskStatusTodo
	}

	created := s.store.createTask(task)
	s.logger.Infow("Task created", "task_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateTask(c echo.Context) error {
	var task entities.Task
	if err := c.Bind(&task); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if !task.Status.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task status")
	}

	updated, ok := s.store.updateTask(task)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	s.logger.Infow("Task updated", "task_id", task.ID)
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if !s.store.deleteTask(id) {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	s.logger.Infow("Task deleted", "task_id", id)
	return c.NoContent(http.StatusNoContent)
}

// User handlers

func (s *Server) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.listUsers())
}

func (s *Server) getUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, ok := s.store.getUser(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c echo.Context) error {
	var user entities.User
	if err := c.Bind(&user); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if !user.Role.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid role")
	}
	if !user.Status.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	updated, ok := s.store.updateUser(user)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	s.logger.Infow("User updated", "user_id", user.ID)
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if !s.store.deleteUser(id) {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	s.logger.Infow("User deleted", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}
