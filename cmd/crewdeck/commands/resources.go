package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crewdeck/crewdeck/internal/application/forms"
	"github.com/crewdeck/crewdeck/internal/application/views"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// optionalRef reads an int64 flag as a nullable reference: the flag
// left unset means unassigned.
func optionalRef(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetInt64(name)
	return &value
}

// NewProjectsCommand creates the projects command group
func NewProjectsCommand() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Project page commands",
	}

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Run: func(cmd *cobra.Command, args []string) {
			run(renderProjects)
		},
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			date, _ := cmd.Flags().GetString("date")

			run(func(a *app, ctx context.Context) error {
				page := views.NewProjectsPage(ctx, a.deps)
				defer page.Close()
				page.Load()

				page.OpenCreate()
				if err := page.SaveNew(forms.ProjectForm{Name: name, Date: date}); err != nil {
					return err
				}
				fmt.Println("Project created.")
				return nil
			})
		},
	}
	addCmd.Flags().String("name", "", "Project name (required)")
	addCmd.Flags().String("date", "", "Project date, e.g. 2024-06-15 (required)")
	projectsCmd.AddCommand(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename or redate a project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				page := views.NewProjectsPage(ctx, a.deps)
				defer page.Close()
				page.Load()

				current, ok := page.OpenEdit(id)
				if !ok {
					return entities.ErrProjectNotFound
				}

				form := forms.ProjectForm{Name: current.Name, Date: current.Date}
				if cmd.Flags().Changed("name") {
					form.Name, _ = cmd.Flags().GetString("name")
				}
				if cmd.Flags().Changed("date") {
					form.Date, _ = cmd.Flags().GetString("date")
				}

				if err := page.SaveEdit(id, form); err != nil {
					return err
				}
				fmt.Println("Project updated.")
				return nil
			})
		},
	}
	editCmd.Flags().String("name", "", "New project name")
	editCmd.Flags().String("date", "", "New project date")
	projectsCmd.AddCommand(editCmd)

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				page := views.NewProjectsPage(ctx, a.deps)
				defer page.Close()
				page.Load()

				if !page.OpenDelete(id) {
					return entities.ErrProjectNotFound
				}
				if err := page.ConfirmDelete(id); err != nil {
					return err
				}
				fmt.Println("Project deleted.")
				return nil
			})
		},
	})

	return projectsCmd
}

// NewTasksCommand creates the tasks command group
func NewTasksCommand() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task page commands",
	}

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all tasks with resolved references",
		Run: func(cmd *cobra.Command, args []string) {
			run(renderTasks)
		},
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			status, _ := cmd.Flags().GetString("status")

			run(func(a *app, ctx context.Context) error {
				page := views.NewTasksPage(ctx, a.deps)
				defer page.Close()
				page.Load()

				page.OpenCreate()
				form := forms.TaskForm{
					Name:        name,
					Description: description,
					Status:      entities.TaskStatus(status),
				}
				if err := page.SaveNew(form, optionalRef(cmd, "project"), optionalRef(cmd, "user")); err != nil {
					return err
				}
				fmt.Println("Task created.")
				return nil
			})
		},
	}
	addCmd.Flags().String("name", "", "Task name (required)")
	addCmd.Flags().String("description", "", "Task description")
	addCmd.Flags().String("status", string(entities.TaskStatusTodo), "Task status (TODO, IN_PROGRESS, NEEDS_REVIEW, FINISHED)")
	addCmd.Flags().Int64("project", 0, "Assigned project id")
	addCmd.Flags().Int64("user", 0, "Assigned user id")
	tasksCmd.AddCommand(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				page := views.NewTasksPage(ctx, a.deps)
				defer page.Close()
				page.Load()

				current, ok := page.OpenEdit(id)
				if !ok {
					return entities.ErrTaskNotFound
				}

				edit := views.TaskEdit{
					Name:              current.Name,
					Description:       current.Description,
					Status:            current.Status,
					AssignedProjectID: current.AssignedProjectID,
					AssignedUserID:    current.AssignedUserID,
				}
				if cmd.Flags().Changed("name") {
					edit.Name, _ = cmd.Flags().GetString("name")
				}
				if cmd.Flags().Changed("description") {
					edit.Description, _ = cmd.Flags().GetString("description")
				}
				if cmd.Flags().Changed("status") {
					status, _ := cmd.Flags().GetString("status")
					edit.Status = entities.TaskStatus(status)
				}
				if cmd.Flags().Changed("project") {
					edit.AssignedProjectID = optionalRef(cmd, "project")
				}
				if cmd.Flags().Changed("user") {
					edit.AssignedUserID = optionalRef(cmd, "user")
				}

				if err := page.SaveEdit(id, edit); err != nil {
					return err
				}
				fmt.Println("Task updated.")
				return nil
			})
		},
	}
	editCmd.Flags().String("name", "", "New task name")
	editCmd.Flags().String("description", "", "New task description")
	editCmd.Flags().String("status", "", "New task status")
	editCmd.Flags().Int64("project", 0, "New assigned project id")
	editCmd.Flags().Int64("user", 0, "New assigned user id")
	tasksCmd.AddCommand(editCmd)

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				page := views.NewTasksPage(ctx, a.deps)
				defer page.Close()
				page.Load()

				if !page.OpenDelete(id) {
					return entities.ErrTaskNotFound
				}
				if err := page.ConfirmDelete(id); err != nil {
					return err
				}
				fmt.Println("Task deleted.")
				return nil
			})
		},
	})

	return tasksCmd
}

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Employee page commands",
	}

	usersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all employees with resolved references",
		Run: func(cmd *cobra.Command, args []string) {
			run(renderUsers)
		},
	})

	usersCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one employee with their assignments",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return renderUserDetails(a, ctx, id)
			})
		},
	})

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an employee's role or status",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				page := views.NewUsersPage(ctx, a.deps)
				defer page.Close()
				page.Load()

				current, ok := page.OpenEdit(id)
				if !ok {
					return entities.ErrUserNotFound
				}

				edit := views.UserEdit{Role: current.Role, Status: current.Status}
				if cmd.Flags().Changed("role") {
					role, _ := cmd.Flags().GetString("role")
					edit.Role = entities.Role(role)
				}
				if cmd.Flags().Changed("status") {
					status, _ := cmd.Flags().GetString("status")
					edit.Status = entities.UserStatus(status)
				}

				if err := page.SaveEdit(id, edit); err != nil {
					return err
				}
				fmt.Println("Employee updated.")
				return nil
			})
		},
	}
	editCmd.Flags().String("role", "", "New role (DEVELOPER, PROJECT_MANAGER, GUEST)")
	editCmd.Flags().String("status", "", "New status (AVAILABLE, UNAVAILABLE)")
	usersCmd.AddCommand(editCmd)

	usersCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				page := views.NewUsersPage(ctx, a.deps)
				defer page.Close()
				page.Load()

				if !page.OpenDelete(id) {
					return entities.ErrUserNotFound
				}
				if err := page.ConfirmDelete(id); err != nil {
					return err
				}
				fmt.Println("Employee deleted.")
				return nil
			})
		},
	})

	return usersCmd
}

// NewProfileCommand creates the profile command group
func NewProfileCommand() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the signed-in user's profile",
		Run: func(cmd *cobra.Command, args []string) {
			run(renderProfile)
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Change your own role or status",
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				page := views.NewProfilePage(ctx, a.deps)
				defer page.Close()
				page.Load()

				current, ok := page.OpenEdit()
				if !ok {
					return fmt.Errorf("profile is not editable")
				}

				if cmd.Flags().Changed("role") {
					role, _ := cmd.Flags().GetString("role")
					current.Role = entities.Role(role)
				}
				if cmd.Flags().Changed("status") {
					status, _ := cmd.Flags().GetString("status")
					current.Status = entities.UserStatus(status)
				}

				if err := page.SaveEdit(current); err != nil {
					return err
				}
				fmt.Println("Profile updated.")
				return nil
			})
		},
	}
	editCmd.Flags().String("role", "", "New role (PROJECT_MANAGER only)")
	editCmd.Flags().String("status", "", "New status (AVAILABLE, UNAVAILABLE)")
	profileCmd.AddCommand(editCmd)

	return profileCmd
}
