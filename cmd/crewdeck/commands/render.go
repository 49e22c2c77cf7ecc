package commands

import (
	"context"
	"fmt"

	"github.com/crewdeck/crewdeck/internal/application/views"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

const absent = "—"

func renderHome(a *app, ctx context.Context) error {
	page := views.NewHomePage(ctx, a.deps)
	defer page.Close()
	page.Load()

	if page.State() == views.StateError {
		return fmt.Errorf("%s", page.Error())
	}

	fmt.Println("Home")
	projects, tasks, users := page.Counts()
	fmt.Printf("  projects: %s\n", countValue(projects))
	fmt.Printf("  tasks:    %s\n", countValue(tasks))
	fmt.Printf("  users:    %s\n", countValue(users))

	if warning := page.Warning(); warning != "" {
		fmt.Printf("  warning: %s\n", warning)
	}
	return nil
}

func renderProjects(a *app, ctx context.Context) error {
	page := views.NewProjectsPage(ctx, a.deps)
	defer page.Close()
	page.Load()

	if page.State() == views.StateError {
		return fmt.Errorf("%s", page.Error())
	}

	fmt.Printf("Projects (%s)\n", page.Role())
	if page.CanAdd() {
		fmt.Println("  [add project available]")
	}
	for _, card := range page.Cards() {
		printCard(card)
	}
	return nil
}

func renderTasks(a *app, ctx context.Context) error {
	page := views.NewTasksPage(ctx, a.deps)
	defer page.Close()
	page.Load()

	if page.State() == views.StateError {
		return fmt.Errorf("%s", page.Error())
	}

	fmt.Printf("Tasks (%s)\n", page.Role())
	if page.CanAdd() {
		fmt.Println("  [add task available]")
	}
	for _, card := range page.Cards() {
		printCard(card)
	}
	return nil
}

func renderUsers(a *app, ctx context.Context) error {
	page := views.NewUsersPage(ctx, a.deps)
	defer page.Close()
	page.Load()

	if page.State() == views.StateError {
		return fmt.Errorf("%s", page.Error())
	}

	fmt.Printf("Employees (%s)\n", page.Role())
	for _, card := range page.Cards() {
		printCard(card)
	}
	return nil
}

func renderUserDetails(a *app, ctx context.Context, userID int64) error {
	page := views.NewUserDetailsPage(ctx, a.deps, userID)
	defer page.Close()
	page.Load()

	if page.State() == views.StateError {
		return fmt.Errorf("%s", page.Error())
	}

	user := page.User()
	if user == nil {
		return entities.ErrUserNotFound
	}

	fmt.Printf("%s <%s>\n", user.FullName(), user.Mail)
	fmt.Printf("  phone:  %s\n", user.Phone)
	fmt.Printf("  role:   %s\n", user.Role)
	fmt.Printf("  status: %s\n", user.Status)

	projects, tasks := page.Assignments()
	fmt.Printf("  projects (%d):\n", len(projects))
	for _, p := range projects {
		fmt.Printf("    #%d %s (%s)\n", p.ID, p.Name, p.Date)
	}
	fmt.Printf("  tasks (%d):\n", len(tasks))
	for _, t := range tasks {
		fmt.Printf("    #%d %s [%s]\n", t.ID, t.Name, t.Status)
	}
	return nil
}

func renderProfile(a *app, ctx context.Context) error {
	page := views.NewProfilePage(ctx, a.deps)
	defer page.Close()
	page.Load()

	if page.State() == views.StateError {
		return fmt.Errorf("%s", page.Error())
	}

	user := page.User()
	if user == nil {
		return entities.ErrNotSignedIn
	}

	fmt.Printf("Profile: %s <%s>\n", user.FullName(), user.Mail)
	fmt.Printf("  phone:  %s\n", user.Phone)
	fmt.Printf("  role:   %s\n", user.Role)
	fmt.Printf("  status: %s\n", user.Status)
	if page.CanEdit() {
		fmt.Println("  [edit available]")
	}

	tasks := page.Tasks()
	fmt.Printf("  my tasks (%d):\n", len(tasks))
	for _, t := range tasks {
		fmt.Printf("    #%d %s [%s]\n", t.ID, t.Name, t.Status)
	}
	return nil
}

func printCard(card views.Card) {
	subtitle := card.Subtitle
	if subtitle == "" {
		subtitle = absent
	}
	fmt.Printf("  #%-4d %s\n", card.ID, card.Title)
	fmt.Printf("        %s\n", subtitle)
	for _, field := range card.Fields {
		fmt.Printf("        %s: %s\n", field.Label, field.Value)
	}
	if len(card.Actions) > 0 {
		fmt.Printf("        actions:")
		for _, action := range card.Actions {
			fmt.Printf(" %s", action)
		}
		fmt.Println()
	}
}

func countValue(n *int) string {
	if n == nil {
		return absent
	}
	return fmt.Sprintf("%d", *n)
}
