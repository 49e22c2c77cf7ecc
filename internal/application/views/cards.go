package views

import (
	"github.com/crewdeck/crewdeck/internal/application/enrich"
	"github.com/crewdeck/crewdeck/internal/application/policy"
	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// absentLabel marks an unresolved or unassigned reference on a card.
const absentLabel = "—"

// Card is a renderable row: entity fields plus the actions the viewer
// role unlocks. Cards never fetch; pages supply everything.
type Card struct {
	ID       int64
	Title    string
	Subtitle string
	Fields   []CardField
	Actions  []policy.Action
}

// CardField is one labeled value on a card.
type CardField struct {
	Label string
	Value string
}

// ProjectCard renders one project row.
func ProjectCard(p entities.Project, role entities.Role) Card {
	return Card{
		ID:       p.ID,
		Title:    p.Name,
		Subtitle: p.Date,
		Actions:  policy.CardActions(role, policy.ResourceProjects),
	}
}

// TaskCard renders one task row with its resolved references.
func TaskCard(v enrich.TaskView, role entities.Role) Card {
	return Card{
		ID:       v.ID,
		Title:    v.Name,
		Subtitle: v.Description,
		Fields: []CardField{
			{Label: "status", Value: string(v.Status)},
			{Label: "project", Value: refValue(v.AssignedProjectID, v.ProjectName)},
			{Label: "assignee", Value: refValue(v.AssignedUserID, v.UserName)},
		},
		Actions: policy.CardActions(role, policy.ResourceTasks),
	}
}

// UserCard renders one employee row with its resolved references.
func UserCard(v enrich.UserView, role entities.Role) Card {
	return Card{
		ID:       v.ID,
		Title:    v.FullName(),
		Subtitle: v.Mail,
		Fields: []CardField{
			{Label: "role", Value: string(v.Role)},
			{Label: "status", Value: string(v.Status)},
			{Label: "project", Value: refValue(v.ProjectID, v.ProjectName)},
			{Label: "task", Value: refValue(v.TaskID, v.TaskName)},
		},
		Actions: policy.CardActions(role, policy.ResourceUsers),
	}
}

// refValue shows a resolved reference name, or the absent marker when
// the reference is missing or its lookup failed.
func refValue(id *int64, name *string) string {
	if id == nil || name == nil {
		return absentLabel
	}
	return *name
}
