package domain

import (
	"fmt"
	"time"
)

// ProjectStatus is the kanban column a project sits in.
type ProjectStatus string

const (
	ProjectBacklog    ProjectStatus = "backlog"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectReview     ProjectStatus = "review"
	ProjectCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists the kanban columns left to right.
var ProjectStatuses = []ProjectStatus{ProjectBacklog, ProjectInProgress, ProjectReview, ProjectCompleted}

// IsValid reports whether s is a known column.
func (s ProjectStatus) IsValid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsActive reports whether work on the project is under way.
func (s ProjectStatus) IsActive() bool {
	return s == ProjectInProgress || s == ProjectReview
}

// Label is the human-readable column title.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectBacklog:
		return "Backlog"
	case ProjectInProgress:
		return "In Progress"
	case ProjectReview:
		return "In Review"
	case ProjectCompleted:
		return "Completed"
	}
	return string(s)
}

// Column returns the left-to-right index of s, used for ordering.
func (s ProjectStatus) Column() int {
	for i, v := range ProjectStatuses {
		if s == v {
			return i
		}
	}
	return len(ProjectStatuses)
}

// ActivityType names an entry of the project activity feed.
type ActivityType string

const (
	ActivityProjectCreated ActivityType = "project_created"
	ActivityStatusChange   ActivityType = "status_change"
	ActivityArchived       ActivityType = "archived"
	ActivityTaskAdded      ActivityType = "task_added"
	ActivityTaskCompleted  ActivityType = "task_completed"
	ActivityTaskDeleted    ActivityType = "task_deleted"
)

// ActivityFeedLimit caps the activity endpoint.
const ActivityFeedLimit = 50

// Project is a kanban card with its own checklist of tasks.
type Project struct {
	ID               string        `json:"id"`
	UserID           string        `json:"-"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Notes            string        `json:"notes"`
	Color            *string       `json:"color"`
	Category         string        `json:"category"`
	Archived         bool          `json:"archived"`
	Status           ProjectStatus `json:"status"`
	Priority         Priority      `json:"priority"`
	DueDate          *time.Time    `json:"due_date"`
	Position         int           `json:"position"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	TotalTimeSeconds int           `json:"total_time_seconds"`
	Tasks            []ProjectTask `json:"tasks"`
}

// ProjectTask is a checklist item of a project.
type ProjectTask struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	TimeSeconds int        `json:"time_seconds"`
}

// ProjectActivity is one line of the project history feed.
type ProjectActivity struct {
	ID        string       `json:"id"`
	ProjectID string       `json:"-"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"created_at"`
}

// StatusChangeMessage describes a column move.
func StatusChangeMessage(from, to ProjectStatus) string {
	return fmt.Sprintf("Status changed from %s → %s", from.Label(), to.Label())
}

// ArchiveMessage describes an archive toggle.
func ArchiveMessage(archived bool) string {
	if archived {
		return "Project was archived"
	}
	return "Project was unarchived"
}

// ProjectCreatedMessage describes a new project.
func ProjectCreatedMessage(name string) string {
	return fmt.Sprintf("Project %q was created", name)
}

// TaskAddedMessage describes a new checklist item.
func TaskAddedMessage(title string) string {
	return fmt.Sprintf("Task %q was added", title)
}

// TaskCompletionMessage describes a checklist item being ticked or unticked.
func TaskCompletionMessage(title string, completed bool) string {
	if completed {
		return fmt.Sprintf("Task %q was completed ✓", title)
	}
	return fmt.Sprintf("Task %q was reopened", title)
}

// TaskDeletedMessage describes a removed checklist item.
func TaskDeletedMessage(title string) string {
	return fmt.Sprintf("Task %q was deleted", title)
}
