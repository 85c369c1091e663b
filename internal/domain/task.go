package domain

import "time"

// Priority ranks tasks, project tasks, projects and goals.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority returns the priority named by s, if any.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// NormalizePriority maps unknown values to medium.
func NormalizePriority(s string) Priority {
	if p, ok := ParsePriority(s); ok {
		return p
	}
	return PriorityMedium
}

// Task is an entry of the personal to-do list shown next to the timer.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Priority    Priority  `json:"priority"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskPatch carries the fields of a partial task update. Nil means unchanged.
type TaskPatch struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"is_completed"`
	Priority    *string `json:"priority"`
}

// Apply copies the set fields onto t. An unknown priority is ignored.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	if p.Priority != nil {
		if pr, ok := ParsePriority(*p.Priority); ok {
			t.Priority = pr
		}
	}
}
