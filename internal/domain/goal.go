package domain

import "time"

// GoalType separates short-horizon goals from long-horizon ones.
type GoalType string

const (
	GoalShort GoalType = "short"
	GoalLong  GoalType = "long"
)

// NormalizeGoalType maps unknown values to short.
func NormalizeGoalType(s string) GoalType {
	if GoalType(s) == GoalLong {
		return GoalLong
	}
	return GoalShort
}

// GoalStatus is the progress state of a goal.
type GoalStatus string

const (
	GoalTodo       GoalStatus = "todo"
	GoalInProgress GoalStatus = "inprogress"
	GoalDone       GoalStatus = "done"
)

// ParseGoalStatus returns the status named by s, if any.
func ParseGoalStatus(s string) (GoalStatus, bool) {
	switch GoalStatus(s) {
	case GoalTodo, GoalInProgress, GoalDone:
		return GoalStatus(s), true
	}
	return "", false
}

// UncategorizedLabel groups goals without a category in analytics.
const UncategorizedLabel = "Uncategorized"

// Goal is a tracked objective with ordered steps and a daily streak.
type Goal struct {
	ID             string     `json:"id"`
	UserID         string     `json:"-"`
	Type           GoalType   `json:"type"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Deadline       string     `json:"deadline"`
	Priority       Priority   `json:"priority"`
	Status         GoalStatus `json:"status"`
	Category       string     `json:"category"`
	Color          string     `json:"color"`
	IsArchived     bool       `json:"is_archived"`
	IsPinned       bool       `json:"is_pinned"`
	Notes          string     `json:"notes"`
	Order          int        `json:"order"`
	Recurrence     string     `json:"recurrence"`
	StreakCount    int        `json:"streak_count"`
	LastStreakDate string     `json:"last_streak_date"`
	ProjectID      *string    `json:"project_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Steps          []GoalStep `json:"steps"`
}

// GoalStep is one checklist entry of a goal.
type GoalStep struct {
	ID          string `json:"id"`
	GoalID      string `json:"-"`
	Text        string `json:"text"`
	Done        bool   `json:"done"`
	IsMilestone bool   `json:"is_milestone"`
	Deadline    string `json:"deadline"`
	Position    int    `json:"-"`
}

// StepCounts returns the number of steps and how many are done.
func (g *Goal) StepCounts() (total, done int) {
	for _, s := range g.Steps {
		total++
		if s.Done {
			done++
		}
	}
	return total, done
}

// RecordStreak advances the streak for work done on today. Work on the same
// day is counted once, work on consecutive days extends the streak, and
// anything else starts a new streak of one.
func (g *Goal) RecordStreak(today time.Time) {
	day := StartOfDay(today)
	if g.LastStreakDate != "" {
		if last, err := ParseDate(g.LastStreakDate); err == nil {
			switch {
			case last.Equal(day):
				return
			case last.Equal(day.AddDate(0, 0, -1)):
				g.StreakCount++
				g.LastStreakDate = FormatDate(day)
				return
			}
		}
	}
	g.StreakCount = 1
	g.LastStreakDate = FormatDate(day)
}

// NamedCount is a labelled counter for charts.
type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// WeekdayProgress is one bar of the goals-completed-per-weekday chart.
type WeekdayProgress struct {
	Name      string `json:"name"`
	Completed int    `json:"completed"`
}

// GoalAnalytics summarises goals for the analytics panel.
type GoalAnalytics struct {
	Total          int                `json:"total"`
	Status         map[GoalStatus]int `json:"status"`
	Categories     []NamedCount       `json:"categories"`
	WeeklyProgress []WeekdayProgress  `json:"weekly_progress"`
}

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// AnalyzeGoals computes status and category distributions and, for goals
// finished within the last seven days, the weekday they were finished on.
func AnalyzeGoals(goals []*Goal, now time.Time) GoalAnalytics {
	a := GoalAnalytics{
		Total:          len(goals),
		Status:         map[GoalStatus]int{GoalTodo: 0, GoalInProgress: 0, GoalDone: 0},
		Categories:     []NamedCount{},
		WeeklyProgress: make([]WeekdayProgress, len(weekdayNames)),
	}
	for i, name := range weekdayNames {
		a.WeeklyProgress[i] = WeekdayProgress{Name: name}
	}

	categoryIndex := make(map[string]int)
	for _, g := range goals {
		if _, ok := a.Status[g.Status]; ok {
			a.Status[g.Status]++
		}

		cat := g.Category
		if cat == "" {
			cat = UncategorizedLabel
		}
		if i, ok := categoryIndex[cat]; ok {
			a.Categories[i].Value++
		} else {
			categoryIndex[cat] = len(a.Categories)
			a.Categories = append(a.Categories, NamedCount{Name: cat, Value: 1})
		}

		if g.Status != GoalDone || g.UpdatedAt.IsZero() {
			continue
		}
		age := now.Sub(g.UpdatedAt)
		if age < 0 || age >= 7*24*time.Hour {
			continue
		}
		idx := (int(g.UpdatedAt.UTC().Weekday()) + 6) % 7
		a.WeeklyProgress[idx].Completed++
	}
	return a
}
