package domain

import "time"

// SessionType is the kind of interval a completed session covered. It doubles
// as the timer mode.
type SessionType string

const (
	SessionPomodoro   SessionType = "pomodoro"
	SessionShortBreak SessionType = "shortBreak"
	SessionLongBreak  SessionType = "longBreak"
)

// IsValid reports whether t is a known session type.
func (t SessionType) IsValid() bool {
	switch t {
	case SessionPomodoro, SessionShortBreak, SessionLongBreak:
		return true
	}
	return false
}

// Session is a completed focus or break interval.
type Session struct {
	ID              string      `json:"id"`
	UserID          string      `json:"-"`
	DurationSeconds int         `json:"duration_seconds"`
	Type            SessionType `json:"type"`
	ProjectID       *string     `json:"project_id"`
	ProjectTaskID   *string     `json:"project_task_id"`
	CompletedAt     time.Time   `json:"completed_at"`
}

// DailyCount is one bar of the weekly focus chart.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeeklyCounts zero-fills the seven days ending on today (oldest first) and
// adds one per completion time that falls inside the window.
func WeeklyCounts(today time.Time, completions []time.Time) []DailyCount {
	start := StartOfDay(today).AddDate(0, 0, -6)
	counts := make([]DailyCount, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := FormatDate(start.AddDate(0, 0, i))
		counts[i] = DailyCount{Date: day}
		index[day] = i
	}
	for _, c := range completions {
		if i, ok := index[FormatDate(c)]; ok {
			counts[i].Count++
		}
	}
	return counts
}
