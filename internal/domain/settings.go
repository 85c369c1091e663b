package domain

import "time"

// Dashboard widget identifiers accepted in a layout.
const (
	WidgetTasks          = "tasks"
	WidgetTimer          = "timer"
	WidgetWeeklySessions = "weekly_sessions"
	WidgetRoutine        = "routine"
	WidgetGoals          = "goals"
	WidgetInterviews     = "interviews"
	WidgetProjects       = "projects"
	WidgetGym            = "gym"
	WidgetQuote          = "quote"
)

// DefaultDashboardLayout is shown until a user rearranges their dashboard.
var DefaultDashboardLayout = []string{
	WidgetTimer, WidgetTasks, WidgetWeeklySessions, WidgetRoutine,
	WidgetGoals, WidgetInterviews, WidgetProjects, WidgetGym, WidgetQuote,
}

// IsKnownWidget reports whether id names a dashboard widget.
func IsKnownWidget(id string) bool {
	for _, w := range DefaultDashboardLayout {
		if w == id {
			return true
		}
	}
	return false
}

// Settings holds per-user timer preferences and the dashboard layout.
type Settings struct {
	FocusMinutes       int      `json:"focus_duration"`
	ShortBreakMinutes  int      `json:"short_break"`
	LongBreakMinutes   int      `json:"long_break"`
	LongBreakInterval  int      `json:"long_break_interval"`
	AutoStartBreaks    bool     `json:"auto_start_breaks"`
	AutoStartPomodoros bool     `json:"auto_start_pomodoros"`
	DashboardLayout    []string `json:"dashboard_layout"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	layout := make([]string, len(DefaultDashboardLayout))
	copy(layout, DefaultDashboardLayout)
	return Settings{
		FocusMinutes:       25,
		ShortBreakMinutes:  5,
		LongBreakMinutes:   15,
		LongBreakInterval:  4,
		AutoStartBreaks:    false,
		AutoStartPomodoros: false,
		DashboardLayout:    layout,
	}
}

// Duration returns the configured length of an interval of the given type.
func (s Settings) Duration(t SessionType) time.Duration {
	switch t {
	case SessionShortBreak:
		return time.Duration(s.ShortBreakMinutes) * time.Minute
	case SessionLongBreak:
		return time.Duration(s.LongBreakMinutes) * time.Minute
	default:
		return time.Duration(s.FocusMinutes) * time.Minute
	}
}

// SettingsPatch carries a partial settings update. Nil means unchanged.
type SettingsPatch struct {
	FocusMinutes       *int      `json:"focus_duration"`
	ShortBreakMinutes  *int      `json:"short_break"`
	LongBreakMinutes   *int      `json:"long_break"`
	LongBreakInterval  *int      `json:"long_break_interval"`
	AutoStartBreaks    *bool     `json:"auto_start_breaks"`
	AutoStartPomodoros *bool     `json:"auto_start_pomodoros"`
	DashboardLayout    *[]string `json:"dashboard_layout"`
}

// Merge returns s with the set fields of p applied.
func (s Settings) Merge(p SettingsPatch) Settings {
	if p.FocusMinutes != nil {
		s.FocusMinutes = *p.FocusMinutes
	}
	if p.ShortBreakMinutes != nil {
		s.ShortBreakMinutes = *p.ShortBreakMinutes
	}
	if p.LongBreakMinutes != nil {
		s.LongBreakMinutes = *p.LongBreakMinutes
	}
	if p.LongBreakInterval != nil {
		s.LongBreakInterval = *p.LongBreakInterval
	}
	if p.AutoStartBreaks != nil {
		s.AutoStartBreaks = *p.AutoStartBreaks
	}
	if p.AutoStartPomodoros != nil {
		s.AutoStartPomodoros = *p.AutoStartPomodoros
	}
	if p.DashboardLayout != nil {
		layout := make([]string, len(*p.DashboardLayout))
		copy(layout, *p.DashboardLayout)
		s.DashboardLayout = layout
	}
	return s
}
