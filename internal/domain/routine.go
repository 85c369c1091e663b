package domain

import (
	"sort"
	"time"
)

// RoutineEntry is one time slot of a daily routine. Entries are free-form
// objects owned by the client; only the "completed" flag is interpreted.
type RoutineEntry map[string]interface{}

// Completed reports whether the slot has been ticked off.
func (e RoutineEntry) Completed() bool {
	v, ok := e["completed"].(bool)
	return ok && v
}

// Routine is the list of slots planned for one calendar day.
type Routine struct {
	UserID  string         `json:"-"`
	Date    string         `json:"date"`
	Entries []RoutineEntry `json:"entries"`
}

// FullyCompleted reports whether the day has at least one slot and every
// slot is completed.
func (r *Routine) FullyCompleted() bool {
	if len(r.Entries) == 0 {
		return false
	}
	for _, e := range r.Entries {
		if !e.Completed() {
			return false
		}
	}
	return true
}

// RoutineTemplate is a saved list of slots that can be applied to any day.
type RoutineTemplate struct {
	ID        string         `json:"id"`
	UserID    string         `json:"-"`
	Name      string         `json:"name"`
	Entries   []RoutineEntry `json:"entries"`
	CreatedAt time.Time      `json:"created_at"`
}

// RoutineDay is a calendar highlight for a day with a saved routine.
type RoutineDay struct {
	Date        string `json:"date"`
	Count       int    `json:"count"`
	IsCompleted bool   `json:"is_completed"`
}

// RoutineStreak reports consecutive fully completed days.
type RoutineStreak struct {
	CurrentStreak  int  `json:"current_streak"`
	TodayCompleted bool `json:"today_completed"`
}

// ComputeRoutineStreak counts today when it is fully completed, then walks
// back one day at a time from yesterday while each day exists and is fully
// completed. An unfinished today does not break a streak that ran through
// yesterday.
func ComputeRoutineStreak(routines []*Routine, today time.Time) RoutineStreak {
	byDate := make(map[string]*Routine, len(routines))
	for _, r := range routines {
		byDate[r.Date] = r
	}

	var s RoutineStreak
	day := StartOfDay(today)
	if r, ok := byDate[FormatDate(day)]; ok && r.FullyCompleted() {
		s.CurrentStreak++
		s.TodayCompleted = true
	}

	for check := day.AddDate(0, 0, -1); ; check = check.AddDate(0, 0, -1) {
		r, ok := byDate[FormatDate(check)]
		if !ok || !r.FullyCompleted() {
			break
		}
		s.CurrentStreak++
	}
	return s
}

// RoutineCalendar summarises each saved day, oldest first.
func RoutineCalendar(routines []*Routine) []RoutineDay {
	days := make([]RoutineDay, 0, len(routines))
	for _, r := range routines {
		days = append(days, RoutineDay{Date: r.Date, Count: len(r.Entries), IsCompleted: r.FullyCompleted()})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
