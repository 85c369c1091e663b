package timer

import (
	"time"

	"pomofocus/internal/domain"
	"pomofocus/internal/validation"
)

// State is a snapshot of a countdown as reported to clients
type State struct {
	Mode             domain.SessionType `json:"mode"`
	RemainingSeconds int                `json:"time_left"`
	TotalSeconds     int                `json:"total_time"`
	Active           bool               `json:"is_active"`
	SessionCount     int                `json:"session_count"`
	Progress         float64            `json:"progress"`
	ProjectID        *string            `json:"project_id"`
	ProjectTaskID    *string            `json:"project_task_id"`
}

// Completion describes an interval that ran down to zero
type Completion struct {
	Mode            domain.SessionType
	DurationSeconds int
	Next            domain.SessionType
	SessionCount    int
}

// Timer is the pomodoro countdown. It is not safe for concurrent use; the
// Manager serialises access.
type Timer struct {
	settings  domain.Settings
	mode      domain.SessionType
	remaining int
	active    bool
	sessions  int
}

// New returns an inactive focus countdown
func New(settings domain.Settings, sessionCount int) *Timer {
	t := &Timer{settings: settings, mode: domain.SessionPomodoro, sessions: sessionCount}
	t.remaining = t.total()
	return t
}

func (t *Timer) total() int {
	return int(t.settings.Duration(t.mode) / time.Second)
}

// Toggle starts or pauses the countdown and returns the new running state
func (t *Timer) Toggle() bool {
	t.active = !t.active
	return t.active
}

// Reset stops the countdown and refills the current mode
func (t *Timer) Reset() {
	t.active = false
	t.remaining = t.total()
}

// ChangeMode switches to mode, stopped and full
func (t *Timer) ChangeMode(mode string) error {
	m := domain.SessionType(mode)
	if !m.IsValid() {
		ve := validation.NewValidationError()
		ve.AddInvalidValueError("mode", mode, "must be pomodoro, shortBreak or longBreak")
		return ve.AsAppError()
	}
	t.switchTo(m)
	return nil
}

func (t *Timer) switchTo(m domain.SessionType) {
	t.mode = m
	t.active = false
	t.remaining = t.total()
}

// Active reports whether the countdown is running
func (t *Timer) Active() bool {
	return t.active
}

// Tick advances a running countdown by one second. When the interval
// reaches zero the timer stops, moves to the next mode and reports the
// completion. Every LongBreakInterval-th focus session earns a long break.
func (t *Timer) Tick() (Completion, bool) {
	if !t.active {
		return Completion{}, false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return Completion{}, false
	}

	done := Completion{Mode: t.mode, DurationSeconds: t.total()}
	t.active = false

	next := domain.SessionPomodoro
	if t.mode == domain.SessionPomodoro {
		t.sessions++
		interval := t.settings.LongBreakInterval
		if interval < 1 {
			interval = 1
		}
		next = domain.SessionShortBreak
		if t.sessions%interval == 0 {
			next = domain.SessionLongBreak
		}
	}
	t.switchTo(next)

	if next == domain.SessionPomodoro {
		t.active = t.settings.AutoStartPomodoros
	} else {
		t.active = t.settings.AutoStartBreaks
	}

	done.Next = next
	done.SessionCount = t.sessions
	return done, true
}

// ApplySettings swaps the durations. A stopped timer still holding its full
// interval takes the new length. A started or paused countdown keeps its
// remaining time, capped to the new length.
func (t *Timer) ApplySettings(s domain.Settings) {
	full := !t.active && t.remaining == t.total()
	t.settings = s
	total := t.total()
	if full || t.remaining > total {
		t.remaining = total
	}
}

// State returns a snapshot of the countdown
func (t *Timer) State() State {
	total := t.total()
	progress := 0.0
	if total > 0 {
		progress = float64(total-t.remaining) / float64(total) * 100
	}
	return State{
		Mode:             t.mode,
		RemainingSeconds: t.remaining,
		TotalSeconds:     total,
		Active:           t.active,
		SessionCount:     t.sessions,
		Progress:         progress,
	}
}
