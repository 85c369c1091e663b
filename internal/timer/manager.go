package timer

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"pomofocus/internal/domain"
	"pomofocus/internal/errors"
	"pomofocus/internal/services"
)

// SessionRecorder stores finished focus intervals
type SessionRecorder interface {
	RecordSession(ctx context.Context, userID string, input services.SessionInput) (*domain.Session, error)
}

// SettingsSource provides per-user durations
type SettingsSource interface {
	GetSettings(ctx context.Context, userID string) (domain.Settings, error)
}

// SessionCounter seeds a new timer with the pomodoros already done today
type SessionCounter interface {
	TodayPomodoros(ctx context.Context, userID string) (int, error)
}

// FocusResolver checks that a project and task belong to the user. A task
// alone resolves to its own project.
type FocusResolver interface {
	ResolveFocus(ctx context.Context, userID string, projectID, projectTaskID *string) (*string, *string, error)
}

// Option configures a Manager
type Option func(*Manager)

// WithTickInterval changes how long one countdown second lasts
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

// WithSessionCounter seeds new timers with today's pomodoro count
func WithSessionCounter(c SessionCounter) Option {
	return func(m *Manager) { m.counter = c }
}

// WithFocusResolver validates focus targets before they are attached
func WithFocusResolver(r FocusResolver) Option {
	return func(m *Manager) { m.resolver = r }
}

type userTimer struct {
	timer         *Timer
	projectID     *string
	projectTaskID *string
	cancel        context.CancelFunc
	generation    int
}

// Manager owns one countdown per user. A ticker goroutine runs only while a
// countdown is active and is cancelled when it is paused, reset, switched or
// the manager shuts down.
type Manager struct {
	mu       sync.Mutex
	timers   map[string]*userTimer
	recorder SessionRecorder
	settings SettingsSource
	counter  SessionCounter
	resolver FocusResolver
	logger   *log.Logger
	interval time.Duration
	root     context.Context
	stop     context.CancelFunc
	wg       sync.WaitGroup
}

// NewManager creates a timer manager
func NewManager(recorder SessionRecorder, settings SettingsSource, logger *log.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = log.StandardLogger()
	}
	root, stop := context.WithCancel(context.Background())
	m := &Manager{
		timers:   make(map[string]*userTimer),
		recorder: recorder,
		settings: settings,
		logger:   logger,
		interval: time.Second,
		root:     root,
		stop:     stop,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire returns the user's timer with m.mu held, creating it on first
// use. Settings and the session count are read without the lock. The caller
// must unlock on success.
func (m *Manager) acquire(ctx context.Context, userID string) (*userTimer, error) {
	settings, err := m.settings.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	_, known := m.timers[userID]
	m.mu.Unlock()

	count := 0
	if !known && m.counter != nil {
		if count, err = m.counter.TodayPomodoros(ctx, userID); err != nil {
			m.logger.WithError(err).WithField("user_id", userID).Warn("failed to seed timer session count")
			count = 0
		}
	}

	m.mu.Lock()
	ut, ok := m.timers[userID]
	if !ok {
		ut = &userTimer{timer: New(settings, count)}
		m.timers[userID] = ut
		return ut, nil
	}
	ut.timer.ApplySettings(settings)
	return ut, nil
}

func (ut *userTimer) state() State {
	s := ut.timer.State()
	s.ProjectID = ut.projectID
	s.ProjectTaskID = ut.projectTaskID
	return s
}

// State returns the user's countdown
func (m *Manager) State(ctx context.Context, userID string) (State, error) {
	ut, err := m.acquire(ctx, userID)
	if err != nil {
		return State{}, err
	}
	defer m.mu.Unlock()
	return ut.state(), nil
}

// Toggle starts or pauses the user's countdown
func (m *Manager) Toggle(ctx context.Context, userID string) (State, error) {
	ut, err := m.acquire(ctx, userID)
	if err != nil {
		return State{}, err
	}
	defer m.mu.Unlock()
	if ut.timer.Toggle() {
		m.startTicker(userID, ut)
	} else {
		m.stopTicker(ut)
	}
	return ut.state(), nil
}

// Reset stops the countdown and refills the current mode
func (m *Manager) Reset(ctx context.Context, userID string) (State, error) {
	ut, err := m.acquire(ctx, userID)
	if err != nil {
		return State{}, err
	}
	defer m.mu.Unlock()
	m.stopTicker(ut)
	ut.timer.Reset()
	return ut.state(), nil
}

// ChangeMode switches the user's countdown to mode, stopped
func (m *Manager) ChangeMode(ctx context.Context, userID, mode string) (State, error) {
	ut, err := m.acquire(ctx, userID)
	if err != nil {
		return State{}, err
	}
	defer m.mu.Unlock()
	if err := ut.timer.ChangeMode(mode); err != nil {
		return State{}, err
	}
	m.stopTicker(ut)
	return ut.state(), nil
}

// Focus attributes future focus sessions to a project and optionally one of
// its tasks. Nil clears the attribution. Targets the user does not own are
// rejected.
func (m *Manager) Focus(ctx context.Context, userID string, projectID, projectTaskID *string) (State, error) {
	if m.resolver != nil {
		var err error
		if projectID, projectTaskID, err = m.resolver.ResolveFocus(ctx, userID, projectID, projectTaskID); err != nil {
			return State{}, err
		}
	}
	ut, err := m.acquire(ctx, userID)
	if err != nil {
		return State{}, err
	}
	defer m.mu.Unlock()
	ut.projectID = projectID
	ut.projectTaskID = projectTaskID
	return ut.state(), nil
}

// Shutdown cancels every running countdown and waits for the tickers to exit
func (m *Manager) Shutdown() {
	m.stop()
	m.wg.Wait()
}

// startTicker must be called with m.mu held
func (m *Manager) startTicker(userID string, ut *userTimer) {
	m.stopTicker(ut)
	ctx, cancel := context.WithCancel(m.root)
	ut.cancel = cancel
	ut.generation++
	m.wg.Add(1)
	go m.run(ctx, userID, ut, ut.generation)
}

// stopTicker must be called with m.mu held
func (m *Manager) stopTicker(ut *userTimer) {
	if ut.cancel != nil {
		ut.cancel()
		ut.cancel = nil
	}
}

func (m *Manager) run(ctx context.Context, userID string, ut *userTimer, generation int) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		m.mu.Lock()
		// A cancelled ticker may still win the lock once before noticing.
		if ctx.Err() != nil || ut.generation != generation {
			m.mu.Unlock()
			return
		}
		done, finished := ut.timer.Tick()
		keepRunning := ut.timer.Active()
		projectID, taskID := ut.projectID, ut.projectTaskID
		if !keepRunning {
			m.stopTicker(ut)
		}
		m.mu.Unlock()

		if finished {
			m.complete(userID, done, projectID, taskID)
		}
		if !keepRunning {
			return
		}
	}
}

// complete records a finished focus interval. Breaks are not stored.
func (m *Manager) complete(userID string, done Completion, projectID, taskID *string) {
	entry := m.logger.WithFields(log.Fields{
		"user_id":       userID,
		"mode":          done.Mode,
		"next":          done.Next,
		"session_count": done.SessionCount,
	})
	entry.Debug("timer interval finished")
	if done.Mode != domain.SessionPomodoro || m.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	input := services.SessionInput{
		DurationSeconds: done.DurationSeconds,
		Type:            string(domain.SessionPomodoro),
		ProjectID:       projectID,
		ProjectTaskID:   taskID,
	}
	_, err := m.recorder.RecordSession(ctx, userID, input)
	if err != nil && (projectID != nil || taskID != nil) && errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		// The focused project or task was deleted mid-session.
		entry.WithError(err).Warn("focus target gone, recording pomodoro without attribution")
		m.clearFocus(userID, projectID, taskID)
		input.ProjectID, input.ProjectTaskID = nil, nil
		_, err = m.recorder.RecordSession(ctx, userID, input)
	}
	if err != nil {
		entry.WithError(err).Error("failed to record pomodoro session")
	}
}

// clearFocus drops a stale attribution unless the user already picked another
func (m *Manager) clearFocus(userID string, projectID, taskID *string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ut, ok := m.timers[userID]
	if !ok || ut.projectID != projectID || ut.projectTaskID != taskID {
		return
	}
	ut.projectID, ut.projectTaskID = nil, nil
}
