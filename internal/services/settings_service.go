package services

import (
	"context"

	"pomofocus/internal/domain"
	"pomofocus/internal/validation"
)

// settingsServiceImpl implements the SettingsService interface
type settingsServiceImpl struct {
	deps
	repo SettingsRepository
}

func newSettingsService(repo SettingsRepository, d deps) *settingsServiceImpl {
	return &settingsServiceImpl{deps: d, repo: repo}
}

// defaults are the built-in preferences with the configured timer lengths
func (s *settingsServiceImpl) defaults() domain.Settings {
	settings := domain.DefaultSettings()
	t := s.cfg.Timer
	if t.FocusMinutes > 0 {
		settings.FocusMinutes = t.FocusMinutes
	}
	if t.ShortBreakMinutes > 0 {
		settings.ShortBreakMinutes = t.ShortBreakMinutes
	}
	if t.LongBreakMinutes > 0 {
		settings.LongBreakMinutes = t.LongBreakMinutes
	}
	if t.LongBreakInterval > 0 {
		settings.LongBreakInterval = t.LongBreakInterval
	}
	return settings
}

// GetSettings returns the stored preferences or the defaults
func (s *settingsServiceImpl) GetSettings(ctx context.Context, userID string) (domain.Settings, error) {
	settings, found, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return s.defaults(), nil
	}
	if settings.DashboardLayout == nil {
		settings.DashboardLayout = s.defaults().DashboardLayout
	}
	return settings, nil
}

// UpdateSettings merges patch onto the current preferences
func (s *settingsServiceImpl) UpdateSettings(ctx context.Context, userID string, patch domain.SettingsPatch) (domain.Settings, error) {
	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}

	merged := current.Merge(patch)
	if err := s.validator.ValidateSettings(merged); err != nil {
		return domain.Settings{}, validation.Wrap(err)
	}

	if err := s.repo.SaveSettings(ctx, userID, merged); err != nil {
		return domain.Settings{}, err
	}
	s.invalidate(ctx, userID)
	return merged, nil
}

// ResetSettings forgets the stored preferences
func (s *settingsServiceImpl) ResetSettings(ctx context.Context, userID string) (domain.Settings, error) {
	if err := s.repo.DeleteSettings(ctx, userID); err != nil {
		return domain.Settings{}, err
	}
	s.invalidate(ctx, userID)
	return s.defaults(), nil
}
