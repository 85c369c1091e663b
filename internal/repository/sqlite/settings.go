package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"pomofocus/internal/domain"
)

// GetSettings returns the stored preferences of a user. found is false when
// the user never saved any.
func (s *Store) GetSettings(ctx context.Context, userID string) (settings domain.Settings, found bool, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var data string
	err = s.db.QueryRowContext(ctx, `SELECT data FROM user_settings WHERE user_id = ?`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return domain.Settings{}, false, nil
	}
	if err != nil {
		return domain.Settings{}, false, HandleDatabaseError("get settings", err)
	}

	// start from defaults so keys added later are filled in
	settings = domain.DefaultSettings()
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return domain.Settings{}, false, HandleDatabaseError("decode settings", err)
	}
	return settings, true, nil
}

// SaveSettings upserts the preference row of a user
func (s *Store) SaveSettings(ctx context.Context, userID string, settings domain.Settings) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	data, err := json.Marshal(settings)
	if err != nil {
		return HandleDatabaseError("encode settings", err)
	}

	query := `
	INSERT INTO user_settings (user_id, data, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	return Execute(ctx, s.db, "save settings", query, userID, string(data), FormatTimeForDB(s.timestamp()))
}

// DeleteSettings drops the preference row so defaults apply again
func (s *Store) DeleteSettings(ctx context.Context, userID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return Execute(ctx, s.db, "delete settings", `DELETE FROM user_settings WHERE user_id = ?`, userID)
}
