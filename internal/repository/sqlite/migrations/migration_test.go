package migrations

import (
	"database/sql"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"pomofocus/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestNormalizeTimestampsMigration(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE pomodoro_sessions (
		id TEXT PRIMARY KEY,
		completed_at TEXT NOT NULL
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO pomodoro_sessions (id, completed_at) VALUES
		('a', '2025-06-23 11:47:24.890799237 +0100 BST m=+0.002409088'),
		('b', '2025-06-23 11:20:10.149658307 +0100 BST'),
		('c', '2025-06-23 11:20:10'),
		('d', '2025-06-23T11:20:10+01:00'),
		('e', '2025-06-23T10:20:10.000000Z')
	`)
	require.NoError(t, err)

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, Up_000003_normalize_timestamps(tx))
	require.NoError(t, tx.Commit())

	rows, err := db.Query("SELECT id, completed_at FROM pomodoro_sessions ORDER BY id")
	require.NoError(t, err)
	defer rows.Close()

	canonical := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}Z$`)
	got := map[string]string{}
	for rows.Next() {
		var id, completedAt string
		require.NoError(t, rows.Scan(&id, &completedAt))
		logging.Debugf("  ID %s: %s\n", id, completedAt)
		require.Truef(t, canonical.MatchString(completedAt), "not canonical: %s", completedAt)
		got[id] = completedAt
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, "2025-06-23T10:47:24.890799Z", got["a"])
	assert.Equal(t, "2025-06-23T11:20:10.000000Z", got["c"])
	assert.Equal(t, "2025-06-23T10:20:10.000000Z", got["d"])
	assert.Equal(t, got["d"], got["e"])
}

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"should keep canonical values", "2026-01-02T03:04:05.123456Z", "2026-01-02T03:04:05.123456Z", false},
		{"should convert offsets to UTC", "2026-01-02T03:04:05-05:00", "2026-01-02T08:04:05.000000Z", false},
		{"should accept sqlite defaults", "2026-01-02 03:04:05", "2026-01-02T03:04:05.000000Z", false},
		{"should accept bare dates", "2026-01-02", "2026-01-02T00:00:00.000000Z", false},
		{"should reject garbage", "yesterday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeTimestamp(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunMigrations_FreshDatabase(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, RunMigrations(db))
	// second run is a no-op
	require.NoError(t, RunMigrations(db))

	statuses, err := GetStatus(db)
	require.NoError(t, err)
	require.Len(t, statuses, 4)
	for _, s := range statuses {
		assert.Truef(t, s.Applied, "migration %d not applied", s.Version)
		assert.False(t, s.Dirty)
	}
	assert.Equal(t, "initial_schema", statuses[0].Name)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'goal_steps'").Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name LIKE 'gym_%'").Scan(&n))
	assert.Equal(t, 4, n)
}

func TestRollback(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, RunMigrations(db))

	version, err := Rollback(db)
	require.NoError(t, err)
	assert.Equal(t, 4, version)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'gym_days'").Scan(&n))
	assert.Equal(t, 0, n)

	version, err = Rollback(db)
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	version, err = Rollback(db)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_tasks_user'").Scan(&n))
	assert.Equal(t, 0, n)

	// re-applying restores the rolled back versions
	require.NoError(t, RunMigrations(db))
	statuses, err := GetStatus(db)
	require.NoError(t, err)
	for _, s := range statuses {
		assert.True(t, s.Applied)
	}
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	// Create migrations table
	_, err = db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	if err != nil {
		t.Fatalf("failed to create migrations table: %v", err)
	}

	// Mark a migration as dirty
	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	if err != nil {
		t.Fatalf("failed to insert dirty migration: %v", err)
	}

	// Try to run migrations - should fail due to dirty state
	err = RunMigrations(db)
	if err == nil {
		t.Fatal("expected RunMigrations to fail on dirty database, but it succeeded")
	}

	if !strings.Contains(err.Error(), "database is in a dirty state") {
		t.Errorf("expected error to mention dirty state, got: %v", err)
	}

	if !strings.Contains(err.Error(), "failed migration(s): [1]") {
		t.Errorf("expected error to mention failed migration version 1, got: %v", err)
	}
}

func TestRunMigrations_FailureMarksDirtyAndKeepsBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	// a pre-existing users table makes the initial schema fail
	_, err = db.Exec(`CREATE TABLE users (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	err = RunMigrations(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply migration 1")
	assert.Contains(t, err.Error(), "backup kept at")

	backups, err := filepath.Glob(dbPath + ".backup.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	err = RunMigrations(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed migration(s): [1]")
}

func TestRunMigrations_BackupAndRestore(t *testing.T) {
	// Create a temporary database file
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	// Create some initial data
	_, err = db.Exec(`CREATE TABLE test_data (id INTEGER PRIMARY KEY, value TEXT)`)
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}

	_, err = db.Exec(`INSERT INTO test_data (value) VALUES ('original data')`)
	if err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}

	// Run migrations - this should create a backup
	err = RunMigrations(db)
	if err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	// Check that backup files were cleaned up (successful migration)
	backupFiles, err := filepath.Glob(dbPath + ".backup.*")
	if err != nil {
		t.Fatalf("failed to check for backup files: %v", err)
	}
	if len(backupFiles) > 0 {
		t.Errorf("expected no backup files after successful migration, found: %v", backupFiles)
	}

	// Verify the original data is still intact
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM test_data").Scan(&count)
	if err != nil {
		t.Fatalf("failed to count test data after migration: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after migration, got %d", count)
	}
}
