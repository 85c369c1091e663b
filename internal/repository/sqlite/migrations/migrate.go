package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

//go:embed *.sql
var migrationsFS embed.FS

// GoMigrationFunc runs a migration step that cannot be expressed in SQL
type GoMigrationFunc func(tx *sql.Tx) error

// Migration represents a database migration. Exactly one of the SQL and Go
// forms is set.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
	UpFn    GoMigrationFunc
	DownFn  GoMigrationFunc
}

// Status describes one known migration and whether it has been applied
type Status struct {
	Version   int
	Name      string
	Applied   bool
	Dirty     bool
	AppliedAt string
}

var goMigrations = map[int]Migration{}

// RegisterGoMigration adds a Go migration. It is called from init functions.
func RegisterGoMigration(version int, up, down GoMigrationFunc) {
	if _, exists := goMigrations[version]; exists {
		panic(fmt.Sprintf("migrations: version %d registered twice", version))
	}
	goMigrations[version] = Migration{Version: version, Name: "go", UpFn: up, DownFn: down}
}

// RunMigrations executes all pending migrations. File databases are copied
// to <path>.backup.<timestamp> first; the copy is removed on success and
// kept when a migration fails.
func RunMigrations(db *sql.DB) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	if err := checkDirty(db); err != nil {
		return err
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	var pending []Migration
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	backup, err := backupDatabase(db)
	if err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}

	for _, m := range pending {
		if err := applyMigration(db, m); err != nil {
			if markErr := markDirty(db, m.Version); markErr != nil {
				err = fmt.Errorf("%w (also failed to mark dirty: %v)", err, markErr)
			}
			if backup != "" {
				return fmt.Errorf("failed to apply migration %d: %w (backup kept at %s)", m.Version, err, backup)
			}
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
	}

	if backup != "" {
		os.Remove(backup)
	}
	return nil
}

// Rollback reverts the most recently applied migration and returns its
// version, or 0 when nothing is applied
func Rollback(db *sql.DB) (int, error) {
	if err := createMigrationsTable(db); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var version int
	err := db.QueryRow("SELECT version FROM migrations WHERE dirty = 0 ORDER BY version DESC LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	migrations, err := loadMigrations()
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}
	for _, m := range migrations {
		if m.Version != version {
			continue
		}
		if err := revertMigration(db, m); err != nil {
			return 0, fmt.Errorf("failed to revert migration %d: %w", version, err)
		}
		return version, nil
	}
	return 0, fmt.Errorf("migration %d is applied but unknown to this binary", version)
}

// GetStatus lists every known migration with its applied state
func GetStatus(db *sql.DB) ([]Status, error) {
	if err := createMigrationsTable(db); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT version, dirty, COALESCE(applied_at, '') FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		dirty     bool
		appliedAt string
	}
	recorded := make(map[int]row)
	for rows.Next() {
		var v int
		var r row
		if err := rows.Scan(&v, &r.dirty, &r.appliedAt); err != nil {
			return nil, err
		}
		recorded[v] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(migrations))
	for _, m := range migrations {
		s := Status{Version: m.Version, Name: m.Name}
		if r, ok := recorded[m.Version]; ok {
			s.Applied = !r.dirty
			s.Dirty = r.dirty
			s.AppliedAt = r.appliedAt
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func createMigrationsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		dirty BOOLEAN DEFAULT FALSE
	)`
	_, err := db.Exec(query)
	return err
}

func checkDirty(db *sql.DB) error {
	rows, err := db.Query("SELECT version FROM migrations WHERE dirty = 1 ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	defer rows.Close()

	var dirty []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return err
		}
		dirty = append(dirty, v)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v; restore the backup or fix the schema and delete the dirty rows", dirty)
	}
	return nil
}

func markDirty(db *sql.DB, version int) error {
	_, err := db.Exec("INSERT OR REPLACE INTO migrations (version, dirty) VALUES (?, 1)", version)
	return err
}

func loadMigrations() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	byVersion := make(map[int]Migration)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}

		upSQL, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := migrationsFS.ReadFile(downFile)
		if err != nil {
			return nil, err
		}

		byVersion[version] = Migration{
			Version: version,
			Name:    extractName(entry.Name()),
			Up:      string(upSQL),
			Down:    string(downSQL),
		}
	}

	for version, m := range goMigrations {
		if _, clash := byVersion[version]; clash {
			return nil, fmt.Errorf("migration %d defined both as SQL and Go", version)
		}
		byVersion[version] = m
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations WHERE dirty = 0")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if migration.UpFn != nil {
		err = migration.UpFn(tx)
	} else {
		_, err = tx.Exec(migration.Up)
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec("INSERT INTO migrations (version, dirty) VALUES (?, 0)", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func revertMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	switch {
	case migration.DownFn != nil:
		err = migration.DownFn(tx)
	case migration.Down != "":
		_, err = tx.Exec(migration.Down)
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec("DELETE FROM migrations WHERE version = ?", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// backupDatabase snapshots a file database and returns the copy's path.
// In-memory databases are not backed up.
func backupDatabase(db *sql.DB) (string, error) {
	var seq int
	var name, file string
	if err := db.QueryRow("PRAGMA database_list").Scan(&seq, &name, &file); err != nil {
		return "", err
	}
	if file == "" {
		return "", nil
	}

	backup := fmt.Sprintf("%s.backup.%s", file, time.Now().UTC().Format("20060102T150405.000000000"))
	if _, err := db.Exec("VACUUM INTO ?", backup); err != nil {
		return "", err
	}
	return backup, nil
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}

func extractName(filename string) string {
	name := strings.TrimSuffix(filename, ".up.sql")
	if i := strings.Index(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}
