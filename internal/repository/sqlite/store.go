package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"pomofocus/internal/errors"
	"pomofocus/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// DefaultQueryTimeout bounds every statement when no timeout is configured
const DefaultQueryTimeout = 10 * time.Second

// Store is the SQLite implementation of every repository used by the
// services. All methods scope rows by user id where the data is user owned.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
	now          func() time.Time
	newID        func() string
}

// Option configures a Store
type Option func(*Store)

// WithQueryTimeout sets the per-statement deadline
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens the database at dbPath, enables foreign keys and runs pending
// migrations. Use ":memory:" for a throwaway database.
func Open(dbPath string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// sqlite allows one writer; a single connection also keeps :memory: shared
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if dbPath != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("configure database", err)
		}
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	s := &Store{
		db:           db,
		queryTimeout: DefaultQueryTimeout,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for migrations tooling
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// inTx runs fn in a transaction, rolling back when fn fails
func (s *Store) inTx(ctx context.Context, operation string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin "+operation, err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit "+operation, err)
	}
	return nil
}
