package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"pomofocus/internal/config"
	"pomofocus/internal/logging"
	"pomofocus/internal/repository/sqlite/migrations"
)

// MigrateCommand inspects and changes the database schema
type MigrateCommand struct {
	config *config.Config
	out    io.Writer
	eh     *ErrorHandler
}

// NewMigrateCommand creates a new migrate command handler
func NewMigrateCommand(cfg *config.Config, out io.Writer) *MigrateCommand {
	return &MigrateCommand{config: cfg, out: out, eh: NewErrorHandler()}
}

// Up applies every pending migration. Opening the store does the work.
func (c *MigrateCommand) Up(ctx context.Context) error {
	logging.Debugln("migrating", c.config.GetDatabasePath())
	store, err := config.CreateRepository(c.config)
	if err != nil {
		return c.eh.Handle("migrate", err)
	}
	defer store.Close()

	fmt.Fprintln(c.out, "Database is up to date.")
	return nil
}

// Down rolls back the most recently applied migration
func (c *MigrateCommand) Down(ctx context.Context) error {
	store, err := config.CreateRepository(c.config)
	if err != nil {
		return c.eh.Handle("roll back migration", err)
	}
	defer store.Close()

	version, err := migrations.Rollback(store.DB())
	if err != nil {
		return c.eh.Handle("roll back migration", err)
	}
	if version == 0 {
		fmt.Fprintln(c.out, "No migrations to roll back.")
		return nil
	}
	fmt.Fprintf(c.out, "Rolled back migration %03d.\n", version)
	return nil
}

// Status prints one row per known migration
func (c *MigrateCommand) Status(ctx context.Context) error {
	store, err := config.CreateRepository(c.config)
	if err != nil {
		return c.eh.Handle("read migration status", err)
	}
	defer store.Close()

	statuses, err := migrations.GetStatus(store.DB())
	if err != nil {
		return c.eh.Handle("read migration status", err)
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tSTATE\tAPPLIED AT")
	for _, s := range statuses {
		state := "pending"
		switch {
		case s.Dirty:
			state = "dirty"
		case s.Applied:
			state = "applied"
		}
		fmt.Fprintf(w, "%03d\t%s\t%s\t%s\n", s.Version, s.Name, state, s.AppliedAt)
	}
	return w.Flush()
}
