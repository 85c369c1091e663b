package cli

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"pomofocus/internal/config"
	"pomofocus/internal/services"
)

// BootstrapCommand creates the first superadmin so the admin API is reachable
type BootstrapCommand struct {
	config *config.Config
	logger *log.Logger
	out    io.Writer
}

// NewBootstrapCommand creates a new bootstrap-admin command handler
func NewBootstrapCommand(cfg *config.Config, logger *log.Logger, out io.Writer) *BootstrapCommand {
	return &BootstrapCommand{config: cfg, logger: logger, out: out}
}

// Execute expects the email and password as its two arguments
func (c *BootstrapCommand) Execute(ctx context.Context, args []string) error {
	eh := NewErrorHandler()
	if len(args) != 2 {
		return fmt.Errorf("usage: bootstrap-admin <email> <password>")
	}

	store, err := config.CreateRepository(c.config)
	if err != nil {
		return eh.Handle("bootstrap admin", err)
	}
	defer store.Close()

	svc := services.NewServiceContainer(store, services.Options{Config: c.config, Logger: c.logger})
	user, created, err := svc.Users.BootstrapAdmin(ctx, args[0], args[1])
	if err != nil {
		return eh.Handle("bootstrap admin", err)
	}

	if created {
		fmt.Fprintf(c.out, "Created superadmin %s (%s)\n", user.Email, user.ID)
	} else {
		fmt.Fprintf(c.out, "Promoted %s (%s) to superadmin\n", user.Email, user.ID)
	}
	return nil
}
