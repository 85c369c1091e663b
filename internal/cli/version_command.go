package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"pomofocus/internal/config"
)

// VersionCommand prints the configured build version
type VersionCommand struct {
	config *config.Config
	out    io.Writer
}

// NewVersionCommand creates a new version command handler
func NewVersionCommand(cfg *config.Config, out io.Writer) *VersionCommand {
	return &VersionCommand{config: cfg, out: out}
}

// Execute writes the version line
func (c *VersionCommand) Execute(_ context.Context, _ []string) error {
	_, err := fmt.Fprintf(c.out, "pomofocus %s (%s, %s)\n", c.config.App.Version, runtime.Version(), c.config.App.Env)
	return err
}
