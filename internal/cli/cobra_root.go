package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pomofocus/internal/config"
	"pomofocus/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	config     *config.Config
	configPath string
	out        io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{out: os.Stdout}

	root.cmd = &cobra.Command{
		Use:   "pomofocus",
		Short: "Pomodoro timer and productivity tracker backend",
		Long: `pomofocus serves the REST API behind the pomofocus productivity app:
a pomodoro timer, tasks, projects, goals, daily routines, interview
tracking and a dashboard summary.

EXAMPLES:
  pomofocus serve                                  # Start the HTTP server
  pomofocus migrate status                         # Show applied migrations
  pomofocus bootstrap-admin root@example.com pw    # Create the first superadmin
  pomofocus version                                # Print the build version

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Server:
    APP_ENV                  development, testing or production (default: production)
    HTTP_PORT                Listen port (default: 8080)
    CORS_ALLOWED_ORIGINS     Comma separated allowed origins

  Database:
    POMO_DB_DIR              Database directory (default: ~/.pomofocus)
    POMO_DB_FILENAME         Database filename (default: pomofocus.db)
    POMO_DB_QUERY_TIMEOUT    Query timeout (default: 10s)

  Auth:
    JWT_SECRET_KEY           Token signing secret (required in production)
    JWT_ACCESS_TOKEN_EXPIRES Token lifetime (default: 168h)

  Cache:
    REDIS_URL / REDIS_ADDR   Dashboard summary cache, disabled when unset

  Logging:
    LOG_LEVEL, LOG_FORMAT, POMO_DEBUG`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetOutput redirects command output
func (r *RootCommand) SetOutput(out io.Writer) {
	r.out = out
	r.cmd.SetOut(out)
	r.cmd.SetErr(out)
}

// SetArgs sets the arguments parsed on Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configPath, "config", "", "Path to a yaml or env config file")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides POMO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides POMO_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides POMO_DB_QUERY_TIMEOUT)")

	flags.String("port", "", "HTTP listen port (overrides HTTP_PORT)")
	flags.String("redis-addr", "", "Redis address for the dashboard cache (overrides REDIS_ADDR)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides LOG_LEVEL)")
	flags.Bool("debug", false, "Enable debug logging (overrides POMO_DEBUG)")
}

func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start the REST API and run until interrupted. Pending migrations are applied on startup.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.config, r.logger()).Execute(cmd.Context(), args)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewMigrateCommand(r.config, r.out).Up(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewMigrateCommand(r.config, r.out).Down(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return NewMigrateCommand(r.config, r.out).Status(cmd.Context())
			},
		},
	)

	bootstrapCmd := &cobra.Command{
		Use:   "bootstrap-admin [email] [password]",
		Short: "Create or promote the first superadmin",
		Long: `Create a superadmin account with the given credentials. An existing
account with the same email is promoted and its password replaced.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewBootstrapCommand(r.config, r.logger(), r.out).Execute(cmd.Context(), args)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewVersionCommand(r.config, r.out).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(serveCmd, migrateCmd, bootstrapCmd, versionCmd)
}

// loadConfig reads the configuration and applies values from command-line flags
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("port") {
		v, _ := flags.GetString("port")
		overrides.Port = &v
	}
	if flags.Changed("redis-addr") {
		v, _ := flags.GetString("redis-addr")
		overrides.RedisAddr = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		overrides.Debug = &v
	}

	cfg, err := config.NewLoader(r.configPath).LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	r.config = cfg
	logging.Debugf("config loaded: env=%s db=%s port=%s cache=%t", cfg.App.Env, cfg.GetDatabasePath(), cfg.HTTP.Port, cfg.RedisEnabled())
	return nil
}

func (r *RootCommand) logger() *log.Logger {
	return logging.New(logging.Options{
		Level:      r.config.Log.Level,
		Format:     r.config.Log.Format,
		Debug:      r.config.Log.Debug,
		Production: r.config.IsProduction(),
	})
}
