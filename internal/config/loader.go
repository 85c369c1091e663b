package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// InMemoryDatabase is the sqlite DSN for a throwaway database
const InMemoryDatabase = ":memory:"

// devJWTSecret is only ever used outside production
const devJWTSecret = "pomofocus-development-secret-do-not-use"

// Loader handles loading configuration from multiple sources
type Loader struct {
	path string
}

// NewLoader creates a new configuration loader. An empty path reads the
// environment only.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load loads configuration using the cascading strategy:
// 1. Defaults from struct tags
// 2. Optional yaml/env file
// 3. Environment variables
// 4. Command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	var cfg Config
	if l.path != "" {
		if err := cleanenv.ReadConfig(l.path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", l.path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := l.resolve(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(cfg)
	}

	// Re-validate after applying overrides
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolve fills values derived from other settings
func (l *Loader) resolve(cfg *Config) error {
	if cfg.Redis.URL != "" {
		addr, password, db, err := parseRedisURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("REDIS_URL: %w", err)
		}
		cfg.Redis.Addr = addr
		cfg.Redis.Password = password
		cfg.Redis.DB = db
	}

	if cfg.Database.Dir == "" && cfg.Database.Filename != InMemoryDatabase {
		switch cfg.App.Env {
		case Development:
			cfg.Database.Dir = "."
		default:
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolve database directory: %w", err)
			}
			cfg.Database.Dir = filepath.Join(homeDir, ".pomofocus")
		}
	}
	if cfg.App.Env == Testing {
		cfg.Database.Filename = InMemoryDatabase
	}

	if cfg.Auth.JWTSecret == "" && !cfg.IsProduction() {
		cfg.Auth.JWTSecret = devJWTSecret
	}

	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	// HTTP overrides
	Port *string

	// Cache overrides
	RedisAddr *string

	// Logging overrides
	LogLevel *string
	Debug    *bool
}

func (o *ConfigOverrides) apply(cfg *Config) {
	if o.DBDir != nil {
		cfg.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		cfg.Database.Filename = *o.DBFilename
	}
	if o.DBQueryTimeout != nil {
		cfg.Database.QueryTimeout = Duration(*o.DBQueryTimeout)
	}
	if o.Port != nil {
		cfg.HTTP.Port = *o.Port
	}
	if o.RedisAddr != nil {
		cfg.Redis.Addr = *o.RedisAddr
	}
	if o.LogLevel != nil {
		cfg.Log.Level = *o.LogLevel
	}
	if o.Debug != nil {
		cfg.Log.Debug = *o.Debug
	}
}

// parseRedisURL extracts host:port, password and DB from redis:// or rediss:// URL.
func parseRedisURL(s string) (addr, password string, db int, err error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", "", 0, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return "", "", 0, fmt.Errorf("scheme must be redis or rediss, got %q", u.Scheme)
	}
	addr = u.Host
	if addr == "" {
		return "", "", 0, fmt.Errorf("missing host in Redis URL")
	}
	if u.User != nil {
		password, _ = u.User.Password()
	}
	if len(u.Path) > 1 {
		db, err = strconv.Atoi(strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return "", "", 0, fmt.Errorf("invalid database number %q", u.Path)
		}
	}
	return addr, password, db, nil
}
