package cli

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"pomofocus/internal/api"
	"pomofocus/internal/cache"
	"pomofocus/internal/config"
	"pomofocus/internal/repository/sqlite"
	"pomofocus/internal/services"
	"pomofocus/internal/timer"
)

// App wires the store, cache, services and timers of one process
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Store    *sqlite.Store
	Cache    *cache.SummaryCache
	Services *services.ServiceContainer
	Timers   *timer.Manager
}

// NewApp opens the database (running pending migrations) and, when
// configured, connects the dashboard cache
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	store, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}

	summaryCache, err := cache.Open(ctx, cfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("dashboard cache: %w", err)
	}

	opts := services.Options{Config: cfg, Logger: logger}
	if summaryCache != nil {
		opts.Cache = summaryCache
	} else {
		logger.Info("REDIS_ADDR not set, dashboard cache disabled")
	}
	svc := services.NewServiceContainer(store, opts)
	timers := timer.NewManager(svc.Sessions, svc.Settings, logger,
		timer.WithSessionCounter(svc.Sessions),
		timer.WithFocusResolver(svc.Sessions),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Cache:    summaryCache,
		Services: svc,
		Timers:   timers,
	}, nil
}

// Handler returns the REST API
func (a *App) Handler() http.Handler {
	return api.NewServer(api.Options{
		Config:   a.Config,
		Logger:   a.Logger,
		Services: a.Services,
		Timers:   a.Timers,
		Health:   a.health,
	}).Router()
}

func (a *App) health(ctx context.Context) error {
	if err := a.Store.Ping(ctx); err != nil {
		return err
	}
	if a.Cache != nil {
		return a.Cache.Ping(ctx)
	}
	return nil
}

// Close stops the timers and releases connections
func (a *App) Close() error {
	a.Timers.Shutdown()
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.WithError(err).Warn("failed to close dashboard cache")
		}
	}
	return a.Store.Close()
}
