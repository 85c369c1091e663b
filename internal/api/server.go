package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pomofocus/internal/auth"
	"pomofocus/internal/config"
	"pomofocus/internal/services"
	"pomofocus/internal/timer"
)

// HealthCheck reports whether a backing store is reachable
type HealthCheck func(ctx context.Context) error

// Options carries everything the HTTP surface needs
type Options struct {
	Config   *config.Config
	Logger   *log.Logger
	Services *services.ServiceContainer
	Timers   *timer.Manager
	Health   HealthCheck
}

// Server holds the handlers of the pomofocus REST API
type Server struct {
	cfg     *config.Config
	logger  *log.Logger
	svc     *services.ServiceContainer
	timers  *timer.Manager
	tokens  *auth.TokenIssuer
	limiter *auth.LoginLimiter
	health  HealthCheck
}

// NewServer creates the API server
func NewServer(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		svc:     opts.Services,
		timers:  opts.Timers,
		tokens:  auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration()),
		limiter: auth.NewLoginLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow.Duration()),
		health:  opts.Health,
	}
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	if s.cfg.IsProduction() && !s.cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(requestID(), s.requestLogger(), s.recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.HTTP.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", s.healthCheck)
	r.GET("/version", s.version)

	api := r.Group("/api")
	s.registerAuthRoutes(api)

	protected := api.Group("", auth.RequireAuth(s.tokens, s.svc.Users))
	s.registerAccountRoutes(protected)
	s.registerSettingsRoutes(protected)
	s.registerTimerRoutes(protected)
	s.registerTaskRoutes(protected)
	s.registerSessionRoutes(protected)
	s.registerProjectRoutes(protected)
	s.registerInterviewRoutes(protected)
	s.registerGoalRoutes(protected)
	s.registerRoutineRoutes(protected)
	s.registerGymRoutes(protected)
	s.registerCalendarRoutes(protected)
	s.registerDashboardRoutes(protected)
	s.registerAdminRoutes(protected.Group("/admin", auth.RequireAdmin()))

	return r
}

func (s *Server) healthCheck(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			s.logger.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": s.cfg.App.Version})
}
