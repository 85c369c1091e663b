package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"pomofocus/internal/config"
	"pomofocus/internal/logging"
	"pomofocus/internal/repository/sqlite"
	"pomofocus/internal/services"
	"pomofocus/internal/timer"
)

type testAPI struct {
	router *gin.Engine
	store  *sqlite.Store
	svc    *services.ServiceContainer
	cfg    *config.Config
}

func newTestAPI(t *testing.T, tweak ...func(cfg *config.Config)) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := config.CreateTestRepository()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.NewConfig()
	cfg.App.Env = config.Testing
	cfg.App.Version = "1.2.3"
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.BcryptCost = 4
	for _, fn := range tweak {
		fn(cfg)
	}

	logger := logging.Discard()
	svc := services.NewServiceContainer(store, services.Options{Config: cfg, Logger: logger})
	timers := timer.NewManager(svc.Sessions, svc.Settings, logger, timer.WithSessionCounter(svc.Sessions), timer.WithFocusResolver(svc.Sessions))
	t.Cleanup(timers.Shutdown)

	server := NewServer(Options{
		Config:   cfg,
		Logger:   logger,
		Services: svc,
		Timers:   timers,
		Health:   store.Ping,
	})
	return &testAPI{router: server.Router(), store: store, svc: svc, cfg: cfg}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register signs up a member and returns its token
func (a *testAPI) register(t *testing.T, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	return out.Token
}

// admin bootstraps a superadmin and returns its token
func (a *testAPI) admin(t *testing.T) string {
	t.Helper()
	_, _, err := a.svc.Users.BootstrapAdmin(context.Background(), "root@example.com", "rootpass")
	require.NoError(t, err)
	rec := a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "root@example.com", "password": "rootpass"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	return out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
