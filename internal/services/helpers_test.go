package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pomofocus/internal/config"
	"pomofocus/internal/domain"
	"pomofocus/internal/logging"
	"pomofocus/internal/repository/sqlite"
)

// testNow is the pinned "now" of every service under test
var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

// stepClock hands the store strictly increasing timestamps on the morning of
// testNow so creation order is deterministic
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// memoryCache records dashboard cache traffic
type memoryCache struct {
	mu            sync.Mutex
	entries       map[string][]byte
	invalidations map[string]int
	gets          int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, invalidations: map[string]int{}}
}

func (c *memoryCache) GetSummary(_ context.Context, userID, date string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.entries[userID+":"+date], nil
}

func (c *memoryCache) SetSummary(_ context.Context, userID, date string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID+":"+date] = data
	return nil
}

func (c *memoryCache) InvalidateUser(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations[userID]++
	for k := range c.entries {
		if len(k) > len(userID) && k[:len(userID)+1] == userID+":" {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *memoryCache) invalidationCount(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations[userID]
}

type testEnv struct {
	store *sqlite.Store
	cache *memoryCache
	deps  deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &stepClock{now: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)}
	store, err := sqlite.Open(":memory:", sqlite.WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.NewConfig()
	cfg.Auth.BcryptCost = 4

	cache := newMemoryCache()
	d := newDeps(Options{
		Config: cfg,
		Logger: logging.Discard(),
		Cache:  cache,
		Clock:  func() time.Time { return testNow },
	})
	return &testEnv{store: store, cache: cache, deps: d}
}

func (e *testEnv) createUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := newUserService(e.store, e.deps).Register(context.Background(), email, "secret123")
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
