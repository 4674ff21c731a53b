package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/board-api/config"
	"github.com/d60-Lab/board-api/internal/repository"
)

// fixedClock 每次调用前进一秒，便于断言时间字段
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

var drivers = []string{config.StoreMemory, config.StoreSQLite}

func newTestServices(t *testing.T, driver string) (*userService, *postService, *fixedClock) {
	t.Helper()
	store, err := repository.Open(context.Background(), &config.Config{
		Store: config.StoreConfig{Driver: driver, LogLevel: "silent"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &fixedClock{t: time.Date(2025, 11, 28, 12, 0, 0, 0, time.UTC)}
	us := NewUserService(store).(*userService)
	ps := NewPostService(store).(*postService)
	us.now = clock.Now
	ps.now = clock.Now
	return us, ps, clock
}

// forEachBackend 在每种存储后端上各跑一遍
func forEachBackend(t *testing.T, fn func(t *testing.T, us *userService, ps *postService, clock *fixedClock)) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			us, ps, clock := newTestServices(t, driver)
			fn(t, us, ps, clock)
		})
	}
}

var bg = context.Background()
