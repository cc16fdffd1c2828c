package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"property-list-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(fetcher *stubFetcher) *ScreenRegistry {
	return NewScreenRegistry(NewFetcherScreenFactory(fetcher, ScreenOptions{}), RegistryLimits{})
}

func TestRegistryMountCreatesAndLoads(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{1: pageOf(5, "a")}}
	registry := newTestRegistry(fetcher)

	screen, created := registry.Mount(context.Background(), "chat-1")

	require.True(t, created)
	assert.Equal(t, "chat-1", screen.ID())
	assert.Len(t, screen.State().Properties, 1)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryMountReturnsExisting(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{1: pageOf(5, "a")}}
	registry := newTestRegistry(fetcher)

	first, _ := registry.Mount(context.Background(), "chat-1")
	second, created := registry.Mount(context.Background(), "chat-1")

	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, []int{1}, fetcher.Calls())
}

func TestRegistryGetAndUnmount(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{1: pageOf(5, "a")}}
	registry := newTestRegistry(fetcher)
	ctx := context.Background()

	_, found := registry.Get("missing")
	assert.False(t, found)

	registry.Mount(ctx, "chat-1")
	_, found = registry.Get("chat-1")
	assert.True(t, found)

	assert.True(t, registry.Unmount(ctx, "chat-1"))
	assert.False(t, registry.Unmount(ctx, "chat-1"))
	_, found = registry.Get("chat-1")
	assert.False(t, found)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryRemountStartsFresh(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{
		1: pageOf(30, "a"),
		3: pageOf(30, "c"),
	}}
	registry := newTestRegistry(fetcher)
	ctx := context.Background()

	screen, _ := registry.Mount(ctx, "chat-1")
	screen.LoadPage(ctx, 3)
	registry.Unmount(ctx, "chat-1")

	screen, created := registry.Mount(ctx, "chat-1")
	assert.True(t, created)
	assert.Equal(t, 1, screen.State().Page)
}

func TestRegistryConcurrentMounts(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{1: pageOf(5, "a")}}
	registry := newTestRegistry(fetcher)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry.Mount(context.Background(), "shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, registry.Len())
}

// fakeClock - управляемое время для реестра
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimitedRegistry(fetcher *stubFetcher, limits RegistryLimits) (*ScreenRegistry, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	registry := NewScreenRegistry(NewFetcherScreenFactory(fetcher, ScreenOptions{}), limits)
	registry.now = clock.Now
	return registry, clock
}

func TestRegistryStaysWithinMaxScreens(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{1: pageOf(5, "a")}}
	registry, clock := newLimitedRegistry(fetcher, RegistryLimits{MaxScreens: 3})
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		clock.Advance(time.Second)
		registry.Mount(ctx, fmt.Sprintf("anon-%d", i))
	}

	assert.Equal(t, 3, registry.Len())
	for _, id := range []string{"anon-97", "anon-98", "anon-99"} {
		_, found := registry.Get(id)
		assert.True(t, found, id)
	}
}

func TestRegistryEvictsLeastRecentlyUsed(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{1: pageOf(5, "a")}}
	registry, clock := newLimitedRegistry(fetcher, RegistryLimits{MaxScreens: 2})
	ctx := context.Background()

	registry.Mount(ctx, "old")
	clock.Advance(time.Second)
	registry.Mount(ctx, "newer")
	clock.Advance(time.Second)
	registry.Get("old")
	clock.Advance(time.Second)
	registry.Mount(ctx, "third")

	_, found := registry.Get("old")
	assert.True(t, found)
	_, found = registry.Get("newer")
	assert.False(t, found)
	assert.Equal(t, 2, registry.Len())
}

func TestRegistrySweepRemovesIdleScreens(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{1: pageOf(5, "a")}}
	registry, clock := newLimitedRegistry(fetcher, RegistryLimits{IdleTTL: time.Minute})
	ctx := context.Background()

	registry.Mount(ctx, "idle")
	registry.Mount(ctx, "active")
	clock.Advance(45 * time.Second)
	registry.Get("active")
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, registry.Sweep(ctx))
	_, found := registry.Get("idle")
	assert.False(t, found)
	_, found = registry.Get("active")
	assert.True(t, found)
}

func TestRegistrySweepWithoutTTL(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{1: pageOf(5, "a")}}
	registry, clock := newLimitedRegistry(fetcher, RegistryLimits{})
	ctx := context.Background()

	registry.Mount(ctx, "chat-1")
	clock.Advance(24 * time.Hour)

	assert.Zero(t, registry.Sweep(ctx))
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryMountAtPage(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int]*domain.PageResponse{
		1: pageOf(30, "a"),
		3: pageOf(30, "c"),
	}}
	registry := newTestRegistry(fetcher)
	ctx := context.Background()

	screen, created := registry.MountAtPage(ctx, "web-1", 3)
	require.True(t, created)
	assert.Equal(t, 3, screen.State().Page)

	again, created := registry.MountAtPage(ctx, "web-1", 1)
	assert.False(t, created)
	assert.Equal(t, 3, again.State().Page)
	assert.Equal(t, []int{3}, fetcher.Calls())
}
