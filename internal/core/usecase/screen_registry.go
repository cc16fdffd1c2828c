package usecase

import (
	"context"
	"sync"
	"time"

	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/port"
	"property-list-service/internal/core/port/usecases_port"
)

// ScreenFactory создает новый экран для идентификатора сессии.
// initialPage <= 0 - страница по умолчанию.
type ScreenFactory func(screenID string, initialPage int) *PropertyListScreen

// RegistryLimits ограничивает число экранов в реестре.
type RegistryLimits struct {
	// MaxScreens - сколько экранов храним; при переполнении снимается
	// экран, к которому дольше всех не обращались. 0 - без ограничения
	MaxScreens int
	// IdleTTL - через сколько без обращений экран снимается в Sweep. 0 - никогда
	IdleTTL time.Duration
}

type registryEntry struct {
	screen   *PropertyListScreen
	lastSeen time.Time
}

// ScreenRegistry хранит смонтированные экраны: один на сессию хоста
// (cookie в браузере, чат в Telegram).
type ScreenRegistry struct {
	screens map[string]*registryEntry
	mu      sync.Mutex
	factory ScreenFactory
	limits  RegistryLimits
	now     func() time.Time
}

func NewScreenRegistry(factory ScreenFactory, limits RegistryLimits) *ScreenRegistry {
	return &ScreenRegistry{
		screens: make(map[string]*registryEntry),
		factory: factory,
		limits:  limits,
		now:     time.Now,
	}
}

// NewFetcherScreenFactory - фабрика экранов поверх одного источника данных.
func NewFetcherScreenFactory(fetcher port.PropertyFetcherPort, opts ScreenOptions) ScreenFactory {
	return func(screenID string, initialPage int) *PropertyListScreen {
		screenOpts := opts
		if initialPage > 0 {
			screenOpts.InitialPage = initialPage
		}
		return NewPropertyListScreen(screenID, fetcher, screenOpts)
	}
}

// Mount возвращает экран для screenID, создавая и монтируя его при первом обращении.
// Второй результат - был ли экран создан этим вызовом.
func (r *ScreenRegistry) Mount(ctx context.Context, screenID string) (usecases_port.PropertyListScreen, bool) {
	return r.MountAtPage(ctx, screenID, 0)
}

// MountAtPage как Mount, но новый экран сразу загружает страницу page.
// Уже смонтированный экран возвращается как есть.
func (r *ScreenRegistry) MountAtPage(ctx context.Context, screenID string, page int) (usecases_port.PropertyListScreen, bool) {
	r.mu.Lock()
	now := r.now()
	if entry, found := r.screens[screenID]; found {
		entry.lastSeen = now
		r.mu.Unlock()
		return entry.screen, false
	}
	evicted := r.evictForNewLocked()
	screen := r.factory(screenID, page)
	r.screens[screenID] = &registryEntry{screen: screen, lastSeen: now}
	total := len(r.screens)
	r.mu.Unlock()

	logger := contextkeys.LoggerFromContext(ctx)
	for _, id := range evicted {
		logger.Info("Screen evicted, registry is full", port.Fields{
			"screen_id":   id,
			"max_screens": r.limits.MaxScreens,
		})
	}
	logger.Info("Screen mounted", port.Fields{
		"screen_id":     screenID,
		"total_screens": total,
	})

	// первая загрузка идет вне блокировки реестра
	screen.Mount(ctx)
	return screen, true
}

// evictForNewLocked освобождает место под новый экран. Вызывается под r.mu.
func (r *ScreenRegistry) evictForNewLocked() []string {
	if r.limits.MaxScreens <= 0 {
		return nil
	}
	var evicted []string
	for len(r.screens) >= r.limits.MaxScreens {
		oldestID := ""
		var oldest time.Time
		for id, entry := range r.screens {
			if oldestID == "" || entry.lastSeen.Before(oldest) {
				oldestID, oldest = id, entry.lastSeen
			}
		}
		delete(r.screens, oldestID)
		evicted = append(evicted, oldestID)
	}
	return evicted
}

// Get ищет экран и отмечает обращение к нему.
func (r *ScreenRegistry) Get(screenID string) (usecases_port.PropertyListScreen, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, found := r.screens[screenID]
	if !found {
		return nil, false
	}
	entry.lastSeen = r.now()
	return entry.screen, true
}

// Unmount удаляет экран; его состояние больше нигде не хранится.
func (r *ScreenRegistry) Unmount(ctx context.Context, screenID string) bool {
	r.mu.Lock()
	_, found := r.screens[screenID]
	delete(r.screens, screenID)
	total := len(r.screens)
	r.mu.Unlock()

	if found {
		contextkeys.LoggerFromContext(ctx).Info("Screen unmounted", port.Fields{
			"screen_id":     screenID,
			"total_screens": total,
		})
	}
	return found
}

// Sweep снимает экраны, к которым не обращались дольше IdleTTL.
// Возвращает число снятых экранов.
func (r *ScreenRegistry) Sweep(ctx context.Context) int {
	if r.limits.IdleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	deadline := r.now().Add(-r.limits.IdleTTL)
	removed := 0
	for id, entry := range r.screens {
		if entry.lastSeen.Before(deadline) {
			delete(r.screens, id)
			removed++
		}
	}
	total := len(r.screens)
	r.mu.Unlock()

	if removed > 0 {
		contextkeys.LoggerFromContext(ctx).Info("Idle screens unmounted", port.Fields{
			"removed":       removed,
			"total_screens": total,
		})
	}
	return removed
}

// RunSweeper вызывает Sweep с интервалом interval, пока ctx не отменен.
func (r *ScreenRegistry) RunSweeper(ctx context.Context, interval time.Duration) {
	if r.limits.IdleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

func (r *ScreenRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}
