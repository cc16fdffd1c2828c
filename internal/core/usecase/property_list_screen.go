package usecase

import (
	"context"
	"sync"
	"time"

	"property-list-service/internal/constants"
	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/domain"
	"property-list-service/internal/core/port"

	"github.com/google/uuid"
)

// ScreenOptions - необязательные зависимости экрана.
type ScreenOptions struct {
	Notifier        port.ScreenNotifierPort
	Events          port.PageEventsPort
	DefaultImageURL string
	// InitialPage - страница первой загрузки при монтировании (по умолчанию 1)
	InitialPage int
}

// PropertyListScreen владеет состоянием пагинации одного экрана.
// Все изменения состояния идут через LoadPage.
type PropertyListScreen struct {
	id      string
	fetcher port.PropertyFetcherPort
	opts    ScreenOptions

	mu        sync.Mutex
	state     domain.ScreenState
	lastToken uint64

	mountOnce sync.Once
}

func NewPropertyListScreen(id string, fetcher port.PropertyFetcherPort, opts ScreenOptions) *PropertyListScreen {
	if opts.DefaultImageURL == "" {
		opts.DefaultImageURL = constants.DefaultImagePath
	}
	state := domain.NewScreenState()
	if opts.InitialPage > 0 {
		state.Page = opts.InitialPage
	}
	return &PropertyListScreen{
		id:      id,
		fetcher: fetcher,
		opts:    opts,
		state:   state,
	}
}

func (s *PropertyListScreen) ID() string {
	return s.id
}

// Mount выполняет первую загрузку с начальной страницы ровно один раз.
func (s *PropertyListScreen) Mount(ctx context.Context) domain.ScreenView {
	s.mountOnce.Do(func() {
		s.LoadPage(ctx, s.State().Page)
	})
	return s.View()
}

// LoadPage загружает страницу page и обновляет состояние.
//
// Каждый вызов получает новый токен; ответ, чей токен уже не последний,
// отбрасывается, и loading остается true до ответа на последний запрос.
// Ошибка загрузки только логируется: список и totalPages не меняются.
func (s *PropertyListScreen) LoadPage(ctx context.Context, page int) domain.ScreenView {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "LoadPage",
		"screen_id": s.id,
		"page":      page,
	})

	// переходы уходят нотификатору под s.mu, чтобы порядок событий
	// совпадал с порядком изменений состояния
	s.mu.Lock()
	s.lastToken++
	token := s.lastToken
	s.state.Loading = true
	s.notify(ctx, domain.ScreenEventLoading, s.state.Clone())
	s.mu.Unlock()

	logger.Debug("Page load started", port.Fields{"token": token})

	resp, err := s.fetcher.FetchPage(ctx, page)

	s.mu.Lock()
	if token != s.lastToken {
		latest := s.lastToken
		current := s.state.Clone()
		s.mu.Unlock()

		logger.Debug("Discarding stale page response", port.Fields{
			"token":        token,
			"latest_token": latest,
		})
		return s.buildView(current)
	}

	if err != nil {
		logger.Error("Fetch error", err, nil)
	} else {
		if resp == nil {
			resp = &domain.PageResponse{}
		}
		s.state.Properties = resp.Items()
		s.state.TotalPages = domain.TotalPages(resp.Count, constants.ItemsPerPage)
	}
	s.state.Page = page
	s.state.Loading = false
	settled := s.state.Clone()
	s.notify(ctx, domain.ScreenEventIdle, settled)
	s.mu.Unlock()

	if err == nil {
		if !resp.HasCount {
			logger.Warn("Response has no count, total pages computed from 0", nil)
		}
		logger.Info("Page loaded", port.Fields{
			"items_on_page": len(settled.Properties),
			"total_pages":   settled.TotalPages,
		})
		s.publishPageLoaded(ctx, logger, resp, settled)
	}

	return s.buildView(settled)
}

// State возвращает копию текущего состояния.
func (s *PropertyListScreen) State() domain.ScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *PropertyListScreen) View() domain.ScreenView {
	return s.buildView(s.State())
}

func (s *PropertyListScreen) buildView(state domain.ScreenState) domain.ScreenView {
	return domain.BuildScreenView(state, constants.MaxVisiblePages, s.opts.DefaultImageURL)
}

// notify вызывается под s.mu; нотификатор не должен обращаться к экрану.
func (s *PropertyListScreen) notify(ctx context.Context, eventType string, state domain.ScreenState) {
	if s.opts.Notifier == nil {
		return
	}
	s.opts.Notifier.Notify(ctx, domain.ScreenEvent{
		Type:     eventType,
		ScreenID: s.id,
		State:    state,
	})
}

func (s *PropertyListScreen) publishPageLoaded(ctx context.Context, logger port.LoggerPort, resp *domain.PageResponse, state domain.ScreenState) {
	if s.opts.Events == nil {
		return
	}
	event := domain.PageLoadedEvent{
		EventID:    uuid.New(),
		ScreenID:   s.id,
		Page:       state.Page,
		TotalPages: state.TotalPages,
		ItemsCount: len(state.Properties),
		Count:      resp.Count,
		LoadedAt:   time.Now().UTC(),
		TraceID:    contextkeys.TraceIDFromContext(ctx),
	}
	if err := s.opts.Events.PublishPageLoaded(ctx, event); err != nil {
		logger.Error("Failed to publish page loaded event", err, nil)
	}
}
