package usecase

import (
	"context"
	"fmt"
	"sync"

	"property-list-service/internal/core/domain"
)

type fetchCall struct {
	page  int
	reply chan fetchReply
}

type fetchReply struct {
	resp *domain.PageResponse
	err  error
}

// blockingFetcher отдает ответ только когда тест вызовет respond.
type blockingFetcher struct {
	calls chan fetchCall
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{calls: make(chan fetchCall, 8)}
}

func (f *blockingFetcher) FetchPage(ctx context.Context, page int) (*domain.PageResponse, error) {
	call := fetchCall{page: page, reply: make(chan fetchReply, 1)}
	f.calls <- call
	r := <-call.reply
	return r.resp, r.err
}

// stubFetcher сразу отвечает по таблице страниц.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[int]*domain.PageResponse
	err   error
	calls []int
}

func (f *stubFetcher) FetchPage(ctx context.Context, page int) (*domain.PageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	if f.err != nil {
		return nil, f.err
	}
	resp, ok := f.pages[page]
	if !ok {
		return nil, fmt.Errorf("unexpected page %d", page)
	}
	return resp, nil
}

func (f *stubFetcher) Calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.ScreenEvent
}

func (n *recordingNotifier) Notify(ctx context.Context, event domain.ScreenEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var types []string
	for _, e := range n.events {
		types = append(types, e.Type)
	}
	return types
}

type recordingEvents struct {
	mu     sync.Mutex
	events []domain.PageLoadedEvent
	err    error
}

func (e *recordingEvents) PublishPageLoaded(ctx context.Context, event domain.PageLoadedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func pageOf(count int, ids ...string) *domain.PageResponse {
	resp := &domain.PageResponse{Count: float64(count), HasCount: true, Data: []domain.Property{}}
	for _, id := range ids {
		resp.Data = append(resp.Data, domain.Property{ID: &id})
	}
	return resp
}

// gatedNotifier задерживает первое событие, пока тест не откроет gate.
type gatedNotifier struct {
	recordingNotifier
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func newGatedNotifier() *gatedNotifier {
	return &gatedNotifier{entered: make(chan struct{}), gate: make(chan struct{})}
}

func (n *gatedNotifier) Notify(ctx context.Context, event domain.ScreenEvent) {
	first := false
	n.once.Do(func() { first = true })
	if first {
		close(n.entered)
		<-n.gate
	}
	n.recordingNotifier.Notify(ctx, event)
}

func (n *recordingNotifier) Events() []domain.ScreenEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.ScreenEvent(nil), n.events...)
}
