package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/domain"
	"property-list-service/internal/core/port"
)

// ClientChannel - канал событий одного подписчика (вкладка браузера)
type ClientChannel chan []byte

type eventWithContext struct {
	ctx   context.Context
	event domain.ScreenEvent
}

// SSENotifier рассылает переходы экранов подписчикам в формате SSE.
// Ключ clients - ID экрана; на один экран может быть подписано несколько вкладок.
type SSENotifier struct {
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	eventChan chan eventWithContext
	done      chan struct{}

	logger port.LoggerPort
}

// NewSSENotifier создает нотификатор и запускает диспетчер.
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, 100),
		done:      make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}

	go n.dispatcher()

	return n
}

// FormatSSE форматирует событие как кадр text/event-stream.
func FormatSSE(event domain.ScreenEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, data)), nil
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		var pkg eventWithContext
		select {
		case <-n.done:
			n.logger.Debug("Notifier dispatcher stopped.", nil)
			return
		case pkg = <-n.eventChan:
		}

		eventLogger := contextkeys.LoggerFromContext(pkg.ctx).WithFields(port.Fields{
			"component":  "SSENotifier.dispatcher",
			"event_type": pkg.event.Type,
			"screen_id":  pkg.event.ScreenID,
		})

		message, err := FormatSSE(pkg.event)
		if err != nil {
			eventLogger.Error("Failed to marshal event", err, nil)
			continue
		}

		n.mu.RLock()
		channels := n.clients[pkg.event.ScreenID]
		for _, ch := range channels {
			// не блокируемся на медленном подписчике
			select {
			case ch <- message:
			default:
				eventLogger.Warn("Client channel is full, skipping.", nil)
			}
		}
		n.mu.RUnlock()

		if len(channels) == 0 {
			eventLogger.Debug("No subscribers for screen, event dropped.", nil)
		}
	}
}

// Notify кладет событие во внутренний канал; ctx нужен только для логгера.
func (n *SSENotifier) Notify(ctx context.Context, event domain.ScreenEvent) {
	select {
	case n.eventChan <- eventWithContext{ctx: ctx, event: event}:
	case <-n.done:
	}
}

// AddClient подписывает нового клиента на события экрана.
func (n *SSENotifier) AddClient(screenID string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 16)
	n.clients[screenID] = append(n.clients[screenID], ch)

	n.logger.Info("Client subscribed to screen", port.Fields{
		"screen_id":          screenID,
		"screen_subscribers": len(n.clients[screenID]),
	})
	return ch
}

// RemoveClient отписывает клиента, когда соединение закрыто.
func (n *SSENotifier) RemoveClient(screenID string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels, found := n.clients[screenID]
	if !found {
		return
	}
	remaining := make([]ClientChannel, 0, len(channels))
	for _, c := range channels {
		if c != ch {
			remaining = append(remaining, c)
		}
	}

	if len(remaining) == 0 {
		delete(n.clients, screenID)
	} else {
		n.clients[screenID] = remaining
	}
	n.logger.Debug("Client unsubscribed from screen", port.Fields{
		"screen_id":             screenID,
		"remaining_subscribers": len(remaining),
	})
}

// Close останавливает диспетчер.
func (n *SSENotifier) Close() {
	select {
	case <-n.done:
	default:
		close(n.done)
	}
}
