package rest

import (
	"net/http"

	"property-list-service/internal/adapters/notifier"
	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/domain"
	"property-list-service/internal/core/port"
	"property-list-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// ScreenSubscriber - подписка на события экрана (реализует notifier.SSENotifier)
type ScreenSubscriber interface {
	AddClient(screenID string) notifier.ClientChannel
	RemoveClient(screenID string, ch notifier.ClientChannel)
}

type EventsHandler struct {
	registry   usecases_port.ScreenRegistry
	subscriber ScreenSubscriber
}

func NewEventsHandler(registry usecases_port.ScreenRegistry, subscriber ScreenSubscriber) *EventsHandler {
	return &EventsHandler{registry: registry, subscriber: subscriber}
}

// Subscribe обрабатывает GET /api/v1/screens/{screenID}/events.
// Первым кадром отправляется текущее состояние экрана.
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	screenID := chi.URLParam(r, "screenID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":   "SubscribeScreenEvents",
		"screen_id": screenID,
	})

	screen, found := h.registry.Get(screenID)
	if !found {
		WriteJSONError(w, http.StatusNotFound, "Screen not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch := h.subscriber.AddClient(screenID)
	defer h.subscriber.RemoveClient(screenID, ch)

	state := screen.State()
	eventType := domain.ScreenEventIdle
	if state.Loading {
		eventType = domain.ScreenEventLoading
	}
	initial, err := notifier.FormatSSE(domain.ScreenEvent{Type: eventType, ScreenID: screenID, State: state})
	if err != nil {
		logger.Error("Failed to format initial event", err, nil)
		return
	}
	if _, err := w.Write(initial); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			logger.Debug("Client disconnected", nil)
			return
		case msg := <-ch:
			if _, err := w.Write(msg); err != nil {
				logger.Warn("Failed to write event", port.Fields{"error": err.Error()})
				return
			}
			flusher.Flush()
		}
	}
}
