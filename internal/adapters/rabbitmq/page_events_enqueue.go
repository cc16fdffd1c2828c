package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"property-list-service/internal/constants"
	"property-list-service/internal/contextkeys"
	"property-list-service/internal/contracts"
	"property-list-service/internal/core/domain"
	"property-list-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PageLoadedEventDTO - тело сообщения screen.page_loaded
type PageLoadedEventDTO struct {
	EventID    string  `json:"event_id"`
	ScreenID   string  `json:"screen_id"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	ItemsCount int     `json:"items_count"`
	Count      float64 `json:"count"`
	LoadedAt   string  `json:"loaded_at"`
	TraceID    string  `json:"trace_id,omitempty"`
}

// MessagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

type PageEventsAdapter struct {
	producer   MessagePublisher
	routingKey string
}

func NewPageEventsAdapter(producer MessagePublisher, routingKey string) (*PageEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &PageEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func ToPageLoadedEventDTO(event domain.PageLoadedEvent) PageLoadedEventDTO {
	return PageLoadedEventDTO{
		EventID:    event.EventID.String(),
		ScreenID:   event.ScreenID,
		Page:       event.Page,
		TotalPages: event.TotalPages,
		ItemsCount: event.ItemsCount,
		Count:      event.Count,
		LoadedAt:   event.LoadedAt.UTC().Format(time.RFC3339Nano),
		TraceID:    event.TraceID,
	}
}

// PublishPageLoaded проверяет событие по контракту и публикует его.
func (a *PageEventsAdapter) PublishPageLoaded(ctx context.Context, event domain.PageLoadedEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PageEventsAdapter",
		"routing_key": a.routingKey,
		"screen_id":   event.ScreenID,
	})

	body, err := json.Marshal(ToPageLoadedEventDTO(event))
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal page loaded event: %w", err)
	}
	if err := contracts.Validate(constants.PageLoadedEventSchema, body); err != nil {
		adapterLogger.Error("Page loaded event does not match contract", err, nil)
		return fmt.Errorf("rabbitmq adapter: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.LoadedAt,
		MessageId:    event.EventID.String(),
		Type:         constants.PageLoadedEventSchema,
		Headers:      make(amqp.Table),
	}
	if event.TraceID != "" {
		msg.Headers["x-trace-id"] = event.TraceID
	}

	// контекст запроса может не иметь дедлайна
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish page loaded event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish page loaded event %s: %w", event.EventID, err)
	}

	adapterLogger.Debug("Published page loaded event", port.Fields{"page": event.Page})
	return nil
}
