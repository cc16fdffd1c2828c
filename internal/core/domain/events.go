package domain

import (
	"time"

	"github.com/google/uuid"
)

// PageLoadedEvent публикуется после каждой успешной загрузки страницы.
type PageLoadedEvent struct {
	EventID    uuid.UUID
	ScreenID   string
	Page       int
	TotalPages int
	ItemsCount int
	Count      float64
	LoadedAt   time.Time
	TraceID    string
}

// ScreenEvent - переход экрана между Idle и Loading.
type ScreenEvent struct {
	Type     string      `json:"type"`
	ScreenID string      `json:"screen_id"`
	State    ScreenState `json:"state"`
}

const (
	ScreenEventLoading = "screen.loading"
	ScreenEventIdle    = "screen.idle"
)
