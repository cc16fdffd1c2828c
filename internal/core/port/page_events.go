package port

import (
	"context"
	"property-list-service/internal/core/domain"
)

// PageEventsPort публикует события о загруженных страницах.
type PageEventsPort interface {
	PublishPageLoaded(ctx context.Context, event domain.PageLoadedEvent) error
}
