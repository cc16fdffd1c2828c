package port

import (
	"context"
	"property-list-service/internal/core/domain"
)

// ScreenNotifierPort - контракт для отправки переходов экрана подписчикам.
type ScreenNotifierPort interface {
	Notify(ctx context.Context, event domain.ScreenEvent)
}
