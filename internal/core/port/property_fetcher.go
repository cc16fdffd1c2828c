package port

import (
	"context"
	"property-list-service/internal/core/domain"
)

// PropertyFetcherPort - источник страниц со списком объектов.
type PropertyFetcherPort interface {
	// FetchPage делает один GET-запрос за страницей page и возвращает разобранный ответ.
	// Ошибки сети и разбора возвращаются как есть, без повторов.
	FetchPage(ctx context.Context, page int) (*domain.PageResponse, error)
}
