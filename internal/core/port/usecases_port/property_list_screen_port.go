package usecases_port

import (
	"context"
	"property-list-service/internal/core/domain"
)

// PropertyListScreen - экран списка объектов, общий для всех хостов.
type PropertyListScreen interface {
	ID() string
	Mount(ctx context.Context) domain.ScreenView
	LoadPage(ctx context.Context, page int) domain.ScreenView
	State() domain.ScreenState
	View() domain.ScreenView
}

// ScreenRegistry управляет жизненным циклом экранов (mount/unmount).
type ScreenRegistry interface {
	Mount(ctx context.Context, screenID string) (PropertyListScreen, bool)
	MountAtPage(ctx context.Context, screenID string, page int) (PropertyListScreen, bool)
	Get(screenID string) (PropertyListScreen, bool)
	Unmount(ctx context.Context, screenID string) bool
	Len() int
}
