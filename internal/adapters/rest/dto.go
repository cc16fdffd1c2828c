package rest

import "property-list-service/internal/core/domain"

type ErrorResponse struct {
	Error string `json:"error"`
}

// ScreenResponse - ответ API с экраном
type ScreenResponse struct {
	ScreenID string            `json:"screen_id"`
	View     domain.ScreenView `json:"view"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Screens int    `json:"screens"`
}
