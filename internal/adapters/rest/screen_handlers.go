package rest

import (
	"context"
	"net/http"

	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/port"
	"property-list-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ScreenHandler struct {
	registry usecases_port.ScreenRegistry
}

func NewScreenHandler(registry usecases_port.ScreenRegistry) *ScreenHandler {
	return &ScreenHandler{registry: registry}
}

// loadContext отвязывает загрузку от отмены запроса: начатая загрузка всегда доходит до конца.
func loadContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// MountScreen обрабатывает POST /api/v1/screens
func (h *ScreenHandler) MountScreen(w http.ResponseWriter, r *http.Request) {
	screenID := uuid.New().String()
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":   "MountScreen",
		"screen_id": screenID,
	})
	ctx := contextkeys.ContextWithLogger(loadContext(r), logger)

	screen, _ := h.registry.Mount(ctx, screenID)

	RespondWithJSON(w, http.StatusCreated, ScreenResponse{
		ScreenID: screen.ID(),
		View:     screen.View(),
	})
}

// GetScreen обрабатывает GET /api/v1/screens/{screenID}
func (h *ScreenHandler) GetScreen(w http.ResponseWriter, r *http.Request) {
	screenID := chi.URLParam(r, "screenID")
	screen, found := h.registry.Get(screenID)
	if !found {
		WriteJSONError(w, http.StatusNotFound, "Screen not found")
		return
	}

	RespondWithJSON(w, http.StatusOK, ScreenResponse{
		ScreenID: screen.ID(),
		View:     screen.View(),
	})
}

// LoadPage обрабатывает POST /api/v1/screens/{screenID}/pages/{page}
func (h *ScreenHandler) LoadPage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	screenID := chi.URLParam(r, "screenID")
	screen, found := h.registry.Get(screenID)
	if !found {
		WriteJSONError(w, http.StatusNotFound, "Screen not found")
		return
	}

	page, err := pageFromURL(r)
	if err != nil {
		logger.Warn("Invalid page number", port.Fields{"error": err.Error(), "screen_id": screenID})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":   "LoadPage",
		"screen_id": screenID,
		"page":      page,
	})
	handlerLogger.Debug("Processing request to load page", nil)

	view := screen.LoadPage(contextkeys.ContextWithLogger(loadContext(r), handlerLogger), page)

	RespondWithJSON(w, http.StatusOK, ScreenResponse{
		ScreenID: screen.ID(),
		View:     view,
	})
}

// UnmountScreen обрабатывает DELETE /api/v1/screens/{screenID}
func (h *ScreenHandler) UnmountScreen(w http.ResponseWriter, r *http.Request) {
	screenID := chi.URLParam(r, "screenID")
	if !h.registry.Unmount(r.Context(), screenID) {
		WriteJSONError(w, http.StatusNotFound, "Screen not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health обрабатывает GET /healthz
func (h *ScreenHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Screens: h.registry.Len(),
	})
}
