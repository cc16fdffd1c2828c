package rest

import (
	"bytes"
	"net/http"
	"time"

	"property-list-service/internal/assets"
	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/domain"
	"property-list-service/internal/core/port"
	"property-list-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

const (
	screenCookieName = "screen_id"
	screenTitle      = "Properties"
)

type screenPageData struct {
	Title string
	View  domain.ScreenView
}

// PageHandler отдает экран списка как HTML-страницу.
// Экран привязан к сессии через cookie screen_id.
type PageHandler struct {
	registry usecases_port.ScreenRegistry
}

func NewPageHandler(registry usecases_port.ScreenRegistry) *PageHandler {
	return &PageHandler{registry: registry}
}

// screenForRequest находит экран сессии или монтирует новый сразу на странице page
// (0 - страница по умолчанию). Второй результат - был ли экран смонтирован сейчас.
func (h *PageHandler) screenForRequest(w http.ResponseWriter, r *http.Request, page int) (usecases_port.PropertyListScreen, bool) {
	if cookie, err := r.Cookie(screenCookieName); err == nil {
		if screen, found := h.registry.Get(cookie.Value); found {
			return screen, false
		}
	}

	screenID := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     screenCookieName,
		Value:    screenID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"screen_id": screenID})
	return h.registry.MountAtPage(contextkeys.ContextWithLogger(loadContext(r), logger), screenID, page)
}

// ShowScreen обрабатывает GET /properties
func (h *PageHandler) ShowScreen(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	screen, _ := h.screenForRequest(w, r, 0)

	var buf bytes.Buffer
	err := screenPageTemplate.Execute(&buf, screenPageData{Title: screenTitle, View: screen.View()})
	if err != nil {
		logger.Error("Failed to render screen", err, port.Fields{"screen_id": screen.ID()})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// SelectPage обрабатывает POST /properties/page/{page}: загрузка и возврат на экран
func (h *PageHandler) SelectPage(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromURL(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// новый экран уже загрузил нужную страницу при монтировании
	screen, created := h.screenForRequest(w, r, page)
	if !created {
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
			"handler":   "SelectPage",
			"screen_id": screen.ID(),
			"page":      page,
		})
		screen.LoadPage(contextkeys.ContextWithLogger(loadContext(r), logger), page)
	}

	http.Redirect(w, r, "/properties", http.StatusSeeOther)
}

var assetModTime = time.Now()

// DefaultImage обрабатывает GET /assets/default-room.png
func (h *PageHandler) DefaultImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	http.ServeContent(w, r, assets.DefaultRoomImageName, assetModTime, bytes.NewReader(assets.DefaultRoomImage()))
}
