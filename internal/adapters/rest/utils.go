package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// pageFromURL читает номер страницы из параметра маршрута {page}.
// Верхняя граница не проверяется.
func pageFromURL(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "page")
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("page must be an integer, got %q", raw)
	}
	if page < 1 {
		return 0, fmt.Errorf("page must be positive, got %d", page)
	}
	return page, nil
}
