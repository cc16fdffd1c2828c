package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"property-list-service/internal/core/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	previousButtonText = "«"
	nextButtonText     = "»"

	pageCallbackPrefix   = "page:"
	actionCallbackPrefix = "action:"
	noopCallbackData     = "noop"
)

// pageCallbackData - данные кнопки перехода на страницу
func pageCallbackData(page int) string {
	return pageCallbackPrefix + strconv.Itoa(page)
}

// parsePageCallback разбирает "page:N"; false, если это не кнопка страницы.
func parsePageCallback(data string) (int, bool) {
	raw, ok := strings.CutPrefix(data, pageCallbackPrefix)
	if !ok {
		return 0, false
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

// paginationKeyboard превращает окно страниц в строку inline-кнопок.
// Текущая страница отмечена точками и не вызывает загрузку.
func paginationKeyboard(w domain.PageWindow) *tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton

	if w.ShowPrevious {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(previousButtonText, pageCallbackData(w.Previous)))
	}
	for _, p := range w.Pages {
		if w.IsCurrent(p) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("· %d ·", p), noopCallbackData))
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(p), pageCallbackData(p)))
	}
	if w.ShowNext {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(nextButtonText, pageCallbackData(w.Next)))
	}

	if len(row) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(row)
	return &markup
}

// cardKeyboard - две статичные кнопки карточки
func cardKeyboard(card domain.PropertyCard) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for i, action := range card.Actions {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(action, actionCallbackPrefix+strconv.Itoa(i)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// cardCaption - текст карточки; отсутствующие поля остаются пустыми
func cardCaption(card domain.PropertyCard) string {
	var b strings.Builder
	b.WriteString("🏠 " + card.RoomName + "\n")
	b.WriteString(card.Location + "\n")
	b.WriteString("💰 " + card.Rent + "  " + card.Floor + "  " + card.Availability)

	if len(card.NearbyTags) > 0 || card.NearbyOverflow > 0 {
		b.WriteString("\n")
		for _, tag := range card.NearbyTags {
			b.WriteString("➕ " + tag + "  ")
		}
		if card.NearbyOverflow > 0 {
			b.WriteString(fmt.Sprintf("+%d", card.NearbyOverflow))
		}
	}
	return strings.TrimRight(b.String(), " ")
}
