package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	FloorFeatureKey  = "Floor"
	MaxNearbyTags    = 2
	ActionCallback   = "Get a callback"
	ActionVisit      = "Schedule a visit"
	rentCurrencyMark = "₹"
	rentPeriodSuffix = "/mo"
)

var rentPrinter = message.NewPrinter(language.English)

// PropertyCard - готовая к отрисовке карточка объекта.
// Отсутствующие поля дают пустые строки, а не ошибки.
type PropertyCard struct {
	Key              string   `json:"key"`
	ImageURL         string   `json:"image_url"`
	UsesDefaultImage bool     `json:"uses_default_image"`
	RoomName         string   `json:"room_name"`
	Location         string   `json:"location"`
	Rent             string   `json:"rent"`
	Floor            string   `json:"floor"`
	Availability     string   `json:"availability"`
	NearbyTags       []string `json:"nearby_tags"`
	NearbyOverflow   int      `json:"nearby_overflow"`
	Actions          []string `json:"actions"`
}

// NewPropertyCard строит карточку для записи с индексом index в списке.
func NewPropertyCard(p *Property, index int, defaultImageURL string) PropertyCard {
	card := PropertyCard{
		Key:        cardKey(p, index),
		NearbyTags: []string{},
		Actions:    []string{ActionCallback, ActionVisit},
	}

	if img := firstImageURL(p); img != "" {
		card.ImageURL = img
	} else {
		card.ImageURL = defaultImageURL
		card.UsesDefaultImage = true
	}

	room := p.FirstRoom()
	if room != nil {
		card.RoomName = deref(room.Name)
		card.Availability = deref(room.AvailableFor)
		card.Floor = deref(room.FeatureValue(FloorFeatureKey))
		card.Rent = formatRoomRent(room)
	} else {
		card.Rent = FormatRent(nil)
	}

	card.Location = strings.Join([]string{deref(p.Name), deref(p.Area1), deref(p.City)}, ", ")

	for i, place := range p.Nearby {
		if i >= MaxNearbyTags {
			break
		}
		card.NearbyTags = append(card.NearbyTags, deref(place.Title))
	}
	if len(p.Nearby) > MaxNearbyTags {
		card.NearbyOverflow = len(p.Nearby) - MaxNearbyTags
	}

	return card
}

// FormatRent форматирует аренду с разделителями тысяч: "₹12,500/mo".
func FormatRent(rent *float64) string {
	if rent == nil {
		return rentCurrencyMark + rentPeriodSuffix
	}
	return rentCurrencyMark + rentPrinter.Sprint(number.Decimal(*rent, number.MaxFractionDigits(3))) + rentPeriodSuffix
}

// formatRoomRent показывает текст аренды как есть, если числа нет.
func formatRoomRent(room *Room) string {
	if room.TotalRent == nil && room.TotalRentText != nil {
		return rentCurrencyMark + *room.TotalRentText + rentPeriodSuffix
	}
	return FormatRent(room.TotalRent)
}

// firstImageURL берет image_url первого изображения, обрезая пробелы.
func firstImageURL(p *Property) string {
	if p == nil || len(p.SocietyImages) == 0 {
		return ""
	}
	return strings.TrimSpace(deref(p.SocietyImages[0].ImageURL))
}

func cardKey(p *Property, index int) string {
	return deref(p.ID) + "-" + strconv.Itoa(index)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
