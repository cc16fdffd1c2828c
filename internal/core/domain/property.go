package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Property - запись объекта из внешнего API.
// Структура записи нам не принадлежит, поэтому все поля опциональны,
// а исходный JSON сохраняется в Raw без изменений.
type Property struct {
	ID            *string
	Name          *string
	Area1         *string
	City          *string
	Rooms         []Room
	SocietyImages []SocietyImage
	Nearby        []NearbyPlace

	Raw json.RawMessage
}

type Room struct {
	Name      *string
	TotalRent *float64
	// TotalRentText - аренда, пришедшая нечисловой строкой ("On request")
	TotalRentText *string
	AvailableFor  *string
	Features      []Feature
}

type Feature struct {
	Key   *string
	Value *string
}

type SocietyImage struct {
	ImageURL *string
}

type NearbyPlace struct {
	Title *string
}

// UnmarshalJSON разбирает запись "мягко": поле неожиданного типа считается отсутствующим,
// а не ошибкой разбора всей страницы.
func (p *Property) UnmarshalJSON(data []byte) error {
	p.Raw = append(p.Raw[:0], data...)

	fields, ok := decodeObject(data)
	if !ok {
		// не объект (null, число, строка) - пустая запись
		return nil
	}

	p.ID = decodeFlexibleString(fields["id"])
	p.Name = decodeString(fields["name"])
	p.Area1 = decodeString(fields["area1"])
	p.City = decodeString(fields["city"])

	for _, raw := range decodeArray(fields["rooms"]) {
		p.Rooms = append(p.Rooms, decodeRoom(raw))
	}
	for _, raw := range decodeArray(fields["society_images"]) {
		img := SocietyImage{}
		if obj, ok := decodeObject(raw); ok {
			img.ImageURL = decodeString(obj["image_url"])
		}
		p.SocietyImages = append(p.SocietyImages, img)
	}
	for _, raw := range decodeArray(fields["nearby"]) {
		place := NearbyPlace{}
		if obj, ok := decodeObject(raw); ok {
			place.Title = decodeString(obj["title"])
		}
		p.Nearby = append(p.Nearby, place)
	}

	return nil
}

// MarshalJSON отдает запись в исходном виде.
func (p Property) MarshalJSON() ([]byte, error) {
	if len(p.Raw) == 0 {
		return []byte("null"), nil
	}
	return p.Raw, nil
}

// FirstRoom возвращает первую комнату или nil.
func (p *Property) FirstRoom() *Room {
	if p == nil || len(p.Rooms) == 0 {
		return nil
	}
	return &p.Rooms[0]
}

// FeatureValue ищет значение характеристики по ключу (например, "Floor").
func (r *Room) FeatureValue(key string) *string {
	if r == nil {
		return nil
	}
	for _, f := range r.Features {
		if f.Key != nil && *f.Key == key {
			return f.Value
		}
	}
	return nil
}

func decodeRoom(raw json.RawMessage) Room {
	room := Room{}
	obj, ok := decodeObject(raw)
	if !ok {
		return room
	}
	room.Name = decodeString(obj["name"])
	room.TotalRent = decodeNumber(obj["total_rent"])
	if room.TotalRent == nil {
		room.TotalRentText = decodeString(obj["total_rent"])
	}
	room.AvailableFor = decodeString(obj["available_for"])
	for _, fraw := range decodeArray(obj["features"]) {
		f := Feature{}
		if fobj, ok := decodeObject(fraw); ok {
			f.Key = decodeString(fobj["key"])
			f.Value = decodeFlexibleString(fobj["value"])
		}
		room.Features = append(room.Features, f)
	}
	return room
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func decodeArray(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	return arr
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeString(raw json.RawMessage) *string {
	if isAbsent(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// decodeFlexibleString принимает и строку, и число (id, значения характеристик).
func decodeFlexibleString(raw json.RawMessage) *string {
	if s := decodeString(raw); s != nil {
		return s
	}
	if isAbsent(raw) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	s := n.String()
	return &s
}

// decodeNumber принимает число или строку с конечным числом.
func decodeNumber(raw json.RawMessage) *float64 {
	if isAbsent(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	if s := decodeString(raw); s != nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return &f
		}
	}
	return nil
}
