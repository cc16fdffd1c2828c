package domain

import (
	"encoding/json"
	"math"
)

// PageResponse - конверт ответа API со списком объектов.
// Форма ответа не проверяется: отсутствующий data дает пустой список,
// отсутствующий или нечисловой count - HasCount == false.
type PageResponse struct {
	Data     []Property
	Count    float64
	HasCount bool
}

type pageResponseEnvelope struct {
	Data  []Property      `json:"data"`
	Count json.RawMessage `json:"count"`
}

func (r *PageResponse) UnmarshalJSON(data []byte) error {
	var env pageResponseEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	r.Data = env.Data
	r.Count, r.HasCount = 0, false
	// count может прийти строкой ("23"); все остальное считаем отсутствующим
	if count := decodeNumber(env.Count); count != nil {
		r.Count = *count
		r.HasCount = true
	}
	return nil
}

// Items возвращает список объектов, никогда не nil.
func (r *PageResponse) Items() []Property {
	if r == nil || r.Data == nil {
		return []Property{}
	}
	return r.Data
}

// TotalPages считает количество страниц как ceil(count / perPage).
// Потолок берется до приведения к int; отрицательный count дает 0.
func TotalPages(count float64, perPage int) int {
	if perPage <= 0 || !(count > 0) {
		return 0
	}
	pages := math.Ceil(count / float64(perPage))
	if pages >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(pages)
}
