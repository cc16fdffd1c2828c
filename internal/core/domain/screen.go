package domain

// ScreenStatus - состояние экрана: только Idle и Loading.
type ScreenStatus string

const (
	ScreenIdle    ScreenStatus = "idle"
	ScreenLoading ScreenStatus = "loading"
)

// ScreenState - состояние экрана списка объектов.
type ScreenState struct {
	Properties []Property `json:"properties"`
	Loading    bool       `json:"loading"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

// NewScreenState возвращает состояние по умолчанию при монтировании экрана.
func NewScreenState() ScreenState {
	return ScreenState{
		Properties: []Property{},
		Loading:    false,
		Page:       1,
		TotalPages: 1,
	}
}

func (s ScreenState) Status() ScreenStatus {
	if s.Loading {
		return ScreenLoading
	}
	return ScreenIdle
}

// Clone копирует состояние, чтобы снимок не разделял срез с экраном.
func (s ScreenState) Clone() ScreenState {
	c := s
	c.Properties = make([]Property, len(s.Properties))
	copy(c.Properties, s.Properties)
	return c
}

// ScreenView - то, что рисует любой хост: состояние, карточки и пагинация.
type ScreenView struct {
	State      ScreenState    `json:"state"`
	Status     ScreenStatus   `json:"status"`
	Cards      []PropertyCard `json:"cards"`
	Pagination PageWindow     `json:"pagination"`
}

// BuildScreenView собирает представление экрана. Пока идет загрузка,
// карточки и пагинация не строятся: показывается только индикатор.
func BuildScreenView(state ScreenState, maxVisiblePages int, defaultImageURL string) ScreenView {
	view := ScreenView{
		State:  state,
		Status: state.Status(),
		Cards:  []PropertyCard{},
	}
	if state.Loading {
		return view
	}
	for i := range state.Properties {
		view.Cards = append(view.Cards, NewPropertyCard(&state.Properties[i], i, defaultImageURL))
	}
	view.Pagination = ComputePageWindow(state.Page, state.TotalPages, maxVisiblePages)
	return view
}
