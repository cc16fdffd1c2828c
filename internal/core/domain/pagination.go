package domain

// PageWindow - видимое окно кнопок страниц.
type PageWindow struct {
	Pages        []int `json:"pages"`
	Current      int   `json:"current"`
	ShowPrevious bool  `json:"show_previous"`
	ShowNext     bool  `json:"show_next"`
	Previous     int   `json:"previous,omitempty"`
	Next         int   `json:"next,omitempty"`
}

// ComputePageWindow строит окно вокруг текущей страницы:
// start = max(1, page - max/2), end = min(totalPages, start + max - 1).
// Начало окна не сдвигается назад у конца списка, поэтому окно там может быть уже max.
func ComputePageWindow(page, totalPages, maxVisible int) PageWindow {
	startPage := max(1, page-maxVisible/2)
	endPage := min(totalPages, startPage+maxVisible-1)

	w := PageWindow{
		Pages:   []int{},
		Current: page,
	}
	for i := startPage; i <= endPage; i++ {
		w.Pages = append(w.Pages, i)
	}
	if page > 1 {
		w.ShowPrevious = true
		w.Previous = page - 1
	}
	if page < totalPages {
		w.ShowNext = true
		w.Next = page + 1
	}
	return w
}

// IsCurrent - подсвечивать ли кнопку.
func (w PageWindow) IsCurrent(p int) bool {
	return p == w.Current
}
