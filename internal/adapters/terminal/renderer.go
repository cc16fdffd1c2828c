package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"property-list-service/internal/core/domain"

	"github.com/fatih/color"
)

// Renderer печатает экран списка объектов в терминал.
type Renderer struct {
	out     io.Writer
	current *color.Color
	title   *color.Color
	muted   *color.Color
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:     out,
		current: color.New(color.FgBlack, color.BgGreen, color.Bold),
		title:   color.New(color.FgCyan, color.Bold),
		muted:   color.New(color.FgHiBlack),
	}
}

// Render рисует представление: пока идет загрузка - только индикатор.
func (r *Renderer) Render(view domain.ScreenView) {
	r.title.Fprintln(r.out, "Properties")

	if view.State.Loading {
		fmt.Fprintln(r.out, "Loading...")
		return
	}

	if len(view.Cards) == 0 {
		r.muted.Fprintln(r.out, "No properties on this page.")
	}
	for _, card := range view.Cards {
		r.renderCard(card)
	}

	fmt.Fprintln(r.out, r.PaginationLine(view.Pagination))
}

func (r *Renderer) renderCard(card domain.PropertyCard) {
	fmt.Fprintln(r.out, strings.Repeat("-", 40))
	image := card.ImageURL
	if card.UsesDefaultImage {
		image = "[default image]"
	}
	r.muted.Fprintln(r.out, image)
	fmt.Fprintln(r.out, card.RoomName)
	fmt.Fprintln(r.out, card.Location)
	fmt.Fprintf(r.out, "%s  %s  %s\n", card.Rent, card.Floor, card.Availability)

	var tags []string
	for _, tag := range card.NearbyTags {
		tags = append(tags, "+ "+tag)
	}
	if card.NearbyOverflow > 0 {
		tags = append(tags, "+"+strconv.Itoa(card.NearbyOverflow))
	}
	if len(tags) > 0 {
		fmt.Fprintln(r.out, strings.Join(tags, "  "))
	}
	fmt.Fprintf(r.out, "[%s]\n", strings.Join(card.Actions, "] ["))
}

// PaginationLine - строка пагинации: "< 1 2 [3] 4 5 >".
func (r *Renderer) PaginationLine(w domain.PageWindow) string {
	var parts []string
	if w.ShowPrevious {
		parts = append(parts, "<")
	}
	for _, p := range w.Pages {
		if w.IsCurrent(p) {
			parts = append(parts, r.current.Sprintf("[%d]", p))
			continue
		}
		parts = append(parts, strconv.Itoa(p))
	}
	if w.ShowNext {
		parts = append(parts, ">")
	}
	return strings.Join(parts, " ")
}
