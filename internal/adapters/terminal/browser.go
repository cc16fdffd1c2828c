package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/domain"
	"property-list-service/internal/core/port"
	"property-list-service/internal/core/port/usecases_port"
)

const browsePrompt = "page (n - next, p - previous, number, q - quit)> "

// Browser - интерактивный просмотр экрана в терминале.
type Browser struct {
	screen   usecases_port.PropertyListScreen
	renderer *Renderer
	out      io.Writer
}

func NewBrowser(screen usecases_port.PropertyListScreen, out io.Writer) *Browser {
	return &Browser{
		screen:   screen,
		renderer: NewRenderer(out),
		out:      out,
	}
}

// Show монтирует экран и печатает его один раз.
func (b *Browser) Show(ctx context.Context) {
	b.renderer.Render(b.screen.Mount(ctx))
}

// Run читает команды из in до "q" или конца ввода.
func (b *Browser) Run(ctx context.Context, in io.Reader) error {
	logger := contextkeys.LoggerFromContext(ctx)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(b.out, browsePrompt)
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "q" {
			return nil
		}

		page, ok := nextPage(cmd, b.screen.View())
		if !ok {
			logger.Debug("Unknown browse command", port.Fields{"command": cmd})
			fmt.Fprintln(b.out, "unknown command:", cmd)
			continue
		}
		b.renderer.Render(b.screen.LoadPage(ctx, page))
	}
}

// nextPage переводит команду в номер страницы. Переходы "n"/"p" доступны
// только тогда, когда на экране есть соответствующая кнопка.
func nextPage(cmd string, view domain.ScreenView) (int, bool) {
	switch cmd {
	case "n":
		return view.Pagination.Next, view.Pagination.ShowNext
	case "p":
		return view.Pagination.Previous, view.Pagination.ShowPrevious
	}
	page, err := strconv.Atoi(cmd)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
