package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"property-list-service/internal/assets"
	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/domain"
	"property-list-service/internal/core/port"
	"property-list-service/internal/core/port/usecases_port"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// Sender - часть *tgbotapi.BotAPI, через которую бот отправляет сообщения.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot - Telegram-хост экрана: один экран на чат, пагинация - inline-кнопки.
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	registry usecases_port.ScreenRegistry
	logger   port.LoggerPort
}

// NewBot авторизуется в Bot API.
func NewBot(token string, debug bool, registry usecases_port.ScreenRegistry, baseLogger port.LoggerPort) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to authorise bot: %w", err)
	}
	api.Debug = debug

	bot := NewBotWithSender(api, registry, baseLogger)
	bot.api = api
	bot.logger.Info("Authorised on account", port.Fields{"username": api.Self.UserName})
	return bot, nil
}

// NewBotWithSender создает бота без обращения к Bot API (отправка через sender).
func NewBotWithSender(sender Sender, registry usecases_port.ScreenRegistry, baseLogger port.LoggerPort) *Bot {
	return &Bot{
		sender:   sender,
		registry: registry,
		logger:   baseLogger.WithFields(port.Fields{"component": "telegram_bot"}),
	}
}

// Start читает обновления до отмены ctx.
func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return fmt.Errorf("telegram: bot is not connected")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Start listening for updates", nil)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func screenIDForChat(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

// HandleUpdate обрабатывает одно обновление (сообщение или нажатие кнопки).
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	traceID := uuid.New().String()
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	ctx = contextkeys.ContextWithLogger(ctx, b.logger.WithFields(port.Fields{"trace_id": traceID}))

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleButton(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"chat_id": chatID})
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	text := strings.TrimSpace(message.Text)
	logger.Debug("Message received", port.Fields{"text": text})

	if !message.IsCommand() {
		b.sendText(ctx, chatID, unknownCommandMessage)
		return
	}

	switch message.Command() {
	case "start":
		screenID := screenIDForChat(chatID)
		// /start всегда открывает экран заново с первой страницы
		b.registry.Unmount(ctx, screenID)
		b.sendText(ctx, chatID, welcomeMessage)
		b.sendChatAction(ctx, chatID)
		screen, _ := b.registry.Mount(ctx, screenID)
		b.render(ctx, chatID, screen.View())
	case "stop":
		b.registry.Unmount(ctx, screenIDForChat(chatID))
		b.sendText(ctx, chatID, closedMessage)
	case "help":
		b.sendText(ctx, chatID, helpMessage)
	default:
		b.sendText(ctx, chatID, unknownCommandMessage)
	}
}

func (b *Bot) handleButton(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"chat_id":  chatID,
		"callback": query.Data,
	})
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	notice := ""
	defer func() {
		if _, err := b.sender.Request(tgbotapi.NewCallback(query.ID, notice)); err != nil {
			logger.Warn("Failed to answer callback", port.Fields{"error": err.Error()})
		}
	}()

	if strings.HasPrefix(query.Data, actionCallbackPrefix) {
		notice = actionNoticeMessage
		return
	}

	page, ok := parsePageCallback(query.Data)
	if !ok {
		return
	}

	screen, found := b.registry.Get(screenIDForChat(chatID))
	if !found {
		b.sendText(ctx, chatID, noScreenMessage)
		return
	}

	b.sendChatAction(ctx, chatID)
	view := screen.LoadPage(ctx, page)
	b.render(ctx, chatID, view)
}

// render рисует экран в чат: пока идет загрузка - только индикатор набора,
// иначе карточки и сообщение с пагинацией.
func (b *Bot) render(ctx context.Context, chatID int64, view domain.ScreenView) {
	if view.State.Loading {
		b.sendChatAction(ctx, chatID)
		return
	}

	for _, card := range view.Cards {
		b.sendCard(ctx, chatID, card)
	}

	text := fmt.Sprintf("Page %d of %d", view.State.Page, view.State.TotalPages)
	if len(view.Cards) == 0 {
		text = emptyListMessage + "\n" + text
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard := paginationKeyboard(view.Pagination); keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	b.send(ctx, msg)
}

func (b *Bot) sendCard(ctx context.Context, chatID int64, card domain.PropertyCard) {
	var file tgbotapi.RequestFileData
	if card.UsesDefaultImage {
		file = tgbotapi.FileBytes{Name: assets.DefaultRoomImageName, Bytes: assets.DefaultRoomImage()}
	} else {
		file = tgbotapi.FileURL(card.ImageURL)
	}

	photo := tgbotapi.NewPhoto(chatID, file)
	photo.Caption = cardCaption(card)
	photo.ReplyMarkup = cardKeyboard(card)
	b.send(ctx, photo)
}

func (b *Bot) sendText(ctx context.Context, chatID int64, text string) {
	b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendChatAction(ctx context.Context, chatID int64) {
	if _, err := b.sender.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to send chat action", port.Fields{"error": err.Error()})
	}
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := b.sender.Send(c); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to send message", err, nil)
	}
}
