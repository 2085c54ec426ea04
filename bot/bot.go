// Package bot обработка телеграм-обновлений: команды, кнопки меню
// и ввод даты. Вся логика расписания живет в schedule, здесь только
// маршрутизация сообщений.
package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/notaneet/raspbot/render"
	"github.com/notaneet/raspbot/schedule"
	"github.com/notaneet/raspbot/store"
)

const (
	welcomeText    = "🎓 Добро пожаловать в бот расписания!\n\nВыберите действие:"
	datePromptText = "📝 Введите дату в формате ДД.ММ (например: 25.12)"
	unknownText    = "❓ Неизвестная команда. Используйте /start для начала работы с ботом."
)

const (
	callbackToday = "today"
	callbackDate  = "date"
	callbackWeek  = "week"
)

var menuKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📅 Сегодня", callbackToday)),
	tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📆 Конкретная дата", callbackDate)),
	tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📅 На неделю", callbackWeek)),
)

type Bot struct {
	api    *tgbotapi.BotAPI
	lookup *schedule.Lookup
	users  *store.UserStore //nil - без реестра пользователей
	log    *zap.Logger

	send    func(tgbotapi.Chattable) error
	request func(tgbotapi.Chattable) error

	mu       sync.Mutex
	awaiting map[int64]bool //чаты, от которых ждем дату
}

func New(api *tgbotapi.BotAPI, lookup *schedule.Lookup, users *store.UserStore, log *zap.Logger) *Bot {
	b := newBot(lookup, users, log)
	b.api = api
	b.send = func(c tgbotapi.Chattable) error {
		_, err := api.Send(c)
		return err
	}
	b.request = func(c tgbotapi.Chattable) error {
		_, err := api.Request(c)
		return err
	}
	return b
}

func newBot(lookup *schedule.Lookup, users *store.UserStore, log *zap.Logger) *Bot {
	return &Bot{
		lookup:   lookup,
		users:    users,
		log:      log,
		awaiting: map[int64]bool{},
	}
}

// HandleUpdate разбирает одно обновление от телеграма
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.IsCommand() && msg.Command() == "start" {
		b.rememberUser(msg)

		reply := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)
		reply.ReplyMarkup = menuKeyboard
		b.reply(reply)
		return
	}

	if b.takeAwaiting(msg.Chat.ID) {
		b.reply(tgbotapi.NewMessage(msg.Chat.ID, b.dayText(msg.Text)))
		return
	}

	b.reply(tgbotapi.NewMessage(msg.Chat.ID, unknownText))
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if err := b.request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Warn("не удалось ответить на callback", zap.Error(err))
	}

	// Сообщения может не быть, если оно слишком старое
	if query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch query.Data {
	case callbackToday:
		b.reply(tgbotapi.NewEditMessageText(chatID, messageID, b.dayText("")))
	case callbackWeek:
		b.reply(tgbotapi.NewEditMessageText(chatID, messageID, b.weekText()))
	case callbackDate:
		b.setAwaiting(chatID)
		b.reply(tgbotapi.NewEditMessageText(chatID, messageID, datePromptText))
	default:
		b.log.Warn("неизвестный callback", zap.String("data", query.Data))
	}
}

// dayText текст ответа на запрос расписания на дату (raw == "" - сегодня)
func (b *Bot) dayText(raw string) string {
	res, err := b.lookup.ForDate(raw)
	if err != nil {
		return render.Message(err)
	}
	return render.Day(res)
}

func (b *Bot) weekText() string {
	res, err := b.lookup.ForWeek()
	if err != nil {
		return render.Message(err)
	}
	return render.Week(res)
}

func (b *Bot) rememberUser(msg *tgbotapi.Message) {
	if b.users == nil || msg.From == nil {
		return
	}
	if err := b.users.Upsert(msg.Chat.ID, msg.From.UserName); err != nil {
		b.log.Warn("не удалось сохранить пользователя",
			zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
}

func (b *Bot) reply(c tgbotapi.Chattable) {
	if err := b.send(c); err != nil {
		b.log.Error("не удалось отправить сообщение", zap.Error(err))
	}
}

func (b *Bot) setAwaiting(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.awaiting[chatID] = true
}

// takeAwaiting ждали ли от чата дату; флаг одноразовый
func (b *Bot) takeAwaiting(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	waiting := b.awaiting[chatID]
	delete(b.awaiting, chatID)
	return waiting
}

// RunPolling режим для локальной разработки без вебхука
func (b *Bot) RunPolling(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30

	updates := b.api.GetUpdatesChan(cfg)
	b.log.Info("запуск в режиме polling")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.HandleUpdate(update)
		}
	}
}
