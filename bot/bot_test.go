package bot

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notaneet/raspbot/model"
	"github.com/notaneet/raspbot/schedule"
)

func sampleDoc() *model.Document {
	return &model.Document{
		Schedule: []model.Week{
			{
				Parity: model.ParityOdd,
				Days: []model.Day{
					{
						Name: "Понедельник",
						Classes: []model.Class{
							{Time: "11:30-13:30", Subject: "Название предмета", Room: "306", Address: "Кронверкский пр., 49"},
						},
					},
				},
			},
			{Parity: model.ParityEven},
		},
	}
}

// testBot бот со всеми заглушками: часы на 20.10.2025, отправка
// складывает сообщения в срез
func testBot(doc *model.Document) (*Bot, *[]tgbotapi.Chattable) {
	lookup := schedule.New(doc,
		schedule.WithLocation(time.UTC),
		schedule.WithYear(2025),
		schedule.WithClock(func() time.Time {
			return time.Date(2025, time.October, 20, 12, 0, 0, 0, time.UTC)
		}),
	)

	b := newBot(lookup, nil, zap.NewNop())
	sent := &[]tgbotapi.Chattable{}
	b.send = func(c tgbotapi.Chattable) error {
		*sent = append(*sent, c)
		return nil
	}
	b.request = func(c tgbotapi.Chattable) error { return nil }
	return b, sent
}

func startMessage(chatID int64) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: "/start",
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: chatID, UserName: "student"},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: 6},
		},
	}
}

func callback(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: chatID}},
	}
}

func TestStartSendsMenu(t *testing.T) {
	b, sent := testBot(sampleDoc())

	b.HandleUpdate(tgbotapi.Update{Message: startMessage(1)})

	require.Len(t, *sent, 1)
	msg, ok := (*sent)[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, welcomeText, msg.Text)
	assert.Equal(t, menuKeyboard, msg.ReplyMarkup)
}

func TestCallbackToday(t *testing.T) {
	b, sent := testBot(sampleDoc())

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(1, callbackToday)})

	require.Len(t, *sent, 1)
	edit, ok := (*sent)[0].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Contains(t, edit.Text, "Понедельник (20.10.2025)")
	assert.Contains(t, edit.Text, "Название предмета")
}

func TestCallbackWeek(t *testing.T) {
	b, sent := testBot(sampleDoc())

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(1, callbackWeek)})

	require.Len(t, *sent, 1)
	edit := (*sent)[0].(tgbotapi.EditMessageTextConfig)
	assert.Contains(t, edit.Text, "Расписание на неделю")
	assert.Contains(t, edit.Text, "Воскресенье:")
}

func TestDateFlow(t *testing.T) {
	b, sent := testBot(sampleDoc())

	// Кнопка "Конкретная дата" переводит чат в режим ожидания
	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(1, callbackDate)})
	require.Len(t, *sent, 1)
	assert.Equal(t, datePromptText, (*sent)[0].(tgbotapi.EditMessageTextConfig).Text)

	// Следующее сообщение трактуется как дата
	b.HandleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Text: "20.10", Chat: &tgbotapi.Chat{ID: 1}}})
	require.Len(t, *sent, 2)
	reply := (*sent)[1].(tgbotapi.MessageConfig)
	assert.Contains(t, reply.Text, "Название предмета")

	// Режим ожидания одноразовый
	b.HandleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Text: "20.10", Chat: &tgbotapi.Chat{ID: 1}}})
	require.Len(t, *sent, 3)
	assert.Equal(t, unknownText, (*sent)[2].(tgbotapi.MessageConfig).Text)
}

func TestDateFlowBadDate(t *testing.T) {
	b, sent := testBot(sampleDoc())

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(1, callbackDate)})
	b.HandleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Text: "вчера", Chat: &tgbotapi.Chat{ID: 1}}})

	require.Len(t, *sent, 2)
	assert.Equal(t, "❌ Неверный формат даты. Используйте формат ДД.ММ", (*sent)[1].(tgbotapi.MessageConfig).Text)
}

func TestAwaitingIsPerChat(t *testing.T) {
	b, sent := testBot(sampleDoc())

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(1, callbackDate)})

	// Другой чат дату не вводил
	b.HandleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Text: "20.10", Chat: &tgbotapi.Chat{ID: 2}}})
	require.Len(t, *sent, 2)
	assert.Equal(t, unknownText, (*sent)[1].(tgbotapi.MessageConfig).Text)
}

func TestNotLoaded(t *testing.T) {
	b, sent := testBot(nil)

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(1, callbackToday)})

	require.Len(t, *sent, 1)
	assert.Equal(t, "❌ Расписание не загружено", (*sent)[0].(tgbotapi.EditMessageTextConfig).Text)
}

func TestUnknownText(t *testing.T) {
	b, sent := testBot(sampleDoc())

	b.HandleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Text: "привет", Chat: &tgbotapi.Chat{ID: 1}}})

	require.Len(t, *sent, 1)
	assert.Equal(t, unknownText, (*sent)[0].(tgbotapi.MessageConfig).Text)
}
