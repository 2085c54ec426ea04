package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/notaneet/raspbot/model"
	"github.com/notaneet/raspbot/schedule"
	"github.com/notaneet/raspbot/utils"
)

func init() {
	godotenv.Load()
}

// Config вся конфигурация бота из переменных окружения
type Config struct {
	Env        string //development или production
	Token      string //токен телеграм-бота
	WebhookURL string //куда телеграму слать обновления
	Port       string //порт веб-сервера; пустой - режим polling

	Source    string //источник расписания: env, file или web
	SourceArg string //аргумент источника: путь к файлу или адрес страницы

	PostgresDSN string //строка подключения к постгресу, пустая - без базы

	Timezone string //часовой пояс для "сегодня"
	Year     int    //год для дат ДД.ММ, 0 - текущий

	EpochDate   string //переопределение опорной даты, ДД.ММ.ГГГГ
	EpochParity int    //четность недели опорной даты, 1 или 2
}

func New() *Config {
	return &Config{
		Env:        utils.GetEnvString("APP_ENV", "development"),
		Token:      utils.GetEnvString("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL: utils.GetEnvString("WEBHOOK_URL", ""),
		Port:       utils.GetEnvString("PORT", ""),

		Source:    utils.GetEnvString("SCHEDULE_SOURCE", "env"),
		SourceArg: utils.GetEnvString("SCHEDULE_SOURCE_ARG", ""),

		PostgresDSN: utils.GetEnvString("POSTGRES_DSN", ""),

		Timezone: utils.GetEnvString("BOT_TIMEZONE", "Europe/Moscow"),
		Year:     utils.GetEnvInt("SCHEDULE_YEAR", 0),

		EpochDate:   utils.GetEnvString("EPOCH_DATE", ""),
		EpochParity: utils.GetEnvInt("EPOCH_PARITY", 0),
	}
}

// Location часовой пояс из конфигурации
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Epoch опорная точка четности: из окружения, либо schedule.DefaultEpoch.
// Переопределяется только парой EPOCH_DATE + EPOCH_PARITY.
func (c *Config) Epoch() (schedule.Epoch, error) {
	if c.EpochDate == "" {
		return schedule.DefaultEpoch, nil
	}

	date, err := time.Parse("02.01.2006", c.EpochDate)
	if err != nil {
		return schedule.Epoch{}, fmt.Errorf("EPOCH_DATE: %w", err)
	}

	parity := model.Parity(c.EpochParity)
	if parity != model.ParityOdd && parity != model.ParityEven {
		return schedule.Epoch{}, fmt.Errorf("EPOCH_PARITY должен быть 1 или 2, а не %d", c.EpochParity)
	}

	return schedule.Epoch{Date: date, Parity: parity}, nil
}
