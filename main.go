package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/notaneet/raspbot/bot"
	"github.com/notaneet/raspbot/config"
	"github.com/notaneet/raspbot/logger"
	"github.com/notaneet/raspbot/schedule"
	"github.com/notaneet/raspbot/server"
	"github.com/notaneet/raspbot/source"
	"github.com/notaneet/raspbot/store"
)

func main() {
	cfg := config.New()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("не удалось загрузить часовой пояс", zap.String("tz", cfg.Timezone), zap.Error(err))
	}
	time.Local = loc

	epoch, err := cfg.Epoch()
	if err != nil {
		log.Fatal("неверная опорная точка четности", zap.Error(err))
	}

	// Расписание грузится один раз на старте. Если не вышло - бот
	// работает дальше и на все запросы честно отвечает, что
	// расписание не загружено.
	doc, err := source.New(cfg).Load()
	if err != nil {
		log.Error("не удалось загрузить расписание", zap.String("source", cfg.Source), zap.Error(err))
		doc = nil
	} else {
		log.Info("расписание загружено", zap.String("source", cfg.Source))
	}

	lookup := schedule.New(doc,
		schedule.WithEpoch(epoch),
		schedule.WithLocation(loc),
		schedule.WithYear(cfg.Year),
	)

	var users *store.UserStore
	if cfg.PostgresDSN != "" {
		users, err = store.NewUserStore(cfg.PostgresDSN)
		if err != nil {
			log.Error("не удалось подключиться к постгресу", zap.Error(err))
			users = nil
		}
	}

	if cfg.Token == "" {
		log.Fatal("переменная окружения TELEGRAM_BOT_TOKEN не задана")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		log.Fatal("не удалось подключиться к телеграму", zap.Error(err))
	}
	log.Info("бот авторизован", zap.String("username", api.Self.UserName))

	b := bot.New(api, lookup, users, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Без порта работаем в режиме polling - удобно для локальной отладки
	if cfg.Port == "" {
		b.RunPolling(ctx)
		return
	}

	if cfg.WebhookURL != "" {
		setWebhook(api, cfg.WebhookURL, log)
	} else {
		log.Warn("WEBHOOK_URL не задан, вебхук не установлен")
	}

	srv := server.New(b, users, doc, log)
	go srv.RunWorker(ctx)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		log.Info("запуск веб-сервера", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("веб-сервер не запустился", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("сервер не остановился корректно", zap.Error(err))
	}
	if users != nil {
		users.Close()
	}
	log.Info("сервер остановлен")
}

func setWebhook(api *tgbotapi.BotAPI, baseURL string, log *zap.Logger) {
	wh, err := tgbotapi.NewWebhook(baseURL + "/webhook")
	if err == nil {
		_, err = api.Request(wh)
	}
	if err != nil {
		log.Warn("не удалось установить вебхук", zap.Error(err))
		return
	}
	log.Info("вебхук установлен", zap.String("url", baseURL+"/webhook"))
}
