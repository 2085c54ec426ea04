// Package server веб-часть бота: прием вебхуков от телеграма
// и служебные страницы для мониторинга.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/notaneet/raspbot/bot"
	"github.com/notaneet/raspbot/model"
	"github.com/notaneet/raspbot/store"
)

// Обновления складываются в очередь и обрабатываются одним воркером,
// чтобы вебхук отвечал телеграму сразу
const queueSize = 64

type Server struct {
	bot   *bot.Bot
	users *store.UserStore //nil - без реестра
	doc   *model.Document  //nil - расписание не загружено
	log   *zap.Logger

	queue      chan tgbotapi.Update
	start      time.Time
	lastUpdate atomic.Int64 //unix-время последнего обновления
}

func New(b *bot.Bot, users *store.UserStore, doc *model.Document, log *zap.Logger) *Server {
	return &Server{
		bot:   b,
		users: users,
		doc:   doc,
		log:   log,
		queue: make(chan tgbotapi.Update, queueSize),
		start: time.Now(),
	}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", s.handleHome)
	r.Post("/webhook", s.handleWebhook)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/schedule.json", s.handleSchedule)

	return r
}

// RunWorker разгребает очередь обновлений, пока контекст не отменен
func (s *Server) RunWorker(ctx context.Context) {
	s.log.Info("запуск обработчика обновлений")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("обработчик обновлений остановлен")
			return
		case update := <-s.queue:
			s.bot.HandleUpdate(update)
		}
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Bot is running"))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		// Телеграму в любом случае отвечаем 200, иначе он будет
		// повторять этот же запрос
		s.log.Warn("пустой или битый webhook-запрос", zap.Error(err))
		w.Write([]byte("OK"))
		return
	}

	s.lastUpdate.Store(time.Now().Unix())

	select {
	case s.queue <- update:
		s.log.Info("обновление добавлено в очередь", zap.Int("update_id", update.UpdateID))
		w.Write([]byte("OK"))
	default:
		s.log.Error("очередь обновлений переполнена", zap.Int("update_id", update.UpdateID))
		http.Error(w, "queue overflow", http.StatusServiceUnavailable)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"timestamp":       time.Now().Unix(),
		"schedule_loaded": s.doc != nil,
		"queue_size":      len(s.queue),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"uptime":          time.Since(s.start).Seconds(),
		"last_update":     s.lastUpdate.Load(),
		"queue_size":      len(s.queue),
		"schedule_loaded": s.doc != nil,
	}

	if s.users != nil {
		if n, err := s.users.Count(); err == nil {
			status["users"] = n
		} else {
			s.log.Warn("не удалось посчитать пользователей", zap.Error(err))
		}
	}

	s.writeJSON(w, http.StatusOK, status)
}

// handleSchedule отдает загруженный документ как есть, удобно
// проверять, что именно видит бот
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if s.doc == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"error": "расписание не загружено",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, s.doc)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("не удалось записать ответ", zap.Error(err))
	}
}
