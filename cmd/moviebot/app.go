package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/windhamg/moviebot-lambda/internal/logger"
	"github.com/windhamg/moviebot-lambda/internal/models"
	"github.com/windhamg/moviebot-lambda/internal/store"
)

// dispatcher обрабатывает один ход диалога.
type dispatcher interface {
	Dispatch(ctx context.Context, req *models.Request) (*models.Response, error)
}

// app инкапсулирует в себя все зависимости и логику приложения
type app struct {
	bot dispatcher
	// store может быть nil, тогда журнал ходов не ведётся
	store store.Store
}

// newApp принимает на вход внешние зависимости приложения и возвращает новый объект app
func newApp(bot dispatcher, s store.Store) *app {
	return &app{bot: bot, store: s}
}

// routes собирает маршруты сервера
func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogger)

	// обернём хендлер webhook в middleware с поддержкой gzip
	r.Handle("/webhook", gzipMiddleware(a.webhook))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger.Log.Debug("decoding request")
	var req models.Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp, err := a.bot.Dispatch(ctx, &req)
	if err != nil {
		// неизвестный интент - ошибка конфигурации, пользователю её не показываем
		logger.Log.Error("cannot dispatch request",
			zap.String("intent", req.CurrentIntent.Name),
			zap.String("source", req.InvocationSource),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	a.journal(ctx, &req, resp)

	w.Header().Set("Content-Type", "application/json")

	// сериализуем ответ сервера
	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP 200 response", zap.String("action", resp.DialogAction.Type))
}

// journal записывает ход в журнал. Ошибка записи на ответ пользователю не влияет.
func (a *app) journal(ctx context.Context, req *models.Request, resp *models.Response) {
	if a.store == nil {
		return
	}

	zip, _ := resp.SessionAttributes.Zipcode()
	err := a.store.SaveTurn(ctx, store.Turn{
		ID:      uuid.NewString(),
		UserID:  req.UserID,
		Intent:  req.CurrentIntent.Name,
		Phase:   req.InvocationSource,
		Action:  resp.DialogAction.Type,
		Zipcode: zip,
		Time:    time.Now(),
	})
	if err != nil {
		logger.Log.Warn("cannot save turn", zap.String("user_id", req.UserID), zap.Error(err))
	}
}
