// Package intents реализует обработчики интентов бота и диспетчер, который выбирает
// обработчик по имени интента.
package intents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/windhamg/moviebot-lambda/internal/logger"
	"github.com/windhamg/moviebot-lambda/internal/metrics"
	"github.com/windhamg/moviebot-lambda/internal/models"
	"github.com/windhamg/moviebot-lambda/internal/provider/listings"
	"github.com/windhamg/moviebot-lambda/internal/provider/metadata"
)

// Intent - имя интента, как оно настроено в Lex.
type Intent string

const (
	FindMovie        Intent = "FindMovie"
	GetTheaterMovies Intent = "GetTheaterMovies"
	GetMovies        Intent = "GetMovies"
	FindShowtimes    Intent = "FindShowtimes"
	GetMovieDetail   Intent = "GetMovieDetail"
	GetHelp          Intent = "GetHelp"
)

// Имена слотов.
const (
	SlotMovieTitle  = "movie_title"
	SlotTheaterName = "theater_name"
)

var (
	// ErrUnknownIntent означает расхождение конфигурации Lex и сервиса; пользователю не показывается.
	ErrUnknownIntent = errors.New("intent not supported")
	// ErrUnknownSource - invocationSource, отличный от DialogCodeHook и FulfillmentCodeHook.
	ErrUnknownSource = errors.New("invocation source not supported")
	// ErrLocationRequired - фаза выполнения пришла без проверенного индекса.
	ErrLocationRequired = errors.New("fulfillment requires a validated zip code")
)

// ParseIntent сопоставляет имя интента одному из поддерживаемых.
func ParseIntent(name string) (Intent, error) {
	switch i := Intent(name); i {
	case FindMovie, GetTheaterMovies, GetMovies, FindShowtimes, GetMovieDetail, GetHelp:
		return i, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}

// Phase - фаза хода: проверка слотов или выполнение.
type Phase int

const (
	PhaseDialog Phase = iota
	PhaseFulfillment
)

func (p Phase) String() string {
	if p == PhaseFulfillment {
		return "fulfillment"
	}
	return "dialog"
}

// ParsePhase переводит invocationSource в фазу.
func ParsePhase(source string) (Phase, error) {
	switch source {
	case models.SourceDialogCodeHook:
		return PhaseDialog, nil
	case models.SourceFulfillmentCodeHook:
		return PhaseFulfillment, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSource, source)
}

//go:generate mockgen -destination=mocks/mock_gateways.go -package=mocks github.com/windhamg/moviebot-lambda/internal/intents Listings,Metadata

// Listings - источник сеансов по почтовому индексу.
type Listings interface {
	Showings(ctx context.Context, q listings.Query) ([]listings.Movie, error)
}

// Metadata - источник сведений о фильмах.
type Metadata interface {
	Search(ctx context.Context, title string) ([]metadata.Candidate, error)
	Certification(ctx context.Context, id int64) (string, error)
	Details(ctx context.Context, id int64) (metadata.Details, error)
}

// turn - всё, что обработчику нужно знать о текущем ходе.
type turn struct {
	intent  Intent
	phase   Phase
	slots   models.Slots
	session models.SessionAttributes
}

// Dispatcher обрабатывает ходы диалога. Состояния между запросами не хранит.
type Dispatcher struct {
	listings Listings
	metadata Metadata
	now      func() time.Time
}

type Option func(*Dispatcher)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher возвращает диспетчер, работающий с переданными провайдерами.
func NewDispatcher(l Listings, m Metadata, opts ...Option) *Dispatcher {
	d := &Dispatcher{listings: l, metadata: m, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch передаёт ход обработчику интента и возвращает ровно один ответ.
// Ошибка означает нарушение контракта вызывающей стороной, а не пользовательскую ошибку.
func (d *Dispatcher) Dispatch(ctx context.Context, req *models.Request) (*models.Response, error) {
	start := time.Now()

	logger.Log.Debug("dispatch",
		zap.String("user_id", req.UserID),
		zap.String("intent", req.CurrentIntent.Name),
		zap.String("source", req.InvocationSource),
	)

	intent, err := ParseIntent(req.CurrentIntent.Name)
	if err != nil {
		return nil, err
	}
	phase, err := ParsePhase(req.InvocationSource)
	if err != nil {
		return nil, err
	}

	t := &turn{
		intent:  intent,
		phase:   phase,
		slots:   req.CurrentIntent.Slots,
		session: req.SessionAttributes.Ensure(),
	}

	var resp *models.Response
	switch intent {
	case GetMovies:
		resp, err = d.withLocation(ctx, t, d.getMovies)
	case FindMovie:
		resp, err = d.withLocation(ctx, t, d.findMovie)
	case GetTheaterMovies:
		resp, err = d.withLocation(ctx, t, d.getTheaterMovies)
	case FindShowtimes:
		resp, err = d.withLocation(ctx, t, d.findShowtimes)
	case GetMovieDetail:
		resp = d.getMovieDetail(ctx, t)
	case GetHelp:
		resp = d.help(t)
	}
	if err != nil {
		return nil, err
	}

	metrics.TurnsTotal.WithLabelValues(string(intent), phase.String(), resp.DialogAction.Type).Inc()
	metrics.TurnDuration.WithLabelValues(string(intent)).Observe(time.Since(start).Seconds())

	return resp, nil
}
