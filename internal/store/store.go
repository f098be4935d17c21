package store

import (
	"context"
	"errors"
	"time"
)

// ErrConflict указывает на конфликт данных в хранилище.
var ErrConflict = errors.New("data conflict")

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/windhamg/moviebot-lambda/internal/store Store

// Store описывает журнал обработанных ходов диалога.
// Журнал только пишется: состояние диалога из него не восстанавливается.
type Store interface {
	// SaveTurn сохраняет сведения об обработанном ходе
	SaveTurn(ctx context.Context, turn Turn) error
	// ListTurns возвращает ходы пользователя, от последнего к первому
	ListTurns(ctx context.Context, userID string, limit int) ([]Turn, error)
}

// Turn описывает один обработанный ход.
type Turn struct {
	ID      string
	UserID  string
	Intent  string
	Phase   string
	Action  string
	Zipcode string
	Time    time.Time
}
