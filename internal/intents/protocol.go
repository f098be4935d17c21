package intents

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/windhamg/moviebot-lambda/internal/dialog"
	"github.com/windhamg/moviebot-lambda/internal/location"
	"github.com/windhamg/moviebot-lambda/internal/logger"
	"github.com/windhamg/moviebot-lambda/internal/models"
	"github.com/windhamg/moviebot-lambda/internal/provider/listings"
)

// listingsZone - часовой пояс, в котором считается "сегодня" для запроса афиши.
var listingsZone = time.FixedZone("UTC-07:00", -7*60*60)

type fulfillFunc func(ctx context.Context, t *turn, zip string) *models.Response

// withLocation проводит ход через проверку индекса.
// В фазе проверки слотов ответ всегда ElicitSlot или Delegate; в фазе выполнения вызывается fulfill.
func (d *Dispatcher) withLocation(ctx context.Context, t *turn, fulfill fulfillFunc) (*models.Response, error) {
	res := location.Validate(t.slots, t.session)

	if t.phase == PhaseDialog {
		switch res.Status {
		case location.Invalid:
			return dialog.ElicitSlot(t.session, string(t.intent), t.slots, res.ViolatedSlot, dialog.PlainText(res.Message), nil), nil
		case location.Missing:
			// без сообщения Lex задаст вопрос, настроенный для слота
			return dialog.ElicitSlot(t.session, string(t.intent), t.slots, location.Slot, nil, nil), nil
		default:
			return dialog.Delegate(t.session, t.slots), nil
		}
	}

	if res.Status != location.Valid {
		return nil, fmt.Errorf("%w: intent %s, zip code %s", ErrLocationRequired, t.intent, res.Status)
	}
	return fulfill(ctx, t, res.Zipcode), nil
}

// showings запрашивает афишу. Ошибка провайдера равносильна пустому ответу.
func (d *Dispatcher) showings(ctx context.Context, zip string, days int) []listings.Movie {
	q := listings.Query{
		StartDate: d.now().In(listingsZone).Format(time.DateOnly),
		Zipcode:   zip,
		NumDays:   days,
	}

	movies, err := d.listings.Showings(ctx, q)
	if err != nil {
		logger.Log.Warn("cannot load showings", zap.String("zip", zip), zap.Error(err))
		return nil
	}
	return movies
}

func closeFulfilled(t *turn, content string) *models.Response {
	return dialog.Close(t.session, models.FulfillmentFulfilled, dialog.PlainText(content))
}

// appendUnique добавляет s в list, если его там ещё нет, сохраняя порядок первого появления.
func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func titles(movies []listings.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

// theaterNames возвращает названия кинотеатров из всех сеансов, с повторами.
func theaterNames(movies []listings.Movie) []string {
	var out []string
	for _, m := range movies {
		for _, s := range m.Showtimes {
			out = append(out, s.Theatre.Name)
		}
	}
	return out
}
