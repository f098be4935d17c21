package intents

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/windhamg/moviebot-lambda/internal/logger"
	"github.com/windhamg/moviebot-lambda/internal/match"
	"github.com/windhamg/moviebot-lambda/internal/models"
)

var helpExamples = []string{
	"  * What movies are out right now?",
	"  * What movies are playing near _zipcode_?",
	"  * Where is _movie_ playing?",
	"  * Tell me when _movie_ is showing at _theater_",
	"  * How long is _movie_?",
	"  * What is _movie_ rated?",
}

// getMovieDetail рассказывает о фильме: дата выхода, длительность, рейтинг.
// Индекс для этого интента не нужен, поэтому фаза не проверяется.
func (d *Dispatcher) getMovieDetail(ctx context.Context, t *turn) *models.Response {
	query := t.slots.Value(SlotMovieTitle)

	candidates, err := d.metadata.Search(ctx, query)
	if err != nil {
		logger.Log.Warn("cannot search movie", zap.String("query", query), zap.Error(err))
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Title)
	}

	best, ok := match.Best(query, names)
	if !ok {
		return closeFulfilled(t, fmt.Sprintf("I'm sorry, I can't find any info for *%s*", query))
	}
	movie := candidates[best.Index]

	// дополнительные сведения не обязательны: при ошибке поле остаётся пустым
	rating, err := d.metadata.Certification(ctx, movie.ID)
	if err != nil {
		logger.Log.Warn("cannot load certification", zap.Int64("movie_id", movie.ID), zap.Error(err))
	}
	details, err := d.metadata.Details(ctx, movie.ID)
	if err != nil {
		logger.Log.Warn("cannot load movie details", zap.Int64("movie_id", movie.ID), zap.Error(err))
	}

	return closeFulfilled(t, fmt.Sprintf("Here is some info for *%s*:\n_Release date_: %s\n_Runtime_: %d mins\n_Rating_: %s",
		movie.Title, formatReleaseDate(details.ReleaseDate), details.Runtime, rating))
}

func (d *Dispatcher) help(t *turn) *models.Response {
	return closeFulfilled(t, "You can ask me for information about when and where movies are playing, "+
		"as well as for basic info on current movies. Here are some examples of things you can ask me:\n"+
		strings.Join(helpExamples, "\n"))
}
