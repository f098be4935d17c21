package intents

import (
	"context"
	"fmt"
	"strings"

	"github.com/windhamg/moviebot-lambda/internal/dialog"
	"github.com/windhamg/moviebot-lambda/internal/match"
	"github.com/windhamg/moviebot-lambda/internal/models"
)

// showtimesDays - окно афиши в днях для поиска сеансов.
const showtimesDays = 3

// getMovies перечисляет фильмы, которые идут около индекса.
func (d *Dispatcher) getMovies(ctx context.Context, t *turn, zip string) *models.Response {
	var list []string
	for _, m := range d.showings(ctx, zip, 0) {
		list = appendUnique(list, m.Title)
	}

	if len(list) == 0 {
		return closeFulfilled(t, fmt.Sprintf("I'm sorry, I can't find any movies showing near *%s*", zip))
	}

	opts := make([]models.Button, 0, len(list))
	for _, title := range list {
		opts = append(opts, models.Button{
			Text:  title,
			Value: fmt.Sprintf("Where is the film %s playing near %s", title, zip),
		})
	}

	return dialog.ElicitIntent(
		t.session,
		dialog.PlainText("Here are the movies I found:"),
		dialog.BuildResponseCard(
			fmt.Sprintf("Movies showing near %s", zip),
			"Select a movie to see theaters",
			opts,
		),
	)
}

// findMovie перечисляет кинотеатры, где идёт фильм.
func (d *Dispatcher) findMovie(ctx context.Context, t *turn, zip string) *models.Response {
	query := t.slots.Value(SlotMovieTitle)
	movies := d.showings(ctx, zip, 0)

	var theaters []string
	best, ok := match.Best(query, titles(movies))
	if ok {
		for _, m := range movies {
			if m.Title != best.Value {
				continue
			}
			for _, s := range m.Showtimes {
				theaters = appendUnique(theaters, s.Theatre.Name)
			}
		}
	}

	if len(theaters) == 0 {
		return closeFulfilled(t, fmt.Sprintf("I'm sorry, I can't find any theaters showing *%s*", query))
	}

	opts := make([]models.Button, 0, len(theaters))
	for _, theater := range theaters {
		opts = append(opts, models.Button{
			Text:  theater,
			Value: fmt.Sprintf("When is theater %s showing film %s", theater, best.Value),
		})
	}

	return dialog.ElicitIntent(
		t.session,
		dialog.PlainText(fmt.Sprintf("*%s* is showing at the following theaters:", best.Value)),
		dialog.BuildResponseCard(
			fmt.Sprintf("Theaters showing %s", best.Value),
			"Select a theater to see showtimes",
			opts,
		),
	)
}

// getTheaterMovies перечисляет фильмы, которые идут в кинотеатре.
func (d *Dispatcher) getTheaterMovies(ctx context.Context, t *turn, zip string) *models.Response {
	query := t.slots.Value(SlotTheaterName)
	movies := d.showings(ctx, zip, 0)

	var list []string
	best, ok := match.Best(query, theaterNames(movies))
	if ok {
		for _, m := range movies {
			for _, s := range m.Showtimes {
				if s.Theatre.Name == best.Value {
					list = appendUnique(list, m.Title)
				}
			}
		}
	}

	if len(list) == 0 {
		return closeFulfilled(t, fmt.Sprintf("I'm sorry, I can't find any movies showing at *%s*", query))
	}

	opts := make([]models.Button, 0, len(list))
	for _, title := range list {
		opts = append(opts, models.Button{
			Text:  title,
			Value: fmt.Sprintf("When is theater %s showing film %s", best.Value, title),
		})
	}

	return dialog.ElicitIntent(
		t.session,
		dialog.PlainText(fmt.Sprintf("Currently showing at *%s*:", best.Value)),
		dialog.BuildResponseCard("Now showing", "Select a movie to see showtimes", opts),
	)
}

// findShowtimes перечисляет сеансы фильма в кинотеатре в порядке ответа провайдера.
func (d *Dispatcher) findShowtimes(ctx context.Context, t *turn, zip string) *models.Response {
	movieQuery := t.slots.Value(SlotMovieTitle)
	theaterQuery := t.slots.Value(SlotTheaterName)
	movies := d.showings(ctx, zip, showtimesDays)

	title, theater := movieQuery, theaterQuery
	bestTitle, titleOK := match.Best(movieQuery, titles(movies))
	if titleOK {
		title = bestTitle.Value
	}
	bestTheater, theaterOK := match.Best(theaterQuery, theaterNames(movies))
	if theaterOK {
		theater = bestTheater.Value
	}

	var times []string
	if titleOK && theaterOK {
		for _, m := range movies {
			if m.Title != title {
				continue
			}
			for _, s := range m.Showtimes {
				if s.Theatre.Name == theater {
					times = append(times, "* "+formatShowtime(s.DateTime))
				}
			}
		}
	}

	if len(times) == 0 {
		return closeFulfilled(t, fmt.Sprintf("I'm sorry, I can't find any showtimes for *%s* at %s", title, theater))
	}

	return closeFulfilled(t, fmt.Sprintf("*%s* is showing at %s at the following times:\n```%s```",
		title, theater, strings.Join(times, "\n")))
}
