package intents

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Форматы времени сеанса в ответе провайдера афиши.
var showtimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// formatShowtime превращает 2018-03-09T19:30 в "Fri, Mar 9th @ 7:30 pm".
// Нераспознанное значение возвращается как есть.
func formatShowtime(s string) string {
	for _, layout := range showtimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return fmt.Sprintf("%s, %s %s @ %s", t.Format("Mon"), t.Format("Jan"), humanize.Ordinal(t.Day()), t.Format("3:04 pm"))
	}
	return s
}

// formatReleaseDate превращает 2018-02-13 в "Tue, Feb 13th 2018"; пустая или неверная дата даёт "".
func formatReleaseDate(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s, %s %s %d", t.Format("Mon"), t.Format("Jan"), humanize.Ordinal(t.Day()), t.Year())
}
