// Package match подбирает каноническое имя у провайдера по тексту, который ввёл пользователь.
package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Threshold - минимальная похожесть, при которой кандидат считается совпадением.
const Threshold = 0.5

// Match - выбранный кандидат.
type Match struct {
	Index int
	Value string
	Score float64
}

func normalize(s string) string {
	// cases.Caser хранит состояние, поэтому создаётся на каждый вызов
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Similarity возвращает отношение совпадающих символов (как SequenceMatcher.ratio) в диапазоне [0, 1]
// без учёта регистра и пробелов по краям.
func Similarity(candidate, query string) float64 {
	a, b := runes(normalize(candidate)), runes(normalize(query))
	if len(a)+len(b) == 0 {
		return 1
	}
	return difflib.NewMatcher(a, b).Ratio()
}

// Best выбирает самого похожего на query кандидата с похожестью не ниже Threshold.
// При равенстве побеждает первый кандидат в порядке ответа провайдера.
func Best(query string, candidates []string) (Match, bool) {
	best := Match{Index: -1}
	for i, c := range candidates {
		score := Similarity(c, query)
		if score < Threshold {
			continue
		}
		if score > best.Score {
			best = Match{Index: i, Value: c, Score: score}
		}
	}
	return best, best.Index >= 0
}
