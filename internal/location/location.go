// Package location проверяет почтовый индекс - единственный контекст, общий для всех интентов.
package location

import (
	"regexp"

	"github.com/windhamg/moviebot-lambda/internal/models"
)

// Slot - имя слота с индексом во всех интентах бота.
const Slot = "zipcode"

// ViolationMessage отправляется пользователю, если индекс введён в неверном формате.
const ViolationMessage = "Whoops! You entered an invalid zip code. What is your zip code?"

var zipRe = regexp.MustCompile(`^(\d{5})(?:[- ]?\d{4})?$`)

type Status int

const (
	Missing Status = iota
	Valid
	Invalid
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "missing"
	}
}

// Result - итог проверки индекса.
type Result struct {
	Status Status
	// Zipcode заполнен только для Valid: первые пять цифр индекса.
	Zipcode string
	// ViolatedSlot и Message заполнены только для Invalid.
	ViolatedSlot string
	Message      string
}

// Validate определяет индекс для текущего хода.
// Значение из слота важнее сохранённого в сессии; прошедшее проверку значение
// записывается в session, поэтому session должен быть не nil.
func Validate(slots models.Slots, session models.SessionAttributes) Result {
	if raw := slots.Value(Slot); raw != "" {
		m := zipRe.FindStringSubmatch(raw)
		if m == nil {
			return Result{Status: Invalid, ViolatedSlot: Slot, Message: ViolationMessage}
		}
		session.SetZipcode(m[1])
		return Result{Status: Valid, Zipcode: m[1]}
	}

	// сохранённый индекс уже прошёл проверку на предыдущем ходе
	if zip, ok := session.Zipcode(); ok {
		return Result{Status: Valid, Zipcode: zip}
	}

	return Result{Status: Missing}
}
