package models

// KeyZipcode - ключ атрибута сессии, под которым хранится проверенный почтовый индекс.
const KeyZipcode = "zipcode"

// SessionAttributes - непрозрачный набор строк, который Lex возвращает нам на каждом ходе.
// Ключи, о которых сервис не знает, передаются обратно без изменений.
type SessionAttributes map[string]string

// Ensure возвращает пустой набор вместо nil, чтобы в него можно было писать.
func (s SessionAttributes) Ensure() SessionAttributes {
	if s == nil {
		return SessionAttributes{}
	}
	return s
}

// Zipcode возвращает ранее сохранённый индекс. Значение уже проверено и повторно не валидируется.
func (s SessionAttributes) Zipcode() (string, bool) {
	v, ok := s[KeyZipcode]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s SessionAttributes) SetZipcode(zip string) {
	s[KeyZipcode] = zip
}
