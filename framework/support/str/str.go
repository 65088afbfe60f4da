// Package str holds the handful of Laravel Str:: helpers the framework needs
// to translate between Go-style parameter names and request field names.
//
//	str.Snake("userId")      // "user_id"
//	str.SnakeWith("userId", "-") // "user-id"
//	str.Camel("user_id")     // "userId"
//	str.Studly("user_id")    // "UserId"
package str

import (
	"strings"
	"sync"
	"unicode"
)

type snakeKey struct {
	value     string
	delimiter string
}

var (
	snakeCache  sync.Map // snakeKey → string
	studlyCache sync.Map // string → string
)

// Snake converts a string to snake_case.
//
//	// Laravel: Str::snake('fooBar') === 'foo_bar'
func Snake(value string) string {
	return SnakeWith(value, "_")
}

// SnakeWith converts a string to snake case using the given delimiter.
//
// Every character followed by an upper-case letter gets a delimiter, so
// acronyms are split letter by letter: "HTMLParser" → "h_t_m_l_parser".
func SnakeWith(value, delimiter string) string {
	key := snakeKey{value: value, delimiter: delimiter}
	if cached, ok := snakeCache.Load(key); ok {
		return cached.(string)
	}

	out := value
	if !isLower(value) {
		out = snake(removeSpaces(ucWords(value)), delimiter)
	}

	snakeCache.Store(key, out)
	return out
}

// Studly converts a string to StudlyCase.
//
//	// Laravel: Str::studly('foo_bar') === 'FooBar'
func Studly(value string) string {
	if cached, ok := studlyCache.Load(value); ok {
		return cached.(string)
	}
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(value)
	out := removeSpaces(ucWords(replaced))
	studlyCache.Store(value, out)
	return out
}

// Camel converts a string to camelCase.
//
//	// Laravel: Str::camel('foo_bar') === 'fooBar'
func Camel(value string) string {
	studly := []rune(Studly(value))
	if len(studly) == 0 {
		return ""
	}
	studly[0] = unicode.ToLower(studly[0])
	return string(studly)
}

// ── helpers ─────────────────────────────────────────────────────────────────

// isLower mirrors PHP's ctype_lower: non-empty and only lower-case letters.
func isLower(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// ucWords upper-cases the first letter of every space separated word.
func ucWords(s string) string {
	rs := []rune(s)
	upper := true
	for i, r := range rs {
		if upper {
			rs[i] = unicode.ToUpper(r)
		}
		upper = unicode.IsSpace(r)
	}
	return string(rs)
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func snake(s, delimiter string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(s)/2)
	for i, r := range rs {
		b.WriteRune(unicode.ToLower(r))
		if i+1 < len(rs) && unicode.IsUpper(rs[i+1]) {
			b.WriteString(delimiter)
		}
	}
	return b.String()
}
