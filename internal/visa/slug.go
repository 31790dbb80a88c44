package visa

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Deslugify turns "united-states" into "United States".
func Deslugify(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
