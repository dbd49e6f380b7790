// Package feature converts raw text documents into numeric TF-IDF feature
// vectors. It lower-cases input, splits on non-alphanumeric boundaries, and
// drops tokens shorter than two runes. The same tokenizer runs at train and
// predict time; vocabulary indices depend on it.
package feature

import (
	"strings"
	"unicode"
)

// Tokenize breaks text into lowercased terms.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len([]rune(word)) < 2 {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
