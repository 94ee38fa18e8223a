package core

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Normalize maps free-form question text to its canonical cached form:
// lowercased, split on word boundaries, each token stemmed, tokens joined
// by single spaces. Whitespace-only input yields the empty string.
//
// The result is the durable dedup key for chat entries, so the function
// must stay pure and stable across releases: changing tokenization or the
// stemmer orphans every previously cached answer.
func Normalize(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	stemmed := make([]string, 0, len(words))
	for _, word := range words {
		stemmed = append(stemmed, english.Stem(word, true))
	}
	return strings.Join(stemmed, " ")
}
