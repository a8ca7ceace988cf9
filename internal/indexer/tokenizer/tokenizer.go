// Package tokenizer splits raw document and query text into words. Words are
// separated by the ASCII space only; any other byte, including tabs and
// newlines, stays inside the word it appears in and is rejected later by
// IsValidWord.
package tokenizer

import "strings"

// Tokenize returns the space-separated words of text in order. Runs of
// spaces never produce empty words.
func Tokenize(text string) []string {
	words := make([]string, 0, strings.Count(text, " ")+1)
	for {
		text = strings.TrimLeft(text, " ")
		if text == "" {
			return words
		}
		end := strings.IndexByte(text, ' ')
		if end < 0 {
			return append(words, text)
		}
		words = append(words, text[:end])
		text = text[end:]
	}
}

// IsValidWord reports whether word contains no control characters, that is
// no byte below the space character.
func IsValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < ' ' {
			return false
		}
	}
	return true
}
