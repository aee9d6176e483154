package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// LengthFilter keeps words whose rune count is within [minLen, maxLen].
// A non-positive maxLen means no upper bound.
func LengthFilter(minLen, maxLen int) FilterFunc {
	return func(word string) bool {
		n := len([]rune(word))
		if n == 0 || n < minLen {
			return false
		}
		return maxLen <= 0 || n <= maxLen
	}
}

// Normalize lowercases a token and applies filter to the result.
func Normalize(token string, filter FilterFunc) (string, bool) {
	word := strings.ToLower(strings.TrimSpace(token))
	if word == "" {
		return "", false
	}
	if filter != nil && !filter(word) {
		return "", false
	}
	return word, true
}
