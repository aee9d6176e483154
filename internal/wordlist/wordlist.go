// Package wordlist loads the word corpus from a file.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// ErrEmpty is returned when a corpus has no usable words.
var ErrEmpty = errors.New("word list is empty")

// LoadWords reads whitespace-separated tokens from path and keeps the ones
// accepted by filter, lowercased.
func LoadWords(path string, filter FilterFunc) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word, ok := Normalize(scanner.Text(), filter)
		if !ok {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return words, nil
}
