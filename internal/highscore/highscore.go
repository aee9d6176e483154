// Package highscore persists the best WPM to a plain text file.
package highscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/typesprint/internal/score"
)

// Load reads the high score at path. A missing or blank file is zero.
func Load(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read high score: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid high score in %s: %w", path, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid high score in %s: negative value %d", path, value)
	}
	return value, nil
}

// Save writes value as a bare ASCII integer, replacing the file atomically.
func Save(path string, value int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create high score dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "highscore-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp high score: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(strconv.Itoa(value)); err != nil {
		return fmt.Errorf("failed to write high score: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close high score: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write high score: %w", err)
	}
	return nil
}

// Update saves wpm when it beats best. It returns the resulting best and
// whether the file was rewritten.
func Update(path string, best, wpm int) (int, bool, error) {
	if !score.BeatsHighScore(wpm, best) {
		return best, false, nil
	}
	if err := Save(path, wpm); err != nil {
		return best, false, err
	}
	return wpm, true, nil
}
