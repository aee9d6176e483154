package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesprint/internal/score"
	"github.com/verte-zerg/typesprint/internal/session"
)

// wordLine is a half-open range of sample word indices shown on one line.
type wordLine struct {
	start int
	end   int
}

// wrapWords packs words into lines no wider than width. A word wider than
// width gets a line of its own.
func wrapWords(words []string, width int) []wordLine {
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []wordLine{{start: 0, end: len(words)}}
	}
	lines := []wordLine{}
	start := 0
	lineWidth := 0
	for i, word := range words {
		w := runewidth.StringWidth(word)
		if i > start && lineWidth+1+w > width {
			lines = append(lines, wordLine{start: start, end: i})
			start = i
			lineWidth = 0
		}
		if i > start {
			lineWidth++
		}
		lineWidth += w
	}
	lines = append(lines, wordLine{start: start, end: len(words)})
	return lines
}

// lineForWord returns the line holding word index idx, or the last line
// when idx is past the end.
func lineForWord(lines []wordLine, idx int) int {
	for i, line := range lines {
		if idx >= line.start && idx < line.end {
			return i
		}
	}
	return max(len(lines)-1, 0)
}

// visibleWindow picks which lines to show so the current line stays
// second from the top once the first line is done.
func visibleWindow(lines []wordLine, current, height int) (int, int) {
	if height <= 0 || len(lines) <= height {
		return 0, len(lines)
	}
	first := max(current-1, 0)
	if first+height > len(lines) {
		first = len(lines) - height
	}
	return first, first + height
}

func renderWord(s *session.Session, idx int, input string) string {
	sample := s.Sample()
	word := sample[idx]
	marks := s.Marks()
	switch {
	case idx < len(marks):
		if marks[idx] == score.Correct {
			return correctWordStyle.Render(word)
		}
		return incorrectWordStyle.Render(word)
	case idx == s.Index() && s.State() != session.Expired:
		return renderCurrentWord(word, input)
	default:
		return pendingStyle.Render(word)
	}
}

func renderCurrentWord(word, input string) string {
	typed := strings.ToLower(strings.TrimSpace(input))
	letters := []rune(word)
	marks := score.LetterMarks(word, typed)
	var b strings.Builder
	for i, r := range letters {
		style := currentWordStyle
		switch marks[i] {
		case score.Correct:
			style = currentCorrectStyle
		case score.Incorrect:
			style = currentIncorrectStyle
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

func renderLines(s *session.Session, input string, lines []wordLine, first, last int) string {
	out := make([]string, 0, last-first)
	for _, line := range lines[first:last] {
		parts := make([]string, 0, line.end-line.start)
		for i := line.start; i < line.end; i++ {
			parts = append(parts, renderWord(s, i, input))
		}
		out = append(out, strings.Join(parts, " "))
	}
	return strings.Join(out, "\n")
}
