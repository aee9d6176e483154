package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typesprint/internal/model"
)

func TestHistoryTableNewestFirst(t *testing.T) {
	ended := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	sessions := []model.SessionAggregate{
		{ID: "a", EndedAt: ended, WPM: 7, CPM: 30, Submitted: 8, CorrectWords: 7},
		{ID: "b", EndedAt: ended.Add(time.Hour), WPM: 41, CPM: 180, Submitted: 42, CorrectWords: 41, NewHighScore: true},
	}
	lines := strings.Split(strings.TrimSuffix(historyTable(sessions), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and 2 rows, got %d lines:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[0], "Ended") || !strings.Contains(lines[0], "Record") {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if strings.Trim(lines[1], "─ ") != "" {
		t.Fatalf("expected header rule, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2024-05-01 13:00") || !strings.Contains(lines[2], "new") {
		t.Fatalf("expected newest record row first, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "2024-05-01 12:00") {
		t.Fatalf("expected older row last, got %q", lines[3])
	}
}

func TestHistoryTableAlignsColumns(t *testing.T) {
	ended := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	sessions := []model.SessionAggregate{
		{ID: "a", EndedAt: ended, WPM: 7, CPM: 30, Submitted: 8, CorrectWords: 7},
		{ID: "b", EndedAt: ended, WPM: 100, CPM: 480, Submitted: 101, CorrectWords: 100},
	}
	lines := strings.Split(strings.TrimSuffix(historyTable(sessions), "\n"), "\n")
	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if lipgloss.Width(line) != width {
			t.Fatalf("line %d width %d, expected %d: %q", i, lipgloss.Width(line), width, line)
		}
	}
	short := strings.Index(lines[3], " 7 ")
	long := strings.Index(lines[2], "100 ")
	if short < 0 || long < 0 || short+1 != long+2 {
		t.Fatalf("expected WPM right aligned:\n%s\n%s", lines[2], lines[3])
	}
}
