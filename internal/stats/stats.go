// Package stats contains history summaries and plain-text reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/typesprint/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	sparkLabelWidth     = len("WPM trend: ")
)

// Summary aggregates a list of sessions.
type Summary struct {
	Sessions    int
	AvgWPM      float64
	BestWPM     int
	AvgCPM      float64
	AvgAccuracy float64
	NewRecords  int
}

// Summarize computes averages and bests over sessions.
func Summarize(sessions []model.SessionAggregate) Summary {
	var sum Summary
	if len(sessions) == 0 {
		return sum
	}
	var totalWPM, totalCPM, totalAcc float64
	for _, s := range sessions {
		totalWPM += float64(s.WPM)
		totalCPM += float64(s.CPM)
		totalAcc += WordAccuracy(s.CorrectWords, s.Submitted)
		if s.WPM > sum.BestWPM {
			sum.BestWPM = s.WPM
		}
		if s.NewHighScore {
			sum.NewRecords++
		}
	}
	count := float64(len(sessions))
	sum.Sessions = len(sessions)
	sum.AvgWPM = totalWPM / count
	sum.AvgCPM = totalCPM / count
	sum.AvgAccuracy = totalAcc / count
	return sum
}

// WordAccuracy is the share of submitted words typed at the right position.
func WordAccuracy(correct, submitted int) float64 {
	if submitted <= 0 {
		return 0
	}
	return float64(correct) / float64(submitted)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Downsample averages values into at most width buckets.
func Downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return append([]float64(nil), values...)
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// TerminalWidth returns the width of w when it is a terminal.
func TerminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints a summary block and a WPM trend line. highScore is
// the high-score file value; the report carries the best WPM on record.
func RenderSummary(w io.Writer, report Report, highScore, window, width int) error {
	sessions := report.Sessions
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sum := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", sum.Sessions),
		fmt.Sprintf("High score: %d WPM", highScore),
		fmt.Sprintf("All-time best WPM: %d", report.HistoryBest),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Avg WPM: %.2f", sum.AvgWPM),
		fmt.Sprintf("Avg CPM: %.2f", sum.AvgCPM),
		fmt.Sprintf("Avg word accuracy: %.2f%%", sum.AvgAccuracy*100),
		fmt.Sprintf("New records: %d", sum.NewRecords),
	}
	wpms := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = float64(s.WPM)
	}
	trend := Downsample(MovingAverage(wpms, window), width-sparkLabelWidth)
	lines = append(lines, "WPM trend: "+Sparkline(trend), "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints one row per session, newest first.
func RenderHistory(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(historyTable(sessions), "\n"))
	return err
}

// HistoryRow formats a session for tabular output.
func HistoryRow(s model.SessionAggregate) []string {
	record := ""
	if s.NewHighScore {
		record = "new"
	}
	return []string{
		s.EndedAt.Local().Format("2006-01-02 15:04"),
		fmt.Sprintf("%d", s.WPM),
		fmt.Sprintf("%d", s.CPM),
		fmt.Sprintf("%d", s.Submitted),
		fmt.Sprintf("%.0f%%", WordAccuracy(s.CorrectWords, s.Submitted)*100),
		record,
	}
}
