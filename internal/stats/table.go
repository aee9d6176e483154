package stats

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/verte-zerg/typesprint/internal/model"
)

var historyHeaders = []string{"Ended", "WPM", "CPM", "Words", "Correct", "Record"}

// Numeric history columns are right aligned.
var historyNumericCols = map[int]bool{1: true, 2: true, 3: true, 4: true}

// historyTable lays out sessions newest first under a header rule.
func historyTable(sessions []model.SessionAggregate) string {
	rows := make([][]string, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		rows = append(rows, HistoryRow(sessions[i]))
	}
	cell := lipgloss.NewStyle().PaddingRight(1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers(historyHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row != table.HeaderRow && historyNumericCols[col] {
				return cell.Align(lipgloss.Right)
			}
			return cell
		}).
		String()
}
