// Package statsui provides the Bubble Tea session history interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/stats"
	"github.com/verte-zerg/typesprint/internal/store"
)

const (
	tabOverview = iota
	tabSessions
)

const trendWindow = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FFA54F"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4F7BFF"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store     *store.Store
	cfg       model.StatsConfig
	highScore int

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	sessions  table.Model
	detail    viewport.Model
	showWords bool

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(st *store.Store, cfg model.StatsConfig, highScore int) *Model {
	m := &Model{
		store:     st,
		cfg:       cfg,
		highScore: highScore,
		tabs:      []string{"Overview", "Sessions"},
		overview:  viewport.New(0, 0),
		detail:    viewport.New(0, 0),
	}
	m.sessions = table.New(
		table.WithColumns(sessionColumns()),
		table.WithHeight(1),
		table.WithFocused(true),
	)
	m.sessions.SetStyles(sessionTableStyles())
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			m.showWords = false
			return m, tea.ClearScreen
		case "enter":
			if m.activeTab == tabSessions && len(m.report.Sessions) > 0 {
				m.showWords = !m.showWords
				m.renderDetail()
			}
			return m, nil
		case "esc":
			m.showWords = false
			return m, nil
		}
		if m.activeTab == tabSessions && !m.showWords {
			var cmd tea.Cmd
			m.sessions, cmd = m.sessions.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		if m.showWords {
			m.detail, cmd = m.detail.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.detail.Width = m.width
	m.detail.Height = bodyHeight
	m.sessions.SetWidth(m.width)
	m.sessions.SetHeight(max(bodyHeight-1, 1))
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.sessions.SetRows(sessionRows(report.Sessions))
	m.renderContents()
}

func (m *Model) renderContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.highScore, width))
}

func (m *Model) renderDetail() {
	sessions := newestFirst(m.report.Sessions)
	idx := m.sessions.Cursor()
	if idx < 0 || idx >= len(sessions) {
		m.detail.SetContent("No session selected.")
		return
	}
	words, err := m.store.ListSessionWords(context.Background(), sessions[idx].ID)
	if err != nil {
		m.detail.SetContent(fmt.Sprintf("Failed to load words: %v", err))
		return
	}
	m.detail.SetContent(renderWords(sessions[idx], words))
	m.detail.GotoTop()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	switch {
	case m.activeTab == tabSessions && m.showWords:
		return m.detail.View()
	case m.activeTab == tabSessions:
		if len(m.report.Sessions) == 0 {
			return "No sessions found."
		}
		return m.sessions.View()
	default:
		return m.overview.View()
	}
}

func (m *Model) renderFooter() string {
	help := "Nav: tab/left/right  Scroll: up/down  Quit: q"
	if m.activeTab == tabSessions {
		help = "Nav: tab/left/right  Select: up/down  Words: enter  Back: esc  Quit: q"
	}
	out := headerStyle.Render(help)
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render(m.errMsg)
	}
	return out
}

func renderOverview(report stats.Report, highScore, width int) string {
	if len(report.Sessions) == 0 {
		return "No sessions found."
	}
	sum := stats.Summarize(report.Sessions)
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", sum.Sessions)),
		metricCard("High score", fmt.Sprintf("%d", highScore)),
		metricCard("All-time best", fmt.Sprintf("%d", report.HistoryBest)),
		metricCard("Best WPM", fmt.Sprintf("%d", sum.BestWPM)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", sum.AvgWPM)),
		metricCard("Avg CPM", fmt.Sprintf("%.1f", sum.AvgCPM)),
		metricCard("Word acc", fmt.Sprintf("%.1f%%", sum.AvgAccuracy*100)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	wpms := make([]float64, len(report.Sessions))
	for i, s := range report.Sessions {
		wpms[i] = float64(s.WPM)
	}
	trend := stats.Sparkline(stats.Downsample(stats.MovingAverage(wpms, trendWindow), max(width-12, 1)))
	out := summary + "\n\n" + headerStyle.Render("WPM trend ") + trend
	var buf bytes.Buffer
	if err := stats.RenderHistory(&buf, report.Sessions); err != nil {
		return out
	}
	return strings.TrimRight(out+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderWords(s model.SessionAggregate, words []model.WordEntry) string {
	lines := []string{
		cardValueStyle.Render(fmt.Sprintf("%s  WPM %d  CPM %d", s.EndedAt.Local().Format("2006-01-02 15:04"), s.WPM, s.CPM)),
		"",
	}
	if len(words) == 0 {
		return strings.Join(append(lines, "No words submitted."), "\n")
	}
	for _, w := range words {
		if w.Correct {
			lines = append(lines, correctStyle.Render(w.Entered))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s  %s", incorrectStyle.Render(w.Entered), headerStyle.Render("expected "+w.Expected)))
	}
	return strings.Join(lines, "\n")
}

func sessionColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "WPM", Width: 5},
		{Title: "CPM", Width: 5},
		{Title: "Words", Width: 6},
		{Title: "Correct", Width: 8},
		{Title: "Record", Width: 6},
	}
}

func sessionRows(sessions []model.SessionAggregate) []table.Row {
	ordered := newestFirst(sessions)
	rows := make([]table.Row, 0, len(ordered))
	for _, s := range ordered {
		rows = append(rows, table.Row(stats.HistoryRow(s)))
	}
	return rows
}

func newestFirst(sessions []model.SessionAggregate) []model.SessionAggregate {
	out := make([]model.SessionAggregate, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		out = append(out, sessions[i])
	}
	return out
}

func sessionTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
