// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/typesprint/internal/generator"
	"github.com/verte-zerg/typesprint/internal/highscore"
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/score"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/store"
)

const (
	textLines        = 5
	placeholder      = "Type here to start"
	defaultTextWidth = 60
)

type tickMsg struct {
	generation int
	at         time.Time
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config model.Config
	store  *store.Store
	gen    *generator.Generator
	corpus []string
	now    func() time.Time

	session    *session.Session
	generation int
	input      textinput.Model

	width  int
	height int

	highScore int
	lastCPM   int
	lastWPM   int

	finished  bool
	result    score.Result
	newRecord bool
	prevBest  int
	errMsg    string
}

var (
	correctWordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4F7BFF"))
	incorrectWordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#303030")).Background(lipgloss.Color("#ADCEFF"))
	currentCorrectStyle   = currentWordStyle.Foreground(lipgloss.Color("#FFFFFF"))
	currentIncorrectStyle = currentWordStyle.Foreground(lipgloss.Color("#FF4D4F"))
	labelStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFDEAD")).Bold(true)
	timeStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA54F")).Bold(true)
	recordStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA54F")).Bold(true)
	footerStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	textBoxStyle          = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#ADCEFF"))
)

// NewModel constructs a typing TUI model. st may be nil to skip history.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator, corpus []string, highScore int) (*Model, error) {
	sample, err := gen.Sample(corpus, cfg.SampleSize)
	if err != nil {
		return nil, err
	}
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "> "
	input.Focus()

	m := &Model{
		config:    cfg,
		store:     st,
		gen:       gen,
		corpus:    corpus,
		now:       time.Now,
		session:   session.New(sample, cfg.Duration),
		input:     input,
		highScore: highScore,
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.textWidth()-len(m.input.Prompt), 10)
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlR:
		m.reset()
		return m, textinput.Blink
	}
	if m.session.State() == session.Expired {
		return m, nil
	}

	cmd := m.startTimer()
	switch msg.Type {
	case tea.KeySpace, tea.KeyEnter:
		m.submit()
		return m, cmd
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.input.Value() == "" {
			m.retreat()
			return m, cmd
		}
	case tea.KeyRunes:
		return m, tea.Batch(cmd, m.typeRunes(msg))
	}
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, tea.Batch(cmd, inputCmd)
}

// typeRunes feeds runes to the input box, treating whitespace inside a
// paste as a word boundary.
func (m *Model) typeRunes(msg tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	chunk := []rune{}
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: chunk, Paste: msg.Paste})
		cmds = append(cmds, cmd)
		chunk = []rune{}
	}
	for _, r := range msg.Runes {
		if unicode.IsSpace(r) {
			flush()
			m.submit()
			continue
		}
		chunk = append(chunk, r)
	}
	flush()
	return tea.Batch(cmds...)
}

func (m *Model) startTimer() tea.Cmd {
	if !m.session.Start(m.now()) {
		return nil
	}
	return tickCmd(m.generation)
}

func tickCmd(generation int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{generation: generation, at: t}
	})
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.generation != m.generation {
		return nil
	}
	if m.session.Tick(msg.at) {
		m.finishSession()
		return nil
	}
	if m.session.State() != session.Running {
		return nil
	}
	return tickCmd(m.generation)
}

func (m *Model) submit() {
	if m.session.Submit(m.input.Value()) {
		m.input.SetValue("")
		return
	}
	if strings.TrimSpace(m.input.Value()) == "" {
		m.input.SetValue("")
	}
}

func (m *Model) retreat() {
	word, ok := m.session.Retreat()
	if !ok {
		return
	}
	m.input.SetValue(word)
	m.input.CursorEnd()
}

func (m *Model) reset() {
	sample, err := m.gen.Sample(m.corpus, m.config.SampleSize)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to sample words: %v", err)
		return
	}
	m.generation++
	m.session.Reset(sample)
	m.finished = false
	m.result = score.Result{}
	m.newRecord = false
	m.errMsg = ""
	m.input.Reset()
	m.input.Focus()

	best, err := highscore.Load(m.config.HighScorePath)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.highScore = best
}

func (m *Model) finishSession() {
	res := m.session.Result()
	m.finished = true
	m.result = res
	m.lastCPM = res.CPM
	m.lastWPM = res.WPM
	m.prevBest = m.highScore
	m.input.Blur()

	best, wrote, err := highscore.Update(m.config.HighScorePath, m.highScore, res.WPM)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to save high score: %v", err)
		logErrf("failed to save high score: %v\n", err)
	}
	m.highScore = best
	m.newRecord = wrote
	m.recordSession(res)
}

func (m *Model) recordSession(res score.Result) {
	if m.store == nil {
		return
	}
	startedAt := m.session.StartedAt()
	endedAt := m.session.EndedAt()
	stats := model.SessionStats{
		ID:            uuid.NewString(),
		StartedAt:     startedAt,
		EndedAt:       endedAt,
		DurationMs:    endedAt.Sub(startedAt).Milliseconds(),
		SampleSize:    len(m.session.Sample()),
		WordListPath:  m.config.WordListPath,
		Submitted:     res.Submitted,
		CorrectWords:  res.CorrectWords,
		CPM:           res.CPM,
		WPM:           res.WPM,
		NewHighScore:  m.newRecord,
		PrevHighScore: m.prevBest,
	}
	entered := m.session.Entered()
	sample := m.session.Sample()
	marks := m.session.Marks()
	words := make([]model.WordEntry, 0, len(entered))
	for i, w := range entered {
		words = append(words, model.WordEntry{
			Position: i,
			Expected: sample[i],
			Entered:  w,
			Correct:  marks[i] == score.Correct,
		})
	}
	if err := m.store.InsertSession(context.Background(), stats, words); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.renderHeader(), m.renderText(), m.input.View(), m.renderFooter()}
	content := strings.Join(sections, "\n\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) textWidth() int {
	if m.width == 0 {
		return defaultTextWidth
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) renderHeader() string {
	remaining := int(m.session.Remaining() / time.Second)
	segments := []string{
		labelStyle.Render("Highscore: ") + valueStyle.Render(fmt.Sprintf("%d", m.highScore)),
		labelStyle.Render("Last CPM: ") + valueStyle.Render(fmt.Sprintf("%d", m.lastCPM)),
		labelStyle.Render("Last WPM: ") + valueStyle.Render(fmt.Sprintf("%d", m.lastWPM)),
		labelStyle.Render("Time left: ") + timeStyle.Render(fmt.Sprintf("%d", remaining)),
	}
	return strings.Join(segments, "   ")
}

func (m *Model) renderText() string {
	width := m.textWidth()
	if m.finished {
		return textBoxStyle.Width(width).Render(m.renderResult())
	}
	sample := m.session.Sample()
	lines := wrapWords(sample, max(width-textBoxStyle.GetHorizontalPadding(), 1))
	current := lineForWord(lines, m.session.Index())
	first, last := visibleWindow(lines, current, textLines)
	return textBoxStyle.Width(width).Render(renderLines(m.session, m.input.Value(), lines, first, last))
}

func (m *Model) renderResult() string {
	lines := []string{fmt.Sprintf("Your CPM is %d and your WPM is %d", m.result.CPM, m.result.WPM)}
	if m.newRecord {
		lines = append(lines, recordStyle.Render("CONGRATS!! You set a new Words Per Minute record!"))
	} else {
		lines = append(lines, fmt.Sprintf("Great try! Your fastest WPM is %d", m.highScore))
	}
	lines = append(lines, footerStyle.Render("Press ctrl+r to try again"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	help := footerStyle.Render("space/enter: next word  backspace: fix previous word  ctrl+r: reset  esc: quit")
	if m.errMsg == "" {
		return help
	}
	return help + "\n" + errorStyle.Render(m.errMsg)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
