// Package main provides the CLI entrypoint for typesprint.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typesprint/internal/config"
	"github.com/verte-zerg/typesprint/internal/generator"
	"github.com/verte-zerg/typesprint/internal/highscore"
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/stats"
	"github.com/verte-zerg/typesprint/internal/statsui"
	"github.com/verte-zerg/typesprint/internal/store"
	"github.com/verte-zerg/typesprint/internal/tui"
	"github.com/verte-zerg/typesprint/internal/wordlist"
)

const (
	defaultSampleSize = 100
	defaultMinLen     = 3
	defaultMaxLen     = 6
	defaultTrendWin   = 5
)

var (
	testWordsFile     string
	testHighScoreFile string
	testWords         int
	testDuration      time.Duration
	testMinLen        int
	testMaxLen        int
	testNoHistory     bool

	statsSince string
	statsLast  int
	statsPlain bool

	highscoreReset bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typesprint",
		Short:         "Timed typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().StringVar(&testWordsFile, "words-file", "", "word corpus file (default: XDG config dir)")
	rootCmd.Flags().StringVar(&testHighScoreFile, "highscore-file", "", "high score file (default: XDG data dir)")
	rootCmd.Flags().IntVar(&testWords, "words", defaultSampleSize, "number of sample words")
	rootCmd.Flags().DurationVar(&testDuration, "duration", session.DefaultDuration, "session length")
	rootCmd.Flags().IntVar(&testMinLen, "min-len", defaultMinLen, "shortest corpus word to use")
	rootCmd.Flags().IntVar(&testMaxLen, "max-len", defaultMaxLen, "longest corpus word to use")
	rootCmd.Flags().BoolVar(&testNoHistory, "no-history", false, "do not record sessions in the history database")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHighscoreCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadTestConfig(cmd)
	if err != nil {
		return err
	}

	corpus, err := wordlist.LoadWords(cfg.WordListPath, wordlist.LengthFilter(cfg.MinLen, cfg.MaxLen))
	if err != nil {
		return wordListLoadError(cfg.WordListPath, err)
	}

	best, err := highscore.Load(cfg.HighScorePath)
	if err != nil {
		return err
	}

	var st *store.Store
	if cfg.History {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open history db, sessions will not be recorded: %v\n", err)
			st = nil
		}
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	m, err := tui.NewModel(cfg, st, generator.New(), corpus, best)
	if err != nil {
		if errors.Is(err, generator.ErrCorpusTooSmall) {
			return fmt.Errorf("%w (lower --words or extend %s)", err, cfg.WordListPath)
		}
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadTestConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	history := !testNoHistory
	applyStringConfig(cmd, "words-file", &testWordsFile, fileCfg.Test.WordsFile)
	applyStringConfig(cmd, "highscore-file", &testHighScoreFile, fileCfg.Test.HighScoreFile)
	applyIntConfig(cmd, "words", &testWords, fileCfg.Test.Words)
	applyDurationConfig(cmd, "duration", &testDuration, fileCfg.Test.Duration)
	applyIntConfig(cmd, "min-len", &testMinLen, fileCfg.Test.MinLen)
	applyIntConfig(cmd, "max-len", &testMaxLen, fileCfg.Test.MaxLen)
	if fileCfg.Test.History != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.Test.History
	}

	cfg := model.Config{
		WordListPath:  testWordsFile,
		HighScorePath: testHighScoreFile,
		SampleSize:    testWords,
		Duration:      testDuration,
		MinLen:        testMinLen,
		MaxLen:        testMaxLen,
		History:       history,
	}
	if cfg.WordListPath == "" {
		cfg.WordListPath = config.DefaultWordListPath()
	}
	if cfg.HighScorePath == "" {
		cfg.HighScorePath = config.DefaultHighScorePath()
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	cfg := model.StatsConfig{Since: sinceTime, Last: statsLast}

	best, err := highscore.Load(resolveHighScorePath())
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printStats(cmd, st, cfg, best)
	}
	program := tea.NewProgram(statsui.NewModel(st, cfg, best), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig, best int) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report, best, defaultTrendWin, stats.TerminalWidth(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistory(out, report.Sessions); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHighscoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highscore",
		Short: "Print or reset the high score",
		Args:  cobra.NoArgs,
		RunE:  runHighscoreCmd,
	}
	cmd.Flags().BoolVar(&highscoreReset, "reset", false, "reset the high score to 0")
	return cmd
}

func runHighscoreCmd(cmd *cobra.Command, _ []string) error {
	path := resolveHighScorePath()
	if highscoreReset {
		if err := highscore.Save(path, 0); err != nil {
			return err
		}
		logErrf("Reset high score in %s\n", path)
		return nil
	}
	best, err := highscore.Load(path)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), best); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveHighScorePath honours the config file for subcommands that do
// not take the test flags.
func resolveHighScorePath() string {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		logErrf("failed to load config: %v\n", err)
		return config.DefaultHighScorePath()
	}
	if fileCfg.Test.HighScoreFile != nil && *fileCfg.Test.HighScoreFile != "" {
		return *fileCfg.Test.HighScoreFile
	}
	return config.DefaultHighScorePath()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typesprint configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# words-file = %q         # Word corpus, whitespace separated
# highscore-file = %q     # High score file
# words = %d              # Number of sample words
# duration = %q           # Session length
# min-len = %d            # Shortest corpus word to use
# max-len = %d            # Longest corpus word to use
# history = true          # Record sessions in the history database
`,
		config.DefaultWordListPath(),
		config.DefaultHighScorePath(),
		defaultSampleSize,
		session.DefaultDuration.String(),
		defaultMinLen,
		defaultMaxLen,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.SampleSize <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.Duration < time.Second {
		return fmt.Errorf("--duration must be at least 1s")
	}
	if cfg.MinLen < 1 {
		return fmt.Errorf("--min-len must be >= 1")
	}
	if cfg.MaxLen < cfg.MinLen {
		return fmt.Errorf("--max-len must be >= --min-len")
	}
	return nil
}

func wordListLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		"The word list is a plain text file of whitespace-separated words.",
		"Pass one with: typesprint --words-file <path>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
