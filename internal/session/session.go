// Package session tracks a single timed typing session.
package session

import (
	"strings"
	"time"

	"github.com/verte-zerg/typesprint/internal/score"
)

// DefaultDuration is the time budget of a session.
const DefaultDuration = 60 * time.Second

// State is the timer state of a session.
type State int

const (
	// Idle waits for the first keystroke.
	Idle State = iota
	// Running counts down and accepts input.
	Running
	// Expired is terminal; input is locked.
	Expired
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return "idle"
	}
}

// Session holds the mutable state of one typing test.
type Session struct {
	sample   []string
	entered  []string
	marks    []score.Mark
	duration time.Duration

	state     State
	startedAt time.Time
	endedAt   time.Time
	remaining time.Duration
}

// New returns an idle session over sample.
func New(sample []string, duration time.Duration) *Session {
	if duration <= 0 {
		duration = DefaultDuration
	}
	s := &Session{duration: duration}
	s.Reset(sample)
	return s
}

// Reset discards all progress and starts over idle with a new sample.
func (s *Session) Reset(sample []string) {
	s.sample = append([]string(nil), sample...)
	s.entered = nil
	s.marks = nil
	s.state = Idle
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.remaining = s.duration
}

// Start moves an idle session to running. It reports whether the
// transition happened; later keystrokes are no-ops.
func (s *Session) Start(now time.Time) bool {
	if s.state != Idle {
		return false
	}
	s.state = Running
	s.startedAt = now
	s.remaining = s.duration
	return true
}

// Tick recomputes the remaining time. It returns true exactly once, on
// the tick that expires the session.
func (s *Session) Tick(now time.Time) bool {
	if s.state != Running {
		return false
	}
	elapsed := now.Sub(s.startedAt).Truncate(time.Second)
	remaining := s.duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	s.remaining = remaining
	if remaining > 0 {
		return false
	}
	s.state = Expired
	s.endedAt = now
	return true
}

// Submit records input as the entry for the current word and advances.
// Input is lowercased and trimmed; blank input and input past the end of
// the sample are ignored.
func (s *Session) Submit(input string) bool {
	if s.state == Expired {
		return false
	}
	word := strings.ToLower(strings.TrimSpace(input))
	if word == "" || len(s.entered) >= len(s.sample) {
		return false
	}
	expected := s.sample[len(s.entered)]
	s.entered = append(s.entered, word)
	s.marks = append(s.marks, score.WordMark(word, expected))
	return true
}

// Retreat pops the last submission so it can be edited again.
func (s *Session) Retreat() (string, bool) {
	if s.state == Expired || len(s.entered) == 0 {
		return "", false
	}
	last := len(s.entered) - 1
	word := s.entered[last]
	s.entered = s.entered[:last]
	s.marks = s.marks[:last]
	return word, true
}

// Result scores the words entered so far as per-minute rates over the
// session budget.
func (s *Session) Result() score.Result {
	return score.Compute(s.entered, s.sample).PerMinute(s.duration)
}

// State returns the timer state.
func (s *Session) State() State { return s.state }

// Remaining returns the time left as of the last tick.
func (s *Session) Remaining() time.Duration { return s.remaining }

// Duration returns the session time budget.
func (s *Session) Duration() time.Duration { return s.duration }

// StartedAt returns when the first keystroke arrived.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns when the session expired.
func (s *Session) EndedAt() time.Time { return s.endedAt }

// Index returns the position of the word being typed.
func (s *Session) Index() int { return len(s.entered) }

// Sample returns the sample words.
func (s *Session) Sample() []string { return s.sample }

// Entered returns the submitted words.
func (s *Session) Entered() []string { return s.entered }

// Marks returns the per-word marks, parallel to Entered.
func (s *Session) Marks() []score.Mark { return s.marks }

// CurrentWord returns the sample word being typed, or "" past the end.
func (s *Session) CurrentWord() string {
	if len(s.entered) >= len(s.sample) {
		return ""
	}
	return s.sample[len(s.entered)]
}
