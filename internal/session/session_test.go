package session

import (
	"testing"
	"time"

	"github.com/verte-zerg/typesprint/internal/score"
)

func TestTimerTransitions(t *testing.T) {
	s := New([]string{"cat", "dog"}, time.Minute)
	if s.State() != Idle {
		t.Fatalf("expected idle, got %s", s.State())
	}
	if s.Tick(time.Unix(100, 0)) {
		t.Fatalf("idle session must not expire")
	}

	start := time.Unix(1000, 0)
	if !s.Start(start) {
		t.Fatalf("expected first keystroke to start the timer")
	}
	if s.Start(start.Add(time.Second)) {
		t.Fatalf("expected second start to be a no-op")
	}
	if !s.StartedAt().Equal(start) {
		t.Fatalf("start time changed: %v", s.StartedAt())
	}

	if s.Tick(start.Add(1500 * time.Millisecond)) {
		t.Fatalf("unexpected expiry")
	}
	if s.Remaining() != 59*time.Second {
		t.Fatalf("expected 59s remaining, got %v", s.Remaining())
	}

	if !s.Tick(start.Add(60 * time.Second)) {
		t.Fatalf("expected expiry at 60s")
	}
	if s.State() != Expired || s.Remaining() != 0 {
		t.Fatalf("expected expired with 0 remaining, got %s %v", s.State(), s.Remaining())
	}
	if s.Tick(start.Add(61 * time.Second)) {
		t.Fatalf("expiry must be reported once")
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	s := New([]string{"cat"}, time.Minute)
	start := time.Unix(0, 0)
	s.Start(start)
	if !s.Tick(start.Add(5 * time.Minute)) {
		t.Fatalf("expected late tick to expire")
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected remaining clamped to 0, got %v", s.Remaining())
	}
}

func TestSubmitAndScore(t *testing.T) {
	s := New([]string{"cat", "dog"}, time.Minute)
	s.Start(time.Unix(0, 0))
	s.Submit("cat")
	s.Submit(" Dog ")

	if got := s.Entered(); len(got) != 2 || got[1] != "dog" {
		t.Fatalf("expected normalized entries, got %v", got)
	}
	res := s.Result()
	if res.CPM != 6 || res.WPM != 2 {
		t.Fatalf("expected CPM 6 WPM 2, got %+v", res)
	}
}

func TestSubmitMarksWords(t *testing.T) {
	s := New([]string{"dog", "cat"}, time.Minute)
	s.Submit("dig")
	s.Submit("cat")
	marks := s.Marks()
	if len(marks) != len(s.Entered()) {
		t.Fatalf("marks and entries out of step: %d vs %d", len(marks), len(s.Entered()))
	}
	if marks[0] != score.Incorrect || marks[1] != score.Correct {
		t.Fatalf("unexpected marks: %v", marks)
	}
	if got := s.Result().CPM; got != 5 {
		t.Fatalf("expected CPM 5, got %d", got)
	}
}

func TestSubmitIgnoresBlankAndOverflow(t *testing.T) {
	s := New([]string{"one"}, time.Minute)
	if s.Submit("   ") {
		t.Fatalf("blank submission must be ignored")
	}
	if s.Index() != 0 {
		t.Fatalf("index moved on blank submission")
	}
	s.Submit("one")
	if s.Submit("two") {
		t.Fatalf("submission past the sample must be ignored")
	}
	if s.CurrentWord() != "" {
		t.Fatalf("expected no current word past the end")
	}
}

func TestRetreatRestoresLastWord(t *testing.T) {
	s := New([]string{"cat", "dog"}, time.Minute)
	if _, ok := s.Retreat(); ok {
		t.Fatalf("retreat at index 0 must be a no-op")
	}
	s.Submit("cat")
	s.Submit("dgo")
	word, ok := s.Retreat()
	if !ok || word != "dgo" {
		t.Fatalf("expected to restore dgo, got %q %v", word, ok)
	}
	if s.Index() != 1 || len(s.Marks()) != 1 {
		t.Fatalf("expected one entry left, got index %d marks %d", s.Index(), len(s.Marks()))
	}
	if s.CurrentWord() != "dog" {
		t.Fatalf("expected current word dog, got %q", s.CurrentWord())
	}
}

func TestExpiredLocksInput(t *testing.T) {
	s := New([]string{"cat", "dog"}, time.Second)
	start := time.Unix(0, 0)
	s.Start(start)
	s.Submit("cat")
	s.Tick(start.Add(time.Second))
	if s.Submit("dog") {
		t.Fatalf("submit after expiry must be ignored")
	}
	if _, ok := s.Retreat(); ok {
		t.Fatalf("retreat after expiry must be ignored")
	}
	if s.Result().CorrectWords != 1 {
		t.Fatalf("expected frozen result")
	}
}

func TestResetClearsProgress(t *testing.T) {
	s := New([]string{"cat", "dog"}, time.Minute)
	start := time.Unix(0, 0)
	s.Start(start)
	s.Submit("cat")
	s.Tick(start.Add(10 * time.Second))

	s.Reset([]string{"sun", "sky", "sea"})
	if s.State() != Idle {
		t.Fatalf("expected idle after reset, got %s", s.State())
	}
	if len(s.Entered()) != 0 || len(s.Marks()) != 0 {
		t.Fatalf("expected cleared entries and marks")
	}
	if s.Remaining() != time.Minute {
		t.Fatalf("expected full budget, got %v", s.Remaining())
	}
	if len(s.Sample()) != 3 || s.CurrentWord() != "sun" {
		t.Fatalf("expected new sample, got %v", s.Sample())
	}
	if !s.StartedAt().IsZero() {
		t.Fatalf("expected start time cleared")
	}
}

func TestResultIsPerMinute(t *testing.T) {
	s := New([]string{"cat", "dog", "sun", "sky"}, 15*time.Second)
	start := time.Unix(0, 0)
	s.Start(start)
	for _, w := range []string{"cat", "dog", "sun", "sky"} {
		s.Submit(w)
	}
	s.Tick(start.Add(15 * time.Second))
	res := s.Result()
	if res.WPM != 16 || res.CPM != 48 {
		t.Fatalf("expected CPM 48 WPM 16 over 15s, got %+v", res)
	}
	if res.CorrectWords != 4 {
		t.Fatalf("expected raw correct words 4, got %d", res.CorrectWords)
	}
}
