package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/typesprint/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "typesprint.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertTestSession(t *testing.T, st *Store, id string, endedAt time.Time, wpm int) {
	t.Helper()
	stats := model.SessionStats{
		ID:           id,
		StartedAt:    endedAt.Add(-time.Minute),
		EndedAt:      endedAt,
		DurationMs:   60000,
		SampleSize:   100,
		WordListPath: "words.txt",
		Submitted:    wpm + 1,
		CorrectWords: wpm,
		CPM:          wpm * 4,
		WPM:          wpm,
	}
	words := []model.WordEntry{
		{Position: 0, Expected: "cat", Entered: "cat", Correct: true},
		{Position: 1, Expected: "dog", Entered: "dig", Correct: false},
	}
	if err := st.InsertSession(context.Background(), stats, words); err != nil {
		t.Fatalf("insert session: %v", err)
	}
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(1_700_000_000, 0).UTC()
	insertTestSession(t, st, "b", base.Add(time.Hour), 40)
	insertTestSession(t, st, "a", base, 30)

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "a" || sessions[1].ID != "b" {
		t.Fatalf("expected oldest first, got %s, %s", sessions[0].ID, sessions[1].ID)
	}
	if sessions[1].WPM != 40 || sessions[1].CPM != 160 {
		t.Fatalf("unexpected scores: %+v", sessions[1])
	}
}

func TestListSessionsFilters(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(1_700_000_000, 0).UTC()
	for i, id := range []string{"s1", "s2", "s3"} {
		insertTestSession(t, st, id, base.Add(time.Duration(i)*24*time.Hour), 10+i)
	}
	ctx := context.Background()

	last, err := st.ListSessions(ctx, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(last) != 2 || last[0].ID != "s2" {
		t.Fatalf("unexpected last sessions: %+v", last)
	}

	since := base.Add(36 * time.Hour)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != "s3" {
		t.Fatalf("unexpected since sessions: %+v", recent)
	}
}

func TestListSessionWords(t *testing.T) {
	st := openTestStore(t)
	insertTestSession(t, st, "w", time.Unix(1_700_000_000, 0).UTC(), 1)

	words, err := st.ListSessionWords(context.Background(), "w")
	if err != nil {
		t.Fatalf("list words: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if !words[0].Correct || words[1].Correct || words[1].Entered != "dig" {
		t.Fatalf("unexpected words: %+v", words)
	}
}

func TestBestWPM(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	best, err := st.BestWPM(ctx)
	if err != nil || best != 0 {
		t.Fatalf("expected 0 on empty history, got %d (%v)", best, err)
	}
	insertTestSession(t, st, "x", time.Unix(1_700_000_000, 0).UTC(), 25)
	insertTestSession(t, st, "y", time.Unix(1_700_000_100, 0).UTC(), 55)
	best, err = st.BestWPM(ctx)
	if err != nil || best != 55 {
		t.Fatalf("expected 55, got %d (%v)", best, err)
	}
}

func TestInsertSessionRequiresID(t *testing.T) {
	st := openTestStore(t)
	if err := st.InsertSession(context.Background(), model.SessionStats{}, nil); err == nil {
		t.Fatalf("expected error for empty id")
	}
}
