package wordlist

import "testing"

func TestLengthFilter(t *testing.T) {
	filter := LengthFilter(3, 6)
	for _, word := range []string{"cat", "house", "garden"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass", word)
		}
	}
	for _, word := range []string{"", "an", "gardens"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestLengthFilterCountsRunes(t *testing.T) {
	if !LengthFilter(3, 6)("café") {
		t.Fatalf("expected rune count to be used")
	}
}

func TestNormalizeLowercases(t *testing.T) {
	word, ok := Normalize("  Hello ", LengthFilter(3, 6))
	if !ok || word != "hello" {
		t.Fatalf("expected hello, got %q %v", word, ok)
	}
	if _, ok := Normalize("Hi", LengthFilter(3, 6)); ok {
		t.Fatalf("expected short word to be rejected")
	}
}
