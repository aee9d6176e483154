// Package score computes per-letter marks and session scores.
package score

import "time"

// Mark tags a letter or a submitted word.
type Mark int

const (
	// Pending is a letter the user has not typed yet.
	Pending Mark = iota
	// Correct matches the sample at the same position.
	Correct
	// Incorrect differs from the sample at the same position.
	Incorrect
)

func (m Mark) String() string {
	switch m {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// Result holds the final score of a session.
type Result struct {
	CPM          int
	WPM          int
	CorrectWords int
	Submitted    int
}

// PerMinute returns r with CPM and WPM scaled from counts over d to
// per-minute rates. A one-minute session is returned unchanged.
func (r Result) PerMinute(d time.Duration) Result {
	r.CPM = perMinute(r.CPM, d)
	r.WPM = perMinute(r.WPM, d)
	return r
}

func perMinute(count int, d time.Duration) int {
	if d <= 0 || d == time.Minute {
		return count
	}
	return int((int64(count)*int64(time.Minute) + int64(d)/2) / int64(d))
}

// Compute scores entered words against the sample text.
func Compute(entered, sample []string) Result {
	return Result{
		CPM:          CPM(entered, sample),
		WPM:          WPM(entered, sample),
		CorrectWords: CorrectWords(entered, sample),
		Submitted:    len(entered),
	}
}

// CPM counts letters matching by position across positional word pairs.
// Extra letters on either side are unmatched; there is no alignment.
func CPM(entered, sample []string) int {
	total := 0
	n := min(len(entered), len(sample))
	for i := 0; i < n; i++ {
		total += matchingLetters(entered[i], sample[i])
	}
	return total
}

// comparedLetters is the number of letter positions CPM looks at.
func comparedLetters(entered, sample []string) int {
	total := 0
	n := min(len(entered), len(sample))
	for i := 0; i < n; i++ {
		total += min(len([]rune(entered[i])), len([]rune(sample[i])))
	}
	return total
}

// WPM counts entered words found anywhere in the sample.
//
// Membership, not position: a word typed in the wrong slot still counts.
// WPM >= CorrectWords always holds.
func WPM(entered, sample []string) int {
	if len(entered) == 0 || len(sample) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(sample))
	for _, w := range sample {
		set[w] = struct{}{}
	}
	count := 0
	for _, w := range entered {
		if _, ok := set[w]; ok {
			count++
		}
	}
	return count
}

// CorrectWords counts entered words equal to the sample word at the same position.
func CorrectWords(entered, sample []string) int {
	count := 0
	n := min(len(entered), len(sample))
	for i := 0; i < n; i++ {
		if entered[i] == sample[i] {
			count++
		}
	}
	return count
}

// WordMark resolves a submitted word by exact equality.
func WordMark(entered, expected string) Mark {
	if entered == expected {
		return Correct
	}
	return Incorrect
}

// LetterMarks marks each letter of target against the input typed so far.
func LetterMarks(target, input string) []Mark {
	targetRunes := []rune(target)
	inputRunes := []rune(input)
	marks := make([]Mark, len(targetRunes))
	for i := range targetRunes {
		switch {
		case i >= len(inputRunes):
			marks[i] = Pending
		case inputRunes[i] == targetRunes[i]:
			marks[i] = Correct
		default:
			marks[i] = Incorrect
		}
	}
	return marks
}

// BeatsHighScore reports whether wpm should replace the stored high score.
// Ties keep the existing record.
func BeatsHighScore(wpm, best int) bool {
	return wpm > best
}

func matchingLetters(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n := min(len(ar), len(br))
	count := 0
	for i := 0; i < n; i++ {
		if ar[i] == br[i] {
			count++
		}
	}
	return count
}
