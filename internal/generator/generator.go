// Package generator draws sample text from a word corpus.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrCorpusTooSmall is returned when the corpus cannot supply count words.
var ErrCorpusTooSmall = errors.New("corpus has fewer words than requested")

// Generator produces randomized sample text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Sample picks count corpus entries without replacement. Duplicate corpus
// entries are distinct positions, so a word listed twice may be drawn twice.
func (g *Generator) Sample(words []string, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("sample size must be > 0, got %d", count)
	}
	if count > len(words) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrCorpusTooSmall, count, len(words))
	}
	// Partial Fisher-Yates over a copy of the indices.
	idx := make([]int, len(words))
	for i := range idx {
		idx[i] = i
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		j := i + g.rnd.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		result = append(result, words[idx[i]])
	}
	return result, nil
}
