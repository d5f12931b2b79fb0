package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/lexiz/internal/vocab"
)

// DefaultDistractors is the number of wrong options shown per question.
const DefaultDistractors = 3

// BuildOptions returns the option set for one question: up to k distinct
// distractor values of field drawn from pool, plus the correct record's
// value, in random order.
//
// Candidate values are de-duplicated by exact string before sampling and
// values equal to the correct answer are never used as distractors, so
// the correct answer appears exactly once and no two options look alike.
// Pools with fewer than k distinct wrong values yield a shorter slice.
// A nil rng uses a randomly seeded source.
func BuildOptions(pool []vocab.WordRecord, correct vocab.WordRecord, field Field, k int, rng *rand.Rand) []string {
	if rng == nil {
		rng = newRand()
	}
	answer := field.Value(correct)

	seen := map[string]bool{answer: true}
	candidates := make([]string, 0, len(pool))
	for _, r := range pool {
		v := field.Value(r)
		if seen[v] {
			continue
		}
		seen[v] = true
		candidates = append(candidates, v)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	n := max(0, min(k, len(candidates)))
	options := make([]string, 0, n+1)
	options = append(options, candidates[:n]...)
	options = append(options, answer)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}
