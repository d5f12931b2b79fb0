package quiz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/vocab"
)

// letterPool returns n records with terms "a".. and meanings "A"..
func letterPool(n int) []vocab.WordRecord {
	pool := make([]vocab.WordRecord, n)
	for i := range n {
		pool[i] = vocab.WordRecord{
			Index:   i + 1,
			Term:    string(rune('a' + i)),
			Meaning: string(rune('A' + i)),
		}
	}
	return pool
}

func TestStart_QuestionCount(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		count    int
		want     int
	}{
		{"fewer than pool", 10, 4, 4},
		{"equal to pool", 5, 5, 5},
		{"clamped to pool", 5, 1000, 5},
		{"single", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Start(letterPool(tt.poolSize), tt.count, TermToMeaning, WithSeed(1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Total())
			assert.Len(t, s.Questions(), tt.want)
			assert.Equal(t, 0, s.Position())
			assert.Equal(t, 0, s.CorrectCount())
			assert.Empty(t, s.Mistakes())
			assert.False(t, s.Finished())
			assert.NotEmpty(t, s.ID())
		})
	}
}

func TestStart_NoRepeatedRecords(t *testing.T) {
	s, err := Start(letterPool(8), 8, TermToMeaning, WithSeed(7))
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, q := range s.Questions() {
		assert.False(t, seen[q.Record.Index], "record %d asked twice", q.Record.Index)
		seen[q.Record.Index] = true
	}
	assert.Len(t, seen, 8)
}

func TestStart_EmptyPool(t *testing.T) {
	s, err := Start(nil, 10, TermToMeaning)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestStart_InvalidCount(t *testing.T) {
	s, err := Start(letterPool(3), 0, TermToMeaning)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestStart_Directions(t *testing.T) {
	pool := letterPool(6)

	tm, err := Start(pool, 6, TermToMeaning, WithSeed(3))
	require.NoError(t, err)
	for _, q := range tm.Questions() {
		assert.Equal(t, q.Record.Term, q.Prompt)
		assert.Equal(t, q.Record.Meaning, q.Answer())
	}

	mt, err := Start(pool, 6, MeaningToTerm, WithSeed(3))
	require.NoError(t, err)
	for _, q := range mt.Questions() {
		assert.Equal(t, q.Record.Meaning, q.Prompt)
		assert.Equal(t, q.Record.Term, q.Answer())
	}
}

func TestStart_CorrectAnswerExactlyOnce(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		s, err := Start(letterPool(12), 12, TermToMeaning, WithSeed(seed))
		require.NoError(t, err)
		for _, q := range s.Questions() {
			n := 0
			for _, o := range q.Options {
				if o == q.Record.Meaning {
					n++
				}
			}
			assert.Equal(t, 1, n, "seed %d, question %q", seed, q.Prompt)
			assert.Len(t, q.Options, DefaultDistractors+1)
			assert.Equal(t, q.Record.Meaning, q.Options[q.CorrectIndex])
		}
	}
}

func TestStart_DistractorsComeFromWholePool(t *testing.T) {
	// One question from a pool of ten: its distractors must come from the
	// nine records that are not asked.
	s, err := Start(letterPool(10), 1, TermToMeaning, WithSeed(11))
	require.NoError(t, err)

	q, err := s.CurrentQuestion()
	require.NoError(t, err)
	require.Len(t, q.Options, 4)

	valid := make(map[string]bool)
	for _, r := range letterPool(10) {
		valid[r.Meaning] = true
	}
	for _, o := range q.Options {
		assert.True(t, valid[o], "option %q not in pool", o)
	}
}

func TestStart_SeedIsDeterministic(t *testing.T) {
	a, err := Start(letterPool(20), 10, MeaningToTerm, WithSeed(42))
	require.NoError(t, err)
	b, err := Start(letterPool(20), 10, MeaningToTerm, WithSeed(42))
	require.NoError(t, err)

	qa, qb := a.Questions(), b.Questions()
	for i := range qa {
		assert.Equal(t, qa[i].Prompt, qb[i].Prompt)
		assert.Equal(t, qa[i].Options, qb[i].Options)
	}
}

func TestStart_WithRandSharedAcrossSessions(t *testing.T) {
	run := func(seed uint64) (first, second []Question) {
		rng := testRand(seed)
		a, err := Start(letterPool(12), 6, TermToMeaning, WithRand(rng))
		require.NoError(t, err)
		b, err := Start(letterPool(12), 6, TermToMeaning, WithRand(rng))
		require.NoError(t, err)
		return a.Questions(), b.Questions()
	}

	a1, b1 := run(11)
	a2, b2 := run(11)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)

	// The second session continues the shared stream instead of restarting it.
	fresh, err := Start(letterPool(12), 6, TermToMeaning, WithRand(testRand(11)))
	require.NoError(t, err)
	assert.Equal(t, a1, fresh.Questions())
	assert.NotEqual(t, a1, b1)
}

func TestStart_WithDistractors(t *testing.T) {
	s, err := Start(letterPool(10), 3, TermToMeaning, WithSeed(5), WithDistractors(1))
	require.NoError(t, err)
	for _, q := range s.Questions() {
		assert.Len(t, q.Options, 2)
	}
}

func TestCurrentQuestion_Idempotent(t *testing.T) {
	s, err := Start(letterPool(8), 5, TermToMeaning, WithSeed(9))
	require.NoError(t, err)

	first, err := s.CurrentQuestion()
	require.NoError(t, err)
	second, err := s.CurrentQuestion()
	require.NoError(t, err)

	assert.Equal(t, first.Prompt, second.Prompt)
	assert.Equal(t, first.Options, second.Options)
	assert.Equal(t, first.CorrectIndex, second.CorrectIndex)
}

func TestCurrentQuestion_ReturnsCopy(t *testing.T) {
	s, err := Start(letterPool(8), 5, TermToMeaning, WithSeed(9))
	require.NoError(t, err)

	q, err := s.CurrentQuestion()
	require.NoError(t, err)
	original := q.Options[0]
	q.Options[0] = "tampered"

	again, err := s.CurrentQuestion()
	require.NoError(t, err)
	assert.Equal(t, original, again.Options[0])
}

func TestSubmitAnswer_AllCorrect(t *testing.T) {
	s, err := Start(letterPool(7), 7, MeaningToTerm, WithSeed(2))
	require.NoError(t, err)

	for i := range 7 {
		q, err := s.CurrentQuestion()
		require.NoError(t, err)
		out, err := s.SubmitAnswer(q.Answer())
		require.NoError(t, err)
		assert.True(t, out.IsCorrect)
		assert.Equal(t, q.Answer(), out.Expected)
		assert.Equal(t, i == 6, out.Finished)
	}

	report, err := s.Report()
	require.NoError(t, err)
	assert.Equal(t, 7, report.Correct)
	assert.Equal(t, 7, report.Total)
	assert.Equal(t, 1.0, report.Accuracy)
	assert.Empty(t, report.Mistakes)
}

func TestSubmitAnswer_CountsStayConsistent(t *testing.T) {
	s, err := Start(letterPool(10), 10, TermToMeaning, WithSeed(13))
	require.NoError(t, err)

	for i := 0; !s.Finished(); i++ {
		q, err := s.CurrentQuestion()
		require.NoError(t, err)
		answer := q.Answer()
		if i%3 == 0 {
			answer = "wrong"
		}
		_, err = s.SubmitAnswer(answer)
		require.NoError(t, err)
		assert.Equal(t, s.Position(), s.CorrectCount()+len(s.Mistakes()))
	}

	report, err := s.Report()
	require.NoError(t, err)
	assert.Equal(t, report.Total, report.Correct+len(report.Mistakes))
}

func TestSubmitAnswer_AfterFinish(t *testing.T) {
	s, err := Start(letterPool(1), 1, TermToMeaning, WithSeed(1))
	require.NoError(t, err)

	_, err = s.SubmitAnswer("A")
	require.NoError(t, err)
	require.True(t, s.Finished())

	_, err = s.SubmitAnswer("A")
	assert.ErrorIs(t, err, ErrSessionFinished)
	_, err = s.CurrentQuestion()
	assert.ErrorIs(t, err, ErrSessionFinished)

	// A rejected call leaves the score untouched.
	report, err := s.Report()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Correct)
	assert.Equal(t, 1, report.Total)
}

func TestReport_BeforeFinish(t *testing.T) {
	s, err := Start(letterPool(3), 3, TermToMeaning, WithSeed(1))
	require.NoError(t, err)

	_, err = s.Report()
	assert.True(t, errors.Is(err, ErrSessionNotFinished))
}

func TestScenario_SecondAnswerWrong(t *testing.T) {
	s, err := Start(letterPool(4), 4, TermToMeaning, WithSeed(21))
	require.NoError(t, err)
	require.Equal(t, 4, s.Total())

	// Answer by prompt since presentation order is random.
	answers := map[string]string{"a": "A", "b": "X", "c": "C", "d": "D"}
	for !s.Finished() {
		q, err := s.CurrentQuestion()
		require.NoError(t, err)
		_, err = s.SubmitAnswer(answers[q.Prompt])
		require.NoError(t, err)
	}

	report, err := s.Report()
	require.NoError(t, err)
	assert.Equal(t, Report{
		Correct:  3,
		Total:    4,
		Accuracy: 0.75,
		Mistakes: []Mistake{{Index: 2, Prompt: "b", Expected: "B"}},
	}, report)
}

func TestSubmitAnswer_DuplicateMeaningsScoredByValue(t *testing.T) {
	// Two records share a meaning. Picking that label is correct for
	// either question because scoring compares strings, not records.
	pool := []vocab.WordRecord{
		{Index: 1, Term: "big", Meaning: "large"},
		{Index: 2, Term: "large", Meaning: "large"},
		{Index: 3, Term: "small", Meaning: "tiny"},
	}
	s, err := Start(pool, 3, TermToMeaning, WithSeed(4))
	require.NoError(t, err)

	for !s.Finished() {
		q, err := s.CurrentQuestion()
		require.NoError(t, err)

		labels := make(map[string]int)
		for _, o := range q.Options {
			labels[o]++
		}
		for label, n := range labels {
			assert.Equal(t, 1, n, "option %q shown twice", label)
		}

		out, err := s.SubmitAnswer(q.Record.Meaning)
		require.NoError(t, err)
		assert.True(t, out.IsCorrect, fmt.Sprintf("question %q", q.Prompt))
	}
}
