package quiz

import (
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/lexiz/internal/vocab"
)

// Question is one materialized quiz item. Its options are fixed when the
// session starts and never reshuffled.
type Question struct {
	// Record is the word being asked about.
	Record vocab.WordRecord

	// Prompt is the value shown to the learner.
	Prompt string

	// Options are the choices in display order.
	Options []string

	// CorrectIndex is the position of the expected answer in Options.
	CorrectIndex int
}

// Answer returns the expected option.
func (q Question) Answer() string {
	return q.Options[q.CorrectIndex]
}

// Mistake records a wrongly answered question.
type Mistake struct {
	Index    int    // word index of the record
	Prompt   string // value that was shown
	Expected string // value that should have been picked
}

// AnswerOutcome is the result of SubmitAnswer.
type AnswerOutcome struct {
	IsCorrect bool
	Finished  bool
	Expected  string
}

// Report summarises a finished session.
type Report struct {
	Correct  int
	Total    int
	Accuracy float64
	Mistakes []Mistake
}

// Session is a single quiz run. It is owned by one caller and is not safe
// for concurrent use.
type Session struct {
	id        string
	direction Direction
	questions []Question
	current   int
	correct   int
	mistakes  []Mistake
}

// Option configures Start.
type Option func(*startConfig)

type startConfig struct {
	rng         *rand.Rand
	distractors int
}

// WithRand makes Start draw all randomness from r.
func WithRand(r *rand.Rand) Option {
	return func(c *startConfig) { c.rng = r }
}

// WithSeed makes Start deterministic for a given seed.
func WithSeed(seed uint64) Option {
	return func(c *startConfig) { c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithDistractors sets the number of wrong options per question.
func WithDistractors(k int) Option {
	return func(c *startConfig) { c.distractors = k }
}

// Start samples min(count, len(pool)) records from pool without
// replacement and materializes a question for each. Distractors are drawn
// from the whole pool, not only the sampled records.
func Start(pool []vocab.WordRecord, count int, direction Direction, opts ...Option) (*Session, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}

	cfg := startConfig{distractors: DefaultDistractors}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = newRand()
	}

	n := min(count, len(pool))
	picks := cfg.rng.Perm(len(pool))[:n]

	promptField := direction.PromptField()
	answerField := direction.AnswerField()

	questions := make([]Question, 0, n)
	for _, i := range picks {
		rec := pool[i]
		options := BuildOptions(pool, rec, answerField, cfg.distractors, cfg.rng)
		questions = append(questions, Question{
			Record:       rec,
			Prompt:       promptField.Value(rec),
			Options:      options,
			CorrectIndex: indexOf(options, answerField.Value(rec)),
		})
	}

	return &Session{
		id:        uuid.NewString(),
		direction: direction,
		questions: questions,
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Direction returns the session's quiz direction.
func (s *Session) Direction() Direction { return s.direction }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Position returns the zero-based index of the current question, which is
// also the number of questions answered so far.
func (s *Session) Position() int { return s.current }

// CorrectCount returns the number of correct answers so far.
func (s *Session) CorrectCount() int { return s.correct }

// Finished reports whether every question has been answered.
func (s *Session) Finished() bool { return s.current >= len(s.questions) }

// Mistakes returns a copy of the mistakes recorded so far.
func (s *Session) Mistakes() []Mistake { return slices.Clone(s.mistakes) }

// Questions returns a copy of all questions in presentation order.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// CurrentQuestion returns the question awaiting an answer. Repeated calls
// without an intervening SubmitAnswer return the same prompt and options.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.Finished() {
		return Question{}, ErrSessionFinished
	}
	return cloneQuestion(s.questions[s.current]), nil
}

// SubmitAnswer scores selected against the current question's expected
// value by exact string equality and advances to the next question.
func (s *Session) SubmitAnswer(selected string) (AnswerOutcome, error) {
	if s.Finished() {
		return AnswerOutcome{}, ErrSessionFinished
	}

	q := s.questions[s.current]
	expected := q.Answer()
	correct := selected == expected
	if correct {
		s.correct++
	} else {
		s.mistakes = append(s.mistakes, Mistake{
			Index:    q.Record.Index,
			Prompt:   q.Prompt,
			Expected: expected,
		})
	}
	s.current++

	return AnswerOutcome{
		IsCorrect: correct,
		Finished:  s.Finished(),
		Expected:  expected,
	}, nil
}

// Report returns the final score. It fails until the session is finished.
func (s *Session) Report() (Report, error) {
	if !s.Finished() {
		return Report{}, ErrSessionNotFinished
	}
	total := len(s.questions)
	return Report{
		Correct:  s.correct,
		Total:    total,
		Accuracy: float64(s.correct) / float64(total),
		Mistakes: s.Mistakes(),
	}, nil
}

func cloneQuestion(q Question) Question {
	q.Options = slices.Clone(q.Options)
	return q
}
