// Package quiz is the screen that runs a quiz session question by question.
package quiz

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	engine "github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/summary"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/vocab"
)

// QuizScreen presents the questions of one session.
type QuizScreen struct {
	env     screen.Env
	session *engine.Session
	pool    []vocab.WordRecord
	log     *zap.Logger

	question engine.Question
	choice   components.MultiChoice

	// Set between an answer and the keypress that moves on. No further
	// answer is accepted while it is set.
	outcome *engine.AnswerOutcome

	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a screen for an already started session. pool is the record
// pool the session was built from.
func New(env screen.Env, session *engine.Session, pool []vocab.WordRecord) *QuizScreen {
	s := &QuizScreen{
		env:     env,
		session: session,
		pool:    pool,
		log:     env.Logger().With(zap.String("session", session.ID())),
	}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	s.log.Info("quiz started",
		zap.Int("questions", s.session.Total()),
		zap.Int("pool", len(s.pool)),
		zap.String("direction", s.session.Direction().String()))
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	return s.session.Direction().Label()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.outcome != nil:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-9", Description: "Pick"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.errMsg != "" {
		return s, router.Pop()
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.log.Info("quiz abandoned",
				zap.Int("answered", s.session.Position()),
				zap.Int("correct", s.session.CorrectCount()))
			return s, router.Pop()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.outcome != nil {
		return s.advance()
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	var submitted bool
	s.choice, submitted = s.choice.Update(msg)
	if submitted {
		s.submit()
	}
	return s, nil
}

func (s *QuizScreen) submit() {
	selected, ok := s.choice.Chosen()
	if !ok {
		return
	}
	out, err := s.session.SubmitAnswer(selected)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.outcome = &out
	s.choice.Reveal(s.question.CorrectIndex)
	s.log.Debug("answer",
		zap.Int("word", s.question.Record.Index),
		zap.Bool("correct", out.IsCorrect))
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	finished := s.outcome.Finished
	s.outcome = nil

	if !finished {
		s.loadQuestion()
		return s, nil
	}

	report, err := s.session.Report()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.log.Info("quiz finished",
		zap.Int("correct", report.Correct),
		zap.Int("total", report.Total),
		zap.Float64("accuracy", report.Accuracy))
	return s, router.Replace(summary.New(s.env, report, s.session.Direction(), s.pool))
}

func (s *QuizScreen) loadQuestion() {
	q, err := s.session.CurrentQuestion()
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.question = q
	s.choice = components.NewMultiChoice(q.Options)
}
