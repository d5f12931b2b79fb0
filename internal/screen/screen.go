package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/tips"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/vocab"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Env carries the dependencies shared by every screen.
type Env struct {
	Source   vocab.Source
	Tips     *tips.Service // nil disables memory tips
	Defaults quiz.Settings
	Log      *zap.Logger

	// QuizOptions are passed to every quiz.Start call, e.g. a fixed seed.
	QuizOptions []quiz.Option
}

// Logger returns Log or a no-op logger.
func (e Env) Logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// StatusProvider is an optional interface for screens that show a short
// status on the right of the header.
type StatusProvider interface {
	Status() string
}
