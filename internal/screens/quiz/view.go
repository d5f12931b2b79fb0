package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	engine "github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	var b strings.Builder

	// Progress counts the current question as in progress until answered.
	done := s.session.Position()
	bar := components.NewProgressBar("Progress", done, s.session.Total(), min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Dim, width, fmt.Sprintf("Question %d of %d    Correct %d",
		s.questionNumber(), s.session.Total(), s.session.CorrectCount())))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	b.WriteString(theme.Centered(theme.Hint, width, promptHint(s.session.Direction())))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, s.question.Prompt))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	if s.outcome != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

// questionNumber is the 1-based number of the question on screen.
func (s *QuizScreen) questionNumber() int {
	if s.outcome != nil {
		return s.session.Position()
	}
	return s.session.Position() + 1
}

func promptHint(d engine.Direction) string {
	if d == engine.MeaningToTerm {
		return "Which word has this meaning?"
	}
	return "What does this word mean?"
}

func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder

	if s.outcome.IsCorrect {
		b.WriteString(theme.Centered(theme.Correct, width, "Correct!"))
	} else {
		b.WriteString(theme.Centered(theme.Incorrect, width, "Not quite"))
		b.WriteString("\n")
		b.WriteString(theme.Centered(theme.Dim, width, "Correct answer: "+s.outcome.Expected))
	}
	b.WriteString("\n")

	r := s.question.Record
	if r.Example != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Align(lipgloss.Center).Foreground(theme.Text)
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp.Render(r.Example)))
		if r.ExampleTranslation != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp.Foreground(theme.TextDim).Render(r.ExampleTranslation)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	next := "Press any key for the next question..."
	if s.outcome.Finished {
		next = "Press any key to see your results..."
	}
	b.WriteString(theme.Centered(theme.Dim, width, next))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "End quiz early?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Dim, width, "Answers so far will not be scored."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", errMsg))
}
