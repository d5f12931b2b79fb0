package setup

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
	"github.com/abhisek/lexiz/internal/vocab"
)

const labelWidth = 16

func (s *SetupScreen) View(width, height int) string {
	if s.loadErr != "" {
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\n\nCould not load words: %s\n\nPress any key to go back.", s.loadErr))
	}
	if !s.loaded {
		return theme.Centered(theme.Dim, width, "\n\n\nLoading words...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Title, width, "Set up your quiz"))
	b.WriteString("\n")
	lo, hi := vocab.IndexBounds(s.records)
	b.WriteString(theme.Centered(theme.Subtitle, width,
		fmt.Sprintf("%d words available, numbered %d to %d", len(s.records), lo, hi)))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	rows := []string{
		s.row(fieldDirection, "Direction", "‹ "+s.direction.Label()+" ›"),
		s.row(fieldFrom, "From word #", s.from.View()),
		s.row(fieldTo, "To word #", s.toView()),
		s.row(fieldGroup, "Group", "‹ "+s.groupLabel()+" ›"),
		s.row(fieldCount, "Questions", s.count.View()+theme.Dim.Render(fmt.Sprintf("  (1-%d)", quiz.MaxQuestions))),
	}
	form := strings.Join(rows, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form))
	b.WriteString("\n\n")

	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Secondary), width, s.poolLine()))
	b.WriteString("\n\n")

	btn := "  START QUIZ  "
	if s.focus == fieldStart {
		btn = lipgloss.NewStyle().Background(theme.Primary).Foreground(theme.Text).Bold(true).Render("▸ START QUIZ ")
	} else {
		btn = lipgloss.NewStyle().Foreground(theme.Text).Render(btn)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, btn))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Centered(theme.Incorrect, width, s.errMsg))
	}
	return b.String()
}

func (s *SetupScreen) row(f field, label, value string) string {
	marker := "  "
	style := theme.Unselected
	if s.focus == f {
		marker = "▸ "
		style = theme.Selected
	}
	return style.Render(marker+lipgloss.NewStyle().Width(labelWidth).Render(label)) + value
}

func (s *SetupScreen) toView() string {
	if s.to.Value() == "" && s.focus != fieldTo {
		return theme.Dim.Render("end of list")
	}
	return s.to.View()
}

func (s *SetupScreen) groupLabel() string {
	g := s.groups[s.groupIdx]
	if g == "" {
		return "All groups"
	}
	return g
}

func (s *SetupScreen) poolLine() string {
	n := s.poolSize()
	switch {
	case n < 0:
		return "Enter whole numbers"
	case n == 0:
		return "No words match this selection"
	case n == 1:
		return "1 word matches"
	}
	return fmt.Sprintf("%d words match", n)
}
