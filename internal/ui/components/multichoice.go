package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Once an option is chosen it
// ignores further input until Reveal is called and a new one is built.
type MultiChoice struct {
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int

	// CorrectIndex is -1 until Reveal is called.
	CorrectIndex int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Update handles arrow navigation, Enter, and digit shortcuts. It returns
// true when this message submitted an option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Submitted || len(m.Options) == 0 {
		return m, false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		m.Submitted = true
		m.ChosenIndex = m.Selected
		return m, true
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Options) {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
				return m, true
			}
		}
	}
	return m, false
}

// Chosen returns the submitted option text.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}

// Reveal marks which option was correct so View can color the result.
func (m *MultiChoice) Reveal(correct int) {
	m.CorrectIndex = correct
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && m.CorrectIndex >= 0 && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			if m.CorrectIndex >= 0 {
				style = theme.Incorrect
			} else {
				style = theme.Selected
			}
		case m.Submitted:
			style = theme.Dim
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
