package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/setup"
	"github.com/abhisek/lexiz/internal/screens/wordlist"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/theme"
	"github.com/abhisek/lexiz/internal/vocab"
)

const titleArt = `██╗     ███████╗██╗  ██╗██╗███████╗
██║     ██╔════╝╚██╗██╔╝██║╚══███╔╝
██║     █████╗   ╚███╔╝ ██║  ███╔╝
██║     ██╔══╝   ██╔██╗ ██║ ███╔╝
███████╗███████╗██╔╝ ██╗██║███████╗
╚══════╝╚══════╝╚═╝  ╚═╝╚═╝╚══════╝`

const titleCompact = "L · E · X · I · Z"

type statsMsg struct {
	Words  int
	Groups int
	Err    error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	env  screen.Env
	menu components.Menu

	words    int
	groups   int
	loaded   bool
	statsErr string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(env screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return router.Push(setup.New(h.env))
		}},
		{Label: "WORD LIST", Action: func() tea.Cmd {
			return router.Push(wordlist.New(h.env.Source))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	src := h.env.Source
	return func() tea.Msg {
		records, err := src.All(context.Background())
		if err != nil {
			return statsMsg{Err: err}
		}
		return statsMsg{Words: len(records), Groups: len(vocab.Groups(records))}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsMsg); ok {
		h.loaded = true
		if m.Err != nil {
			h.statsErr = m.Err.Error()
			return h, nil
		}
		h.words, h.groups = m.Words, m.Groups
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	compact := width < 70 || height < 22
	cw := contentWidth(width)

	var sections []string

	title := titleArt
	if compact {
		title = titleCompact
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title)))

	sections = append(sections, h.renderStats(cw))
	sections = append(sections, h.renderMenu(cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) renderStats(cw int) string {
	var stats string
	switch {
	case !h.loaded:
		stats = theme.Dim.Render("Loading words...")
	case h.statsErr != "":
		stats = theme.Incorrect.Render("Word source unavailable: " + h.statsErr)
	case h.words == 0:
		stats = theme.Warning.Render("No words yet. Run `lexiz import <file>` to add some.")
	default:
		stats = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d WORDS", h.words)) +
			"   " +
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf("%d GROUPS", h.groups))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Render(stats)
}

func (h *HomeScreen) renderMenu(cw int) string {
	var b strings.Builder
	for i, item := range h.menu.Items {
		style := lipgloss.NewStyle().
			Width(cw - 8).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
		if i == h.menu.Selected {
			style = style.Bold(true).
				Foreground(theme.BgDark).
				Background(theme.Accent).
				BorderForeground(theme.Accent)
			b.WriteString(style.Render("▸ " + item.Label))
		} else {
			b.WriteString(style.Foreground(theme.Text).BorderForeground(theme.Border).Render(item.Label))
		}
		if i < len(h.menu.Items)-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, b.String())
}

// contentWidth returns the inner width shared by all home sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}
