// Package wordlist is the screen for browsing and searching the corpus.
package wordlist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
	"github.com/abhisek/lexiz/internal/vocab"
)

type wordsLoadedMsg struct {
	Records []vocab.WordRecord
	Err     error
}

// WordListScreen lists every word with scrolling and incremental search.
type WordListScreen struct {
	source vocab.Source

	all     []vocab.WordRecord
	visible []vocab.WordRecord
	loaded  bool
	errMsg  string

	search    components.TextInput
	searching bool
	offset    int
	pageSize  int
}

var _ screen.Screen = (*WordListScreen)(nil)
var _ screen.KeyHintProvider = (*WordListScreen)(nil)
var _ screen.StatusProvider = (*WordListScreen)(nil)

// New creates a word list over source.
func New(source vocab.Source) *WordListScreen {
	return &WordListScreen{
		source:   source,
		search:   components.NewTextInput("search words or meanings", false, 40),
		pageSize: 10,
	}
}

func (s *WordListScreen) Init() tea.Cmd {
	src := s.source
	return func() tea.Msg {
		records, err := src.All(context.Background())
		return wordsLoadedMsg{Records: records, Err: err}
	}
}

func (s *WordListScreen) Title() string {
	return "Word List"
}

func (s *WordListScreen) Status() string {
	if !s.loaded {
		return ""
	}
	return fmt.Sprintf("%d/%d words", len(s.visible), len(s.all))
}

func (s *WordListScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "/", Description: "Search"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WordListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wordsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.all = msg.Records
		s.visible = msg.Records
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if s.searching {
			return s.handleSearchKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.searching {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *WordListScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.Pop()
	}
	switch msg.String() {
	case "esc", "q":
		return s, router.Pop()
	case "/":
		s.searching = true
		return s, s.search.Focus()
	case "up", "k":
		s.scroll(-1)
	case "down", "j":
		s.scroll(1)
	case "pgup":
		s.scroll(-s.pageSize)
	case "pgdown", "space":
		s.scroll(s.pageSize)
	case "home", "g":
		s.offset = 0
	case "end", "G":
		s.scroll(len(s.visible))
	}
	return s, nil
}

func (s *WordListScreen) handleSearchKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.searching = false
		s.search.Blur()
		return s, nil
	case "esc":
		s.searching = false
		s.search.Blur()
		s.search.SetValue("")
		s.applySearch()
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.applySearch()
	return s, cmd
}

func (s *WordListScreen) applySearch() {
	s.visible = Search(s.all, s.search.Value())
	s.offset = 0
}

func (s *WordListScreen) scroll(delta int) {
	s.offset = min(max(s.offset+delta, 0), max(len(s.visible)-s.pageSize, 0))
}

// Search returns the records whose term, meaning or group contains query,
// ignoring case. An empty query matches everything.
func Search(records []vocab.WordRecord, query string) []vocab.WordRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	var out []vocab.WordRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Term), q) ||
			strings.Contains(strings.ToLower(r.Meaning), q) ||
			strings.Contains(strings.ToLower(r.Group), q) {
			out = append(out, r)
		}
	}
	return out
}

func (s *WordListScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\n\nCould not load words: %s\n\nPress any key to go back.", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(theme.Dim, width, "\n\n\nLoading words...")
	}

	var b strings.Builder
	searchLine := theme.Dim.Render("/ ") + s.search.View()
	if !s.searching && s.search.Value() == "" {
		searchLine = theme.Hint.Render("Press / to search")
	}
	b.WriteString("  " + searchLine + "\n\n")

	// search line, blank, header, divider
	s.pageSize = max(height-4, 1)
	s.scroll(0)

	cols := columns(width)
	b.WriteString(theme.Dim.Bold(true).Render(cols.row("#", "Word", "Meaning", "Group")))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render("  " + strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if len(s.visible) == 0 {
		b.WriteString(theme.Centered(theme.Hint, width, "No words match your search"))
		return b.String()
	}

	end := min(s.offset+s.pageSize, len(s.visible))
	for _, r := range s.visible[s.offset:end] {
		b.WriteString(theme.Body.Render(cols.row(fmt.Sprintf("%d", r.Index), r.Term, r.Meaning, r.Group)))
		b.WriteString("\n")
	}
	return b.String()
}

type columnWidths struct {
	index, term, meaning, group int
}

func columns(width int) columnWidths {
	inner := max(width-4, 40)
	c := columnWidths{index: 6, group: 14}
	rest := inner - c.index - c.group
	c.term = rest * 2 / 5
	c.meaning = rest - c.term
	return c
}

func (c columnWidths) row(index, term, meaning, group string) string {
	cell := func(s string, w int) string {
		return lipgloss.NewStyle().Width(w).MaxWidth(w).Render(truncate(s, w-1))
	}
	return "  " + cell(index, c.index) + cell(term, c.term) + cell(meaning, c.meaning) + cell(group, c.group)
}

// truncate shortens s to at most w cells, adding an ellipsis when cut.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
