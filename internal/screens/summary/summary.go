package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/tips"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
	"github.com/abhisek/lexiz/internal/vocab"
)

const tipsTimeout = 60 * time.Second

type tipsState int

const (
	tipsOff tipsState = iota
	tipsLoading
	tipsReady
	tipsFailed
)

type tipsMsg struct {
	Tips []tips.Tip
	Err  error
}

// SummaryScreen shows the final report of a finished quiz.
type SummaryScreen struct {
	env       screen.Env
	report    quiz.Report
	direction quiz.Direction
	records   []vocab.WordRecord

	tipsState tipsState
	tips      map[int]string
	tipsErr   string

	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary for report. pool is the record pool the quiz drew
// from; it supplies example sentences for missed words.
func New(env screen.Env, report quiz.Report, direction quiz.Direction, pool []vocab.WordRecord) *SummaryScreen {
	s := &SummaryScreen{
		env:       env,
		report:    report,
		direction: direction,
		records:   tips.MissedRecords(pool, report.Mistakes),
		tips:      make(map[int]string),
	}
	if env.Tips != nil && len(s.records) > 0 {
		s.tipsState = tipsLoading
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.tipsState != tipsLoading {
		return nil
	}
	svc := s.env.Tips
	direction := s.direction
	missed := s.records
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), tipsTimeout)
		defer cancel()
		t, err := svc.Generate(ctx, direction, missed)
		return tipsMsg{Tips: t, Err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
	if len(s.report.Mistakes) > 0 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tipsMsg:
		if msg.Err != nil {
			s.tipsState = tipsFailed
			s.tipsErr = msg.Err.Error()
			s.env.Logger().Warn("memory tips failed", zap.Error(msg.Err))
			return s, nil
		}
		s.tipsState = tipsReady
		for _, t := range msg.Tips {
			s.tips[t.Index] = t.Text
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "q":
			return s, router.Pop()
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var lines []string

	lines = append(lines, theme.Centered(theme.Title, width, "Quiz complete!"), "")

	score := fmt.Sprintf("Score: %d/%d        Accuracy: %.0f%%",
		s.report.Correct, s.report.Total, s.report.Accuracy*100)
	lines = append(lines, theme.Centered(theme.Body.Bold(true), width, score), "")

	if len(s.report.Mistakes) == 0 {
		lines = append(lines, theme.Centered(theme.Correct, width, "Perfect score, no missed words!"))
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		theme.Centered(theme.Dim, width, "Missed words"),
		layout.Divider(width),
		"",
	)
	lines = append(lines, s.tipsStatus(width)...)

	examples := make(map[int]vocab.WordRecord, len(s.records))
	for _, r := range s.records {
		examples[r.Index] = r
	}

	var body []string
	cw := min(width-8, 70)
	for _, m := range s.report.Mistakes {
		body = append(body, s.renderMistake(m, examples[m.Index], cw)...)
	}

	visible := max(height-len(lines), 1)
	s.offset = min(s.offset, max(len(body)-visible, 0))
	end := min(s.offset+visible, len(body))
	for _, l := range body[s.offset:end] {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
	}
	return strings.Join(lines, "\n")
}

func (s *SummaryScreen) tipsStatus(width int) []string {
	switch s.tipsState {
	case tipsLoading:
		return []string{theme.Centered(theme.Hint, width, "Generating memory tips..."), ""}
	case tipsFailed:
		return []string{theme.Centered(theme.Warning, width, "Memory tips unavailable: "+s.tipsErr), ""}
	}
	return nil
}

func (s *SummaryScreen) renderMistake(m quiz.Mistake, r vocab.WordRecord, cw int) []string {
	row := lipgloss.NewStyle().Width(cw)
	out := []string{
		row.Render(fmt.Sprintf("%s  %s  %s  %s",
			theme.Dim.Render(fmt.Sprintf("#%d", m.Index)),
			theme.Body.Bold(true).Render(m.Prompt),
			theme.Dim.Render("→"),
			theme.Correct.Render(m.Expected))),
	}
	if r.Example != "" {
		ex := "    " + r.Example
		if r.ExampleTranslation != "" {
			ex += "  (" + r.ExampleTranslation + ")"
		}
		out = append(out, row.Render(theme.Hint.Render(ex)))
	}
	if tip, ok := s.tips[m.Index]; ok {
		out = append(out, row.Render(theme.Warning.Render("    Tip: "+tip)))
	}
	return append(out, "")
}
