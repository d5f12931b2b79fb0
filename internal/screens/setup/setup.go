// Package setup is the screen where the learner configures a quiz.
package setup

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	quizscreen "github.com/abhisek/lexiz/internal/screens/quiz"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/vocab"
)

type field int

const (
	fieldDirection field = iota
	fieldFrom
	fieldTo
	fieldGroup
	fieldCount
	fieldStart
	numFields
)

type recordsLoadedMsg struct {
	Records []vocab.WordRecord
	Err     error
}

// SetupScreen lets the learner pick direction, index range, group and
// question count, and shows how many words match.
type SetupScreen struct {
	env screen.Env

	records []vocab.WordRecord
	groups  []string // groups[0] is "" meaning all groups
	loaded  bool
	loadErr string

	direction   quiz.Direction
	presetGroup string
	groupIdx    int
	from        components.TextInput
	to          components.TextInput
	count       components.TextInput

	focus  field
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen prefilled from env.Defaults.
func New(env screen.Env) *SetupScreen {
	d := env.Defaults
	if d.Count == 0 {
		d = quiz.DefaultSettings()
	}
	s := &SetupScreen{
		env:         env,
		direction:   d.Direction,
		presetGroup: d.Group,
		from:        components.NewTextInput("first", true, 6),
		to:          components.NewTextInput("last", true, 6),
		count:       components.NewTextInput("count", true, 3),
		groups:      []string{""},
	}
	if d.From > 0 {
		s.from.SetValue(strconv.Itoa(d.From))
	}
	if d.To > 0 {
		s.to.SetValue(strconv.Itoa(d.To))
	}
	s.count.SetValue(strconv.Itoa(d.Count))
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	src := s.env.Source
	return func() tea.Msg {
		records, err := src.All(context.Background())
		return recordsLoadedMsg{Records: records, Err: err}
	}
}

func (s *SetupScreen) Title() string {
	return "Quiz Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		return s.handleLoaded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, s.forward(msg)
}

func (s *SetupScreen) handleLoaded(msg recordsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.loadErr = msg.Err.Error()
		return s, nil
	}
	s.records = msg.Records
	s.loaded = true

	s.groups = append([]string{""}, vocab.Groups(msg.Records)...)
	s.groupIdx = 0
	for i, g := range s.groups {
		if s.presetGroup != "" && strings.EqualFold(g, s.presetGroup) {
			s.groupIdx = i
		}
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.loadErr != "" {
		return s, router.Pop()
	}

	switch msg.String() {
	case "esc":
		return s, router.Pop()
	case "enter":
		if s.loaded {
			return s.start()
		}
		return s, nil
	case "down", "tab":
		return s, s.setFocus((s.focus + 1) % numFields)
	case "up", "shift+tab":
		return s, s.setFocus((s.focus + numFields - 1) % numFields)
	case "left", "right", "space":
		switch s.focus {
		case fieldDirection:
			s.direction = s.direction.Toggle()
			return s, nil
		case fieldGroup:
			s.cycleGroup(msg.String() == "left")
			return s, nil
		}
	}
	s.errMsg = ""
	return s, s.forward(msg)
}

func (s *SetupScreen) cycleGroup(back bool) {
	n := len(s.groups)
	if back {
		s.groupIdx = (s.groupIdx + n - 1) % n
	} else {
		s.groupIdx = (s.groupIdx + 1) % n
	}
}

// forward passes msg to the focused text input, if any.
func (s *SetupScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldFrom:
		s.from, cmd = s.from.Update(msg)
	case fieldTo:
		s.to, cmd = s.to.Update(msg)
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	}
	return cmd
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.from.Blur()
	s.to.Blur()
	s.count.Blur()
	switch f {
	case fieldFrom:
		return s.from.Focus()
	case fieldTo:
		return s.to.Focus()
	case fieldCount:
		return s.count.Focus()
	}
	return nil
}

// settings reads the form into quiz settings.
func (s *SetupScreen) settings() (quiz.Settings, error) {
	from, err := s.from.NumericValue()
	if err != nil {
		return quiz.Settings{}, fmt.Errorf("first index: %w", err)
	}
	to, err := s.to.NumericValue()
	if err != nil {
		return quiz.Settings{}, fmt.Errorf("last index: %w", err)
	}
	count, err := s.count.NumericValue()
	if err != nil {
		return quiz.Settings{}, fmt.Errorf("question count: %w", err)
	}
	return quiz.Settings{
		Direction: s.direction,
		From:      from,
		To:        to,
		Group:     s.groups[s.groupIdx],
		Count:     count,
	}, nil
}

// poolSize is the number of words matching the current form, or -1 when
// the form does not parse.
func (s *SetupScreen) poolSize() int {
	st, err := s.settings()
	if err != nil {
		return -1
	}
	return len(st.Pool(s.records))
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	st, err := s.settings()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	sess, err := quiz.StartWithSettings(s.records, st, s.env.QuizOptions...)
	switch {
	case errors.Is(err, quiz.ErrEmptyPool):
		s.errMsg = quiz.ErrEmptyPool.Error()
		return s, nil
	case err != nil:
		s.errMsg = err.Error()
		return s, nil
	}
	return s, router.Replace(quizscreen.New(s.env, sess, st.Pool(s.records)))
}
