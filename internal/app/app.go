package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/home"
	quizscreen "github.com/abhisek/lexiz/internal/screens/quiz"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/vocab"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

// newAppModel creates an AppModel with the home screen at the bottom of
// the stack and extra screens pushed on top.
func newAppModel(env screen.Env, extra ...screen.Screen) AppModel {
	homeScreen := home.New(env)
	r := router.New(homeScreen)
	cmds := []tea.Cmd{homeScreen.Init()}
	for _, s := range extra {
		cmds = append(cmds, r.Push(s))
	}
	return AppModel{router: r, initCmd: tea.Batch(cmds...)}
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the TUI at the home screen.
func Run(env screen.Env) error {
	return run(env, newAppModel(env))
}

// Play starts the TUI directly in a quiz over records with settings s.
// Leaving the quiz returns to the home screen.
func Play(env screen.Env, records []vocab.WordRecord, s quiz.Settings) error {
	sess, err := quiz.StartWithSettings(records, s, env.QuizOptions...)
	if err != nil {
		return err
	}
	return run(env, newAppModel(env, quizscreen.New(env, sess, s.Pool(records))))
}

func run(env screen.Env, model AppModel) error {
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		env.Logger().Error("program exited with error", zap.Error(err))
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
