package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/screen"
	quizscreen "github.com/abhisek/lexiz/internal/screens/quiz"
	"github.com/abhisek/lexiz/internal/vocab"
)

func testEnv() screen.Env {
	return screen.Env{Source: vocab.NewMemorySource([]vocab.WordRecord{
		{Index: 1, Term: "apple", Meaning: "りんご"},
		{Index: 2, Term: "bread", Meaning: "パン"},
	})}
}

func TestAppModel_View(t *testing.T) {
	m := newAppModel(testEnv())
	require.NotNil(t, m.Init())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app := next.(AppModel)
	assert.True(t, app.View().AltScreen)
	assert.Contains(t, app.render(), "Lexiz")
	assert.Contains(t, app.render(), "Home")
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(testEnv())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, next.(AppModel).render(), "Terminal too small")
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(testEnv())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_ExtraScreens(t *testing.T) {
	env := testEnv()
	records, _ := env.Source.All(t.Context())
	sess, err := quiz.Start(records, 2, quiz.MeaningToTerm, quiz.WithSeed(1))
	require.NoError(t, err)

	m := newAppModel(env, quizscreen.New(env, sess, records))
	assert.Equal(t, 2, m.router.Depth())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	content := next.(AppModel).render()
	assert.Contains(t, content, "Meaning → Term")
	assert.Contains(t, content, "Quit")
}
