package home

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/setup"
	"github.com/abhisek/lexiz/internal/screens/wordlist"
	"github.com/abhisek/lexiz/internal/vocab"
	mock_vocab "github.com/abhisek/lexiz/internal/vocab/mock"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newHome(t *testing.T, records []vocab.WordRecord, err error) *HomeScreen {
	t.Helper()
	src := mock_vocab.NewMockSource(gomock.NewController(t))
	src.EXPECT().All(gomock.Any()).Return(records, err)
	h := New(screen.Env{Source: src})
	h.Update(h.Init()())
	return h
}

func TestHomeScreen_Stats(t *testing.T) {
	h := newHome(t, []vocab.WordRecord{
		{Index: 1, Term: "a", Meaning: "A", Group: "G1"},
		{Index: 2, Term: "b", Meaning: "B", Group: "G2"},
		{Index: 3, Term: "c", Meaning: "C", Group: "G2"},
	}, nil)

	view := h.View(100, 40)
	assert.Contains(t, view, "3 WORDS")
	assert.Contains(t, view, "2 GROUPS")
	assert.Contains(t, view, "START QUIZ")
	assert.Equal(t, "Home", h.Title())
}

func TestHomeScreen_EmptyCorpus(t *testing.T) {
	h := newHome(t, nil, nil)
	assert.Contains(t, h.View(100, 40), "No words yet")
}

func TestHomeScreen_SourceError(t *testing.T) {
	h := newHome(t, nil, errors.New("boom"))
	assert.Contains(t, h.View(100, 40), "Word source unavailable: boom")
}

func TestHomeScreen_Menu(t *testing.T) {
	h := newHome(t, nil, nil)

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &setup.SetupScreen{}, push.Screen)

	h.Update(specialKey(tea.KeyDown))
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	push, ok = cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &wordlist.WordListScreen{}, push.Screen)

	h.Update(specialKey(tea.KeyDown))
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHomeScreen_CompactView(t *testing.T) {
	h := newHome(t, nil, nil)
	assert.Contains(t, h.View(60, 20), "L · E · X · I · Z")
}
