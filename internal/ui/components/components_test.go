package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"cat", "dog", "bird"})

	mc, submitted := mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.False(t, submitted)
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, mc.Selected, "selection stops at the last option")

	mc, submitted = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.True(t, submitted)
	got, ok := mc.Chosen()
	require.True(t, ok)
	assert.Equal(t, "bird", got)
}

func TestMultiChoice_DigitShortcut(t *testing.T) {
	mc := NewMultiChoice([]string{"cat", "dog"})

	mc, submitted := mc.Update(keyPress('5'))
	assert.False(t, submitted, "out of range digit is ignored")

	mc, submitted = mc.Update(keyPress('2'))
	require.True(t, submitted)
	got, _ := mc.Chosen()
	assert.Equal(t, "dog", got)
}

func TestMultiChoice_IgnoresInputAfterSubmit(t *testing.T) {
	mc := NewMultiChoice([]string{"cat", "dog"})
	mc, _ = mc.Update(keyPress('1'))

	mc, submitted := mc.Update(keyPress('2'))
	assert.False(t, submitted)
	mc, submitted = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, submitted)

	got, _ := mc.Chosen()
	assert.Equal(t, "cat", got)
}

func TestMultiChoice_View(t *testing.T) {
	mc := NewMultiChoice([]string{"cat", "dog"})
	v := mc.View()
	assert.Contains(t, v, "1)  cat")
	assert.Contains(t, v, "2)  dog")

	mc, _ = mc.Update(keyPress('2'))
	mc.Reveal(0)
	assert.Equal(t, 0, mc.CorrectIndex)
	assert.Contains(t, mc.View(), "cat")
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { called = true; return nil }},
		{Label: "C", Disabled: true},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, called)
	assert.Contains(t, m.View(), "B")
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar("Q", 3, 4, 40)
	assert.InDelta(t, 0.75, p.Percent(), 1e-9)
	assert.Contains(t, p.View(), "3/4")

	assert.Zero(t, NewProgressBar("", 1, 0, 10).Percent())
	assert.Equal(t, 1.0, NewProgressBar("", 9, 4, 10).Percent())
}

func TestTextInput_Numeric(t *testing.T) {
	ti := NewTextInput("count", true, 4)
	ti.Focus()

	for _, r := range "4x2" {
		ti, _ = ti.Update(keyPress(r))
	}
	assert.Equal(t, "42", ti.Value())
	n, err := ti.NumericValue()
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	ti.SetValue("")
	n, err = ti.NumericValue()
	require.NoError(t, err)
	assert.Zero(t, n)
}
