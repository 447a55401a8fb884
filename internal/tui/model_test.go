package tui

import (
	"testing"

	"bmi-advisor/internal/bmi"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	reset = tea.KeyMsg{Type: tea.KeyCtrlR}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModel_TypeAndSubmit(t *testing.T) {
	m := New(bmi.NewAdvisor())

	m = press(t, m, runes("7"), runes("0"), tab, runes("1"), runes("8"), runes("0"), enter)

	assert.Empty(t, m.Alert())
	assert.Equal(t, "75", m.Results().IdealWeight)
	assert.Equal(t, bmi.HealthyIdeal.Advice(), m.Results().Status)
	assert.Contains(t, m.View(), "Ideal weight")
}

func TestModel_SexToggle(t *testing.T) {
	m := New(bmi.NewAdvisor())
	m.weight.SetValue("60")
	m.height.SetValue("180")

	m = press(t, m, tab, tab, tea.KeyMsg{Type: tea.KeyRight}, enter)

	assert.Equal(t, bmi.Female, m.sex)
	assert.Equal(t, "71", m.Results().IdealWeight)
}

func TestModel_AlertBlocksUntilDismissed(t *testing.T) {
	m := New(bmi.NewAdvisor())
	m.weight.SetValue("501")
	m.height.SetValue("170")

	m = press(t, m, enter)
	require.Equal(t, bmi.ErrExcessiveWeight.Error(), m.Alert())
	assert.Empty(t, m.Results().BMI)
	assert.Contains(t, m.View(), "crushed my scales")

	// typing is swallowed while the alert is open
	m = press(t, m, runes("9"))
	assert.Equal(t, "501", m.weight.Value())

	m = press(t, m, enter)
	assert.Empty(t, m.Alert())
}

func TestModel_Reset(t *testing.T) {
	m := New(bmi.NewAdvisor())
	m.weight.SetValue("70")
	m.height.SetValue("175")

	m = press(t, m, enter)
	require.NotEmpty(t, m.Results().BMI)

	m = press(t, m, reset)
	assert.Empty(t, m.Results().BMI)
	assert.Empty(t, m.Results().Status)
	assert.Empty(t, m.Results().IdealWeight)
}

func TestModel_Quit(t *testing.T) {
	m := New(bmi.NewAdvisor())

	_, cmd := m.Update(esc)
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
