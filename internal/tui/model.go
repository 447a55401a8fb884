// Package tui is the interactive terminal form of the BMI calculator.
package tui

import (
	"strings"

	"bmi-advisor/internal/bmi"
	"bmi-advisor/internal/form"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field int

const (
	fieldWeight field = iota
	fieldHeight
	fieldSex
	fieldCount
)

// Model is the state of the calculator form.
type Model struct {
	advisor *bmi.Advisor

	weight textinput.Model
	height textinput.Model
	sex    bmi.Sex
	focus  field

	results form.Results
	alert   string // non-empty while a modal alert is open

	styles Styles
}

// New creates a form with the weight field focused.
func New(advisor *bmi.Advisor) Model {
	w := textinput.New()
	w.Placeholder = "kg"
	w.CharLimit = 8
	w.Width = 10

	h := textinput.New()
	h.Placeholder = "cm"
	h.CharLimit = 8
	h.Width = 10

	m := Model{
		advisor: advisor,
		weight:  w,
		height:  h,
		sex:     bmi.Male,
		styles:  DefaultStyles(),
	}
	m.setFocus(fieldWeight)
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Results returns the currently displayed output fields.
func (m Model) Results() form.Results {
	return m.results
}

// Alert returns the open alert message, if any.
func (m Model) Alert() string {
	return m.alert
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	// An open alert blocks the form until dismissed.
	if m.alert != "" {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	case "enter":
		m.submit()
		return m, nil
	case "ctrl+r":
		form.Reset(&m.results)
		return m, nil
	}

	if m.focus == fieldSex {
		switch key.String() {
		case "left", "right", " ":
			m.toggleSex()
		case "m":
			m.sex = bmi.Male
		case "f":
			m.sex = bmi.Female
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m *Model) submit() {
	fields := form.Fields{
		Weight: m.weight.Value(),
		Height: m.height.Value(),
		Sex:    string(m.sex),
	}
	form.Submit(m.advisor, fields, &m.results, form.AlertFunc(func(msg string) {
		m.alert = msg
	}))
}

func (m *Model) toggleSex() {
	if m.sex == bmi.Male {
		m.sex = bmi.Female
	} else {
		m.sex = bmi.Male
	}
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.weight.Blur()
	m.height.Blur()
	switch f {
	case fieldWeight:
		return m.weight.Focus()
	case fieldHeight:
		return m.height.Focus()
	}
	return nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldWeight:
		m.weight, cmd = m.weight.Update(msg)
	case fieldHeight:
		m.height, cmd = m.height.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("BMI calculator"))
	b.WriteString("\n")
	b.WriteString(m.label("Weight (kg)", fieldWeight) + m.weight.View() + "\n")
	b.WriteString(m.label("Height (cm)", fieldHeight) + m.height.View() + "\n")
	b.WriteString(m.label("Sex", fieldSex) + m.sexView() + "\n\n")

	b.WriteString(m.styles.Label.Render("BMI") + m.styles.Value.Render(m.results.BMI) + "\n")
	b.WriteString(m.styles.Label.Render("Ideal weight") + m.styles.Value.Render(m.results.IdealWeight) + "\n")
	if m.results.Status != "" {
		b.WriteString(m.styles.Advice.Render(m.results.Status) + "\n")
	}

	if m.alert != "" {
		b.WriteString("\n" + m.styles.Alert.Render(m.alert+"\n\n[enter] OK") + "\n")
	}

	b.WriteString(m.styles.Help.Render("tab: next field • enter: calculate • ctrl+r: reset • esc: quit"))
	return b.String()
}

func (m Model) label(text string, f field) string {
	if m.focus == f {
		return m.styles.Focused.Render("> " + text)
	}
	return m.styles.Label.Render("  " + text)
}

func (m Model) sexView() string {
	opts := []bmi.Sex{bmi.Male, bmi.Female}
	parts := make([]string, 0, len(opts))
	for _, s := range opts {
		if s == m.sex {
			parts = append(parts, m.styles.Selected.Render("(•) "+string(s)))
		} else {
			parts = append(parts, "( ) "+string(s))
		}
	}
	return strings.Join(parts, "  ")
}
