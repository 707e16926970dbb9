package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/nativeapi-go/variant"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD580"))

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	session  *session
	codePage variant.CodePage
	name     string
	result   string
	entries  []entry
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelect modelState = iota
	stateInput
	stateShowResult
)

type resultMsg struct {
	err    error
	result string
}

func newInteractiveModel(s *session, entries []entry, name string, cp variant.CodePage) *interactiveModel {
	return &interactiveModel{
		session:  s,
		codePage: cp,
		name:     strings.TrimRight(name, "\x00"),
		entries:  entries,
		state:    stateSelect,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInput {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelect && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelect && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "r":
			if m.state == stateSelect && m.current().kind == entryProperty {
				return m, m.readProperty
			}

		case "enter":
			switch m.state {
			case stateSelect:
				e := m.current()
				if e.kind == entryProperty && !e.write {
					return m, m.readProperty
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.execute
				}
				m.state = stateInput

			case stateInput:
				return m, m.execute

			case stateShowResult:
				m.reset()
			}

		case "tab":
			if m.state == stateInput && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			if m.state != stateSelect {
				m.reset()
			}
		}

	case resultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInput {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) current() entry {
	return m.entries[m.selected]
}

func (m *interactiveModel) reset() {
	m.state = stateSelect
	m.inputs = nil
	m.result = ""
	m.err = nil
}

func (m *interactiveModel) prepareInputs() {
	e := m.current()
	newInput := func(prompt, placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = prompt + ": "
		ti.Width = 40
		return ti
	}

	m.inputs = nil
	if e.kind == entryProperty {
		m.inputs = append(m.inputs, newInput(e.name, witTypeStr(e.typ.WIT())))
	} else {
		for _, p := range e.params {
			placeholder := witTypeStr(p.Type.WIT())
			if p.HasDefault {
				placeholder += " = " + p.Default.String()
			}
			m.inputs = append(m.inputs, newInput(p.Name, placeholder))
		}
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	m.focusIdx = 0
}

func (m *interactiveModel) readProperty() tea.Msg {
	v, err := m.session.get(m.current().ordinal)
	if err != nil {
		return resultMsg{err: err}
	}
	return resultMsg{result: formatValue(v, m.codePage)}
}

func (m *interactiveModel) execute() tea.Msg {
	e := m.current()

	if e.kind == entryProperty {
		v, err := parseValue(m.inputs[0].Value(), e.typ, m.codePage)
		if err != nil {
			return resultMsg{err: err}
		}
		if err := m.session.set(e.ordinal, v); err != nil {
			return resultMsg{err: err}
		}
		return m.readProperty()
	}

	args := make([]variant.Value, len(m.inputs))
	for i, input := range m.inputs {
		v, err := parseValue(input.Value(), e.params[i].Type, m.codePage)
		if err != nil {
			return resultMsg{err: fmt.Errorf("%s: %w", e.params[i].Name, err)}
		}
		args[i] = v
	}
	result, out, err := m.session.call(e.ordinal, args)
	if err != nil {
		return resultMsg{err: err}
	}

	var b strings.Builder
	b.WriteString(formatValue(result, m.codePage))
	for i, v := range out {
		if !v.Equal(args[i]) {
			fmt.Fprintf(&b, "\n%s -> %s", e.params[i].Name, formatValue(v, m.codePage))
		}
	}
	return resultMsg{result: b.String()}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Add-in Console"))
	b.WriteString(" ")
	b.WriteString(m.name)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelect:
		section := entryKind(-1)
		for i, e := range m.entries {
			if e.kind != section {
				section = e.kind
				if section == entryProperty {
					b.WriteString(sectionStyle.Render("Properties"))
				} else {
					b.WriteString("\n")
					b.WriteString(sectionStyle.Render("Methods"))
				}
				b.WriteString("\n")
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + e.signature()))
			} else {
				b.WriteString("  " + m.formatEntry(e))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call/write • r read • q quit"))

	case stateInput:
		e := m.current()
		verb := "Calling"
		if e.kind == entryProperty {
			verb = "Setting"
		}
		b.WriteString(fmt.Sprintf("%s %s\n\n", verb, funcStyle.Render(e.name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • empty field takes the default • enter run • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(m.current().name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(e entry) string {
	sig := e.signature()
	name, rest, _ := strings.Cut(sig, string(sigSeparator(e)))
	return funcStyle.Render(name) + string(sigSeparator(e)) + typeStyle.Render(rest)
}

func sigSeparator(e entry) rune {
	if e.kind == entryProperty {
		return ':'
	}
	return '('
}

func runInteractive(s *session, entries []entry, name string, cp variant.CodePage) error {
	p := tea.NewProgram(newInteractiveModel(s, entries, name, cp), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
