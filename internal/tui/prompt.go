package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
)

// countdownMsg updates the seconds shown before defaults are used.
type countdownMsg struct {
	remaining int
}

// label renders "question (key)" with the key highlighted.
func label(question, key string) string {
	if key == "" {
		return questionStyle.Render(question)
	}
	return questionStyle.Render(question) + " (" + keyStyle.Render(key) + ")"
}

// inputModel reads a single free-form line.
type inputModel struct {
	label   string
	problem string
	input   textinput.Model

	value       string
	done        bool
	interrupted bool
}

func newInputModel(label, placeholder, problem string) *inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Focus()

	return &inputModel{
		label:   label,
		problem: problem,
		input:   ti,
	}
}

func (m *inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			m.interrupted = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.value = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inputModel) View() string {
	if m.done || m.interrupted {
		return ""
	}

	var b strings.Builder
	if m.label != "" {
		b.WriteString(m.label)
		b.WriteString("\n")
	}
	if m.problem != "" {
		b.WriteString(problemStyle.Render(m.problem))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.input.Placeholder != "" {
		b.WriteString(dimStyle.Render("Enter to keep " + m.input.Placeholder))
		b.WriteString("\n")
	}
	return b.String()
}

// choiceItem implements list.Item for a choice.
type choiceItem struct {
	choice config.Choice
}

func (c choiceItem) Title() string       { return c.choice.String() }
func (c choiceItem) Description() string { return "" }
func (c choiceItem) FilterValue() string { return c.choice.String() }

// maxVisible is the number of choices shown per page.
const maxVisible = 10

// selectModel picks one of a fixed set of choices.
type selectModel struct {
	label     string
	problem   string
	list      list.Model
	remaining int

	selected    config.Choice
	done        bool
	interrupted bool
}

func newSelectModel(label, problem string, choices config.Choices, current any) *selectModel {
	items := make([]list.Item, len(choices))
	cursor := 0
	for i, c := range choices {
		items[i] = choiceItem{choice: c}
		if config.Equal(c.Value, current) {
			cursor = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Pagination takes two lines (margin and dots) and only appears once the
	// choices overflow maxVisible.
	height := len(items)
	paginate := height > maxVisible
	if paginate {
		height = maxVisible + 2
	}

	l := list.New(items, delegate, 60, height)
	l.Title = ""
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(paginate)
	l.Select(cursor)

	return &selectModel{
		label:   label,
		problem: problem,
		list:    l,
	}
}

func (m *selectModel) Init() tea.Cmd {
	return nil
}

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownMsg:
		m.remaining = msg.remaining
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.interrupted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if item, ok := m.list.SelectedItem().(choiceItem); ok {
				m.selected = item.choice
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *selectModel) View() string {
	if m.done || m.interrupted {
		return ""
	}

	var b strings.Builder
	if m.label != "" {
		b.WriteString(m.label)
		b.WriteString("\n")
	}
	if m.problem != "" {
		b.WriteString(problemStyle.Render(m.problem))
		b.WriteString("\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.remaining > 0 {
		b.WriteString(countdownStyle.Render(fmt.Sprintf("Default configuration in %d seconds", m.remaining)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("↑/↓ to move, Enter to select."))
	b.WriteString("\n")
	return b.String()
}
