package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/xvierd/podium/internal/config"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction. Index refers
// to the original item slice, not the filtered view.
type PickerResult struct {
	Index   int
	Aborted bool
}

type pickerModel struct {
	title   string
	items   []PickerItem
	visible []int // indices into items, in display order
	filter  textinput.Model
	cursor  int
	chosen  bool
	aborted bool
	theme   config.ThemeConfig
}

func newPickerModel(title string, items []PickerItem, theme config.ThemeConfig) pickerModel {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Prompt = "/ "
	filter.CharLimit = 40

	visible := make([]int, len(items))
	for i := range items {
		visible[i] = i
	}

	return pickerModel{
		title:   title,
		items:   items,
		visible: visible,
		filter:  filter,
		theme:   theme,
	}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if len(m.visible) > 0 {
			m.chosen = true
			return m, tea.Quit
		}
		return m, nil
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	}

	m.filter.Focus()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter narrows the visible items with a fuzzy match on labels.
func (m *pickerModel) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.visible = m.visible[:0]
		for i := range m.items {
			m.visible = append(m.visible, i)
		}
	} else {
		labels := make([]string, len(m.items))
		for i, item := range m.items {
			labels[i] = item.Label
		}
		matches := fuzzy.Find(query, labels)
		m.visible = m.visible[:0]
		for _, match := range matches {
			m.visible = append(m.visible, match.Index)
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

func (m pickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorGreen)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	arrowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorGreen)).Bold(true)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("    no matches") + "\n")
	}
	for pos, idx := range m.visible {
		item := m.items[idx]
		if pos == m.cursor {
			arrow := arrowStyle.Render("▸")
			line := activeStyle.Render(fmt.Sprintf(" %-12s %s", item.Label, item.Desc))
			b.WriteString(fmt.Sprintf("  %s%s\n", arrow, line))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    %-12s %s", item.Label, item.Desc)) + "\n")
		}
	}

	if m.filter.Value() != "" || m.filter.Focused() {
		b.WriteString("\n")
		b.WriteString("  " + m.filter.View() + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ navigate · type to filter · enter select · esc back") + "\n")

	return b.String()
}

// RunPicker launches an interactive picker and returns the selected
// index into items.
func RunPicker(title string, items []PickerItem, theme config.ThemeConfig) PickerResult {
	m := newPickerModel(title, items, theme)

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(pickerModel)
	if final.aborted || !final.chosen {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.visible[final.cursor]}
}

// TextPromptResult holds the outcome of a text prompt.
type TextPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	title   string
	input   textinput.Model
	aborted bool
	theme   config.ThemeConfig
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + " ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  enter confirm · esc back") + "\n")

	return b.String()
}

// RunTextPrompt launches a styled single-line text prompt.
func RunTextPrompt(title, placeholder string, theme config.ThemeConfig) TextPromptResult {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	m := textPromptModel{
		title: title,
		input: ti,
		theme: theme,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return TextPromptResult{Aborted: true}
	}

	final := result.(textPromptModel)
	if final.aborted {
		return TextPromptResult{Aborted: true}
	}
	return TextPromptResult{Value: strings.TrimSpace(final.input.Value())}
}
