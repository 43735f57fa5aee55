package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/podium/internal/config"
	"github.com/xvierd/podium/internal/countdown"
	"github.com/xvierd/podium/internal/domain"
)

// InlineModel is a compact single-line timer for narrow terminals or
// when the full-screen view is unwanted. It shares nothing with the
// terminal below its own line, so output above it scrolls normally.
type InlineModel struct {
	controller *countdown.Controller
	snap       countdown.Snapshot
	progress   progress.Model
	theme      config.ThemeConfig
	title      string
	width      int
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// NewInlineModel creates a new inline TUI model.
func NewInlineModel(controller *countdown.Controller, theme config.ThemeConfig, title string) InlineModel {
	w := getTerminalWidth()
	pbar := progress.New(progress.WithGradient(theme.ColorRed, theme.ColorGreen))
	pbar.Width = w - 24

	return InlineModel{
		controller: controller,
		snap:       controller.Snapshot(),
		progress:   pbar,
		theme:      theme,
		title:      title,
		width:      w,
	}
}

func (m InlineModel) Init() tea.Cmd {
	return tickCmd()
}

func (m InlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.controller.Start()
		case "p", " ":
			if m.snap.Paused {
				m.controller.Resume()
			} else {
				m.controller.Pause()
			}
		case "r":
			m.controller.Reset()
		case "f":
			m.controller.Stop()
		case "h":
			m.controller.SetHideCountdown(!m.snap.HideCountdown)
		}
		m.snap = m.controller.Snapshot()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 24

	case tickMsg:
		m.snap = m.controller.Snapshot()
		return m, tickCmd()
	}

	return m, nil
}

func (m InlineModel) View() string {
	timerStyle := lipgloss.NewStyle().Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	alertStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorAlert))

	var parts []string
	parts = append(parts, m.theme.IconApp)

	clock := m.snap.Clock().String()
	if m.snap.HideCountdown && !m.snap.Idle() {
		clock = "••:••"
	}
	color := lipgloss.Color(m.theme.TimerColorHex(m.snap.Color))
	if m.snap.Paused {
		color = lipgloss.Color(m.theme.ColorHelp)
	}
	parts = append(parts, timerStyle.Foreground(color).Render(clock))

	if m.snap.Paused {
		parts = append(parts, helpStyle.Render(m.theme.IconPaused+" paused"))
	}

	if !m.snap.HideCountdown && !m.snap.Idle() {
		parts = append(parts, m.progress.ViewAs(m.snap.Progress))
	}

	if m.snap.Alert != "" {
		parts = append(parts, alertStyle.Render(m.theme.IconAlert+" "+m.snap.Alert))
	} else if m.title != "" {
		parts = append(parts, helpStyle.Render(m.title))
	}

	line := strings.Join(parts, "  ")

	help := "[s]tart"
	if !m.snap.Idle() {
		help = "[p]ause  [r]eset  [f]inish"
	}
	return fmt.Sprintf("%s\n%s\n", line, helpStyle.Render(fmt.Sprintf("%s  [q]uit  · %s", help, domain.GetSpeechTypeLabel(m.snap.SpeechType))))
}

// RunInline starts the compact inline timer and blocks until the user
// quits.
func RunInline(controller *countdown.Controller, theme config.ThemeConfig, title string) error {
	model := NewInlineModel(controller, theme, title)
	program := tea.NewProgram(model)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run inline TUI: %w", err)
	}
	return nil
}
