// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/podium/internal/config"
	"github.com/xvierd/podium/internal/countdown"
	"github.com/xvierd/podium/internal/domain"
)

// refreshInterval is the TUI poll cadence. The countdown itself ticks
// once per second inside the controller; the view refreshes faster so
// alerts and color changes show up without a visible lag.
const refreshInterval = 200 * time.Millisecond

// tickMsg is sent on every view refresh.
type tickMsg time.Time

// Model renders one countdown controller. All timer state lives in the
// controller; the model only polls snapshots and forwards key presses.
type Model struct {
	controller *countdown.Controller
	snap       countdown.Snapshot
	progress   progress.Model
	theme      config.ThemeConfig
	title      string

	width  int
	height int

	confirmStop bool
	sawTimeUp   bool
}

// NewModel creates a TUI model bound to the given controller.
func NewModel(controller *countdown.Controller, theme config.ThemeConfig, title string) Model {
	return Model{
		controller: controller,
		snap:       controller.Snapshot(),
		progress:   progress.New(progress.WithGradient(theme.ColorRed, theme.ColorGreen)),
		theme:      theme,
		title:      title,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// timerColor returns the hex color for the current urgency band,
// accounting for pause state.
func (m Model) timerColor() lipgloss.Color {
	if m.snap.Paused {
		return lipgloss.Color(m.theme.ColorHelp)
	}
	return lipgloss.Color(m.theme.TimerColorHex(m.snap.Color))
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.controller.Start()
			m.confirmStop = false
		case "p", " ":
			if m.snap.Paused {
				m.controller.Resume()
			} else {
				m.controller.Pause()
			}
			m.confirmStop = false
		case "r":
			m.controller.Reset()
			m.confirmStop = false
		case "f":
			if m.snap.Idle() {
				break
			}
			if m.confirmStop {
				m.controller.Stop()
				m.confirmStop = false
			} else {
				m.confirmStop = true
			}
		case "h":
			m.controller.SetHideCountdown(!m.snap.HideCountdown)
		default:
			m.confirmStop = false
		}
		m.snap = m.controller.Snapshot()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4

	case tickMsg:
		m.snap = m.controller.Snapshot()
		if m.snap.Alert == domain.AlertTimeUp {
			m.sawTimeUp = true
		}
		return m, tickCmd()
	}

	newProgress, cmd := m.progress.Update(msg)
	if p, ok := newProgress.(progress.Model); ok {
		m.progress = p
	}
	return m, cmd
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	heading := fmt.Sprintf("%s Podium — %s", m.theme.IconApp, domain.GetSpeechTypeLabel(m.snap.SpeechType))
	sections = append(sections, titleStyle.Render(heading))

	if m.title != "" {
		speechStyle := lipgloss.NewStyle().Italic(true).Faint(true)
		sections = append(sections, speechStyle.Render(m.title))
	}

	if m.snap.Idle() {
		sections = m.viewIdle(sections)
	} else {
		sections = m.viewActive(sections)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewIdle(sections []string) []string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	statusStyle := lipgloss.NewStyle().Foreground(m.timerColor())

	sections = append(sections, "")
	sections = append(sections, renderBigClock(m.snap.Clock().String(), m.timerColor(), m.width))

	if run, ok := m.controller.LastRun(); ok && run.Completed && m.sawTimeUp {
		sections = append(sections, "")
		sections = append(sections, statusStyle.Render(fmt.Sprintf("Finished — %s practiced", domain.ClockFromSeconds(run.ElapsedSeconds))))
	}

	if m.snap.Alert != "" {
		sections = append(sections, "")
		sections = append(sections, m.renderAlert())
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("[s]tart  [q]uit"))
	return sections
}

func (m Model) viewActive(sections []string) []string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	sections = append(sections, "")
	if m.snap.HideCountdown {
		// Blind run: the digits stay hidden, the color band is the
		// only timing cue.
		sections = append(sections, renderBigClock("••:••", m.timerColor(), m.width))
	} else {
		sections = append(sections, renderBigClock(m.snap.Clock().String(), m.timerColor(), m.width))
	}

	if m.snap.Paused {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorHelp)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "")
		sections = append(sections, pauseBadge)
	}

	if m.snap.Alert != "" {
		sections = append(sections, "")
		sections = append(sections, m.renderAlert())
	}

	if !m.snap.HideCountdown {
		sections = append(sections, "")
		sections = append(sections, m.progress.ViewAs(m.snap.Progress))
	}

	sections = append(sections, "")
	if m.confirmStop {
		sections = append(sections, helpStyle.Render("Stop the run? [f] confirm  [esc] cancel"))
	} else {
		pauseAction := "[p]ause"
		if m.snap.Paused {
			pauseAction = "[p]resume"
		}
		hideAction := "[h]ide"
		if m.snap.HideCountdown {
			hideAction = "[h] show"
		}
		sections = append(sections, helpStyle.Render(fmt.Sprintf("%s  [r]eset  [f]inish  %s  [q]uit", pauseAction, hideAction)))
	}
	return sections
}

// renderAlert renders the transient alert banner.
func (m Model) renderAlert() string {
	alertStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorAlert))
	return alertStyle.Render(fmt.Sprintf("%s %s", m.theme.IconAlert, m.snap.Alert))
}

// tickCmd creates a command that sends the next refresh message.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the full-screen timer interface and blocks until the user
// quits. The controller keeps running on its own tick; quitting the
// view does not stop a run in progress.
func Run(ctx context.Context, controller *countdown.Controller, theme config.ThemeConfig, title string) error {
	model := NewModel(controller, theme, title)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
