// ABOUTME: Bubbletea model for the loudness meter TUI
// ABOUTME: Renders a live level bar with session counters
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Faint(true)
	helpStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
)

// LevelMsg carries one normalized loudness sample in [0.08, 1.0].
type LevelMsg float64

// StatsMsg carries scheduler counters for display.
type StatsMsg struct {
	Received int64
	Played   int64
	Dropped  int64
}

// Model represents the meter TUI state.
type Model struct {
	sessionID string
	level     float64
	received  int64
	played    int64
	dropped   int64
	meter     progress.Model
	width     int
	height    int
}

// NewModel creates the meter model for a session.
func NewModel(sessionID string) Model {
	m := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.Width = 50

	return Model{
		sessionID: sessionID,
		meter:     m,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 4
		if w > 60 {
			w = 60
		}
		if w > 0 {
			m.meter.Width = w
		}
	case LevelMsg:
		m.level = float64(msg)
	case StatsMsg:
		m.received = msg.Received
		m.played = msg.Played
		m.dropped = msg.Dropped
	}

	return m, nil
}

// View renders the meter.
func (m Model) View() string {
	s := titleStyle.Render("VoiceWire Player") + "\n\n"
	s += m.meter.ViewAs(m.level) + "\n\n"
	s += labelStyle.Render(fmt.Sprintf("session %s", m.sessionID)) + "\n"
	s += labelStyle.Render(fmt.Sprintf("chunks %d  played %d  dropped %d",
		m.received, m.played, m.dropped)) + "\n\n"
	s += helpStyle.Render("press q to quit")
	return s
}
