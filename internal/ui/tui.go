// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the meter UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the meter TUI program. The caller drives it with
// LevelMsg and StatsMsg via Send.
func Run(sessionID string) *tea.Program {
	return tea.NewProgram(NewModel(sessionID))
}
