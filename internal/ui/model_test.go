// ABOUTME: Tests for the meter TUI model
// ABOUTME: Tests level updates, stats updates and quit keys
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel("abc-123")

	if model.level != 0 {
		t.Errorf("expected initial level 0, got %f", model.level)
	}
	if model.sessionID != "abc-123" {
		t.Errorf("expected session id abc-123, got %s", model.sessionID)
	}
}

func TestLevelMsgUpdatesLevel(t *testing.T) {
	model := NewModel("abc-123")

	updated, _ := model.Update(LevelMsg(0.42))
	m := updated.(Model)

	if m.level != 0.42 {
		t.Errorf("expected level 0.42, got %f", m.level)
	}
}

func TestStatsMsgUpdatesCounters(t *testing.T) {
	model := NewModel("abc-123")

	updated, _ := model.Update(StatsMsg{Received: 7, Played: 5, Dropped: 2})
	m := updated.(Model)

	if m.received != 7 || m.played != 5 || m.dropped != 2 {
		t.Errorf("unexpected counters: %+v", m)
	}
}

func TestQuitKeys(t *testing.T) {
	model := NewModel("abc-123")

	quitKeys := []tea.KeyMsg{
		tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}}),
		tea.KeyMsg(tea.Key{Type: tea.KeyEsc}),
		tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC}),
	}

	for _, msg := range quitKeys {
		if _, cmd := model.Update(msg); cmd == nil {
			t.Errorf("expected quit command for key %q", msg.String())
		}
	}
}

func TestViewContainsSession(t *testing.T) {
	model := NewModel("abc-123")
	model.width = 80

	view := model.View()
	if !strings.Contains(view, "abc-123") {
		t.Error("expected view to contain session id")
	}
	if !strings.Contains(view, "press q to quit") {
		t.Error("expected view to contain help line")
	}
}
