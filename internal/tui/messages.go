package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// revealMsg asks the model to reveal the next recorded packet to the
// engine.
type revealMsg struct{}

// repaintMsg triggers a periodic repaint so paced transitions become
// visible even when no new packets arrive.
type repaintMsg struct{}

// revealNext schedules the next packet reveal at the replay cadence.
func revealNext(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return revealMsg{}
	})
}

// repaintTick keeps the view refreshing while the scheduler may be
// holding a transition.
func repaintTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return repaintMsg{}
	})
}
