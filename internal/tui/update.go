package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the replay and the repaint loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		revealNext(m.cfg.Replay.Interval()),
		repaintTick(),
	)
}

// Update handles messages for the timeline viewer.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case revealMsg:
		return m.revealNextPacket()

	case repaintMsg:
		m = m.confirmRenderIfSettled()
		return m, repaintTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.scheduler.Close()
		return m, tea.Quit

	case "e":
		m.isExpanded = !m.isExpanded
		return m, nil

	case "tab":
		if group := m.activeGroup(); group != nil && len(group.Steps) > 1 {
			m.activeTab = (m.clampedTab() + 1) % len(group.Steps)
		}
		return m, nil
	}

	return m, nil
}

// revealNextPacket feeds one more recorded packet to the engine and
// reschedules itself until the stream is exhausted.
func (m Model) revealNextPacket() (tea.Model, tea.Cmd) {
	if m.revealed >= len(m.stream) {
		return m, nil
	}
	m.revealed++

	m.snapshot = m.engine.Process(m.stream[:m.revealed], m.sessionKey)
	m.scheduler.Observe(m.snapshot, m.sessionKey)

	if m.revealed < len(m.stream) {
		return m, revealNext(m.cfg.Replay.Interval())
	}
	return m, nil
}

// confirmRenderIfSettled reports render completion back to the engine
// once the stream has stopped and everything delivered is on screen,
// and reveals the answer after the tool UI has settled.
func (m Model) confirmRenderIfSettled() Model {
	if !m.snapshot.StopPacketSeen {
		return m
	}
	if !m.allToolsDisplayed {
		m.allToolsDisplayed = true
		m.snapshot = m.engine.MarkAllToolsDisplayed()
	}
	if !m.renderConfirmed {
		m.renderConfirmed = true
		m.snapshot = m.engine.OnRenderComplete()
	}
	m.scheduler.Observe(m.snapshot, m.sessionKey)
	return m
}
