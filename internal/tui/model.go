// Package tui renders a live agent-execution timeline in the terminal.
// It is a consumer of the timeline engine: packets stream in, the
// engine reduces them, the pacing scheduler smooths transitions, and
// the uistate machine picks what to draw. Nothing here feeds back into
// the engine beyond the render-complete and force-show signals.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/tracetide/tracetide/internal/config"
	"github.com/tracetide/tracetide/internal/logging"
	"github.com/tracetide/tracetide/internal/pacing"
	"github.com/tracetide/tracetide/internal/packet"
	"github.com/tracetide/tracetide/internal/timeline"
	"github.com/tracetide/tracetide/internal/tui/styles"
)

// Model holds the timeline viewer state
type Model struct {
	cfg    *config.Config
	logger *logging.Logger

	engine     *timeline.Engine
	scheduler  *pacing.Scheduler
	sessionKey string

	// Replay stream: the full recorded packet list and how much of it
	// has been revealed to the engine so far.
	stream   []packet.Packet
	revealed int

	snapshot timeline.Snapshot

	// UI state
	isExpanded        bool
	activeTab         int
	renderConfirmed   bool
	allToolsDisplayed bool
	spinner           spinner.Model
	width             int
	height            int
	quitting          bool
}

// NewModel creates a timeline viewer for a recorded packet stream.
func NewModel(cfg *config.Config, logger *logging.Logger, sessionKey string, stream []packet.Packet) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.PrimaryColor)

	return Model{
		cfg:        cfg,
		logger:     logger,
		engine:     timeline.NewEngine(logger),
		scheduler:  pacing.NewScheduler(cfg.Pacing.SettleInterval(), nil),
		sessionKey: sessionKey,
		stream:     stream,
		isExpanded: cfg.TUI.Expanded,
		spinner:    sp,
	}
}

// paced returns the scheduler's currently visible view.
func (m Model) paced() pacing.View {
	return m.scheduler.Paced()
}

// activeGroup returns the paced turn group the tab selector points at,
// or nil when no groups are visible.
func (m Model) activeGroup() *timeline.TurnGroup {
	groups := m.paced().TurnGroups
	if len(groups) == 0 {
		return nil
	}
	return groups[len(groups)-1]
}

// clampedTab returns the active tab index clamped to the active group's
// step count, so a shrinking branch list never leaves the selector
// dangling.
func (m Model) clampedTab() int {
	group := m.activeGroup()
	if group == nil || len(group.Steps) == 0 {
		return 0
	}
	if m.activeTab >= len(group.Steps) {
		return len(group.Steps) - 1
	}
	return m.activeTab
}
