package timeline

import "github.com/tracetide/tracetide/internal/packet"

// Step is the unit of execution shown as one collapsible timeline row:
// every packet sharing one (turn, tab) placement, plus flags derived
// from those packets. A Step is created on the first packet for its
// placement and appended to as matching packets arrive; it is never
// deleted except on a full stream reset.
type Step struct {
	Placement packet.Placement

	// Packets holds every grouped packet for this placement, in arrival
	// order. Owned by the engine; consumers must treat it as read-only.
	Packets []packet.Packet

	// Tool identifies which tool this step runs. Empty for display
	// (final answer) steps and for steps whose first packet had an
	// unrecognized kind.
	Tool packet.ToolKind

	// IsDisplay marks a step carrying the final answer message rather
	// than a tool action.
	IsDisplay bool

	// IsComplete is set once a SectionEnd packet arrives for this step.
	IsComplete bool
}

// IsSearchTool reports whether the step runs a search tool.
func (s *Step) IsSearchTool() bool {
	return s.Tool.IsSearch()
}

// IsResearchAgent reports whether the step runs the research agent.
func (s *Step) IsResearchAgent() bool {
	return s.Tool.IsResearchAgent()
}

// SupportsCollapsedStreaming reports whether this step's intermediate
// output can stream into the collapsed timeline row.
func (s *Step) SupportsCollapsedStreaming() bool {
	if s.IsDisplay {
		return true
	}
	return s.Tool.SupportsCollapsedStreaming()
}

// Text concatenates the message text accumulated by this step's
// MessageDelta packets. Empty for tool steps.
func (s *Step) Text() string {
	var text string
	for _, p := range s.Packets {
		if delta, ok := p.Payload.(packet.MessageDelta); ok {
			text += delta.Text
		}
	}
	return text
}

// TurnGroup is the set of Steps sharing one turn index. A turn is
// parallel when it holds more than one step, or when a branching
// declaration promised more than one branch (the declaration may arrive
// before any branch step exists).
type TurnGroup struct {
	TurnIndex int

	// Steps holds the turn's steps in discovery order. Owned by the
	// engine; consumers must treat it as read-only.
	Steps []*Step

	// ExpectedBranches is the branch count declared by a
	// TopLevelBranching packet for this turn, or 0 if none was seen.
	ExpectedBranches int
}

// IsParallel reports whether this turn executes concurrent branches.
func (g *TurnGroup) IsParallel() bool {
	return len(g.Steps) > 1 || g.ExpectedBranches > 1
}

// BranchesComplete reports whether every declared branch has been
// discovered and finished streaming. When no branch count was declared,
// it falls back to all discovered steps being complete.
func (g *TurnGroup) BranchesComplete() bool {
	if g.ExpectedBranches > 0 && len(g.Steps) < g.ExpectedBranches {
		return false
	}
	for _, s := range g.Steps {
		if !s.IsComplete {
			return false
		}
	}
	return true
}

// step returns the step for the given tab index, or nil.
func (g *TurnGroup) step(tabIndex int) *Step {
	for _, s := range g.Steps {
		if s.Placement.TabIndex == tabIndex {
			return s
		}
	}
	return nil
}
