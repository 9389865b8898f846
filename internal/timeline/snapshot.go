package timeline

import "github.com/tracetide/tracetide/internal/packet"

// Snapshot is the externally visible result of one Process call: the
// grouped timeline plus every fact the tracker derives from it.
//
// A Snapshot is a consistent view as of its Version. The top-level
// slices and maps are freshly allocated on every publish, so holding an
// old Snapshot is safe; the Step and TurnGroup values they point at are
// shared with the engine and grow append-only as new packets arrive.
// Consumers must never mutate anything reachable from a Snapshot —
// compare Version numbers to detect change instead.
type Snapshot struct {
	// Version increases on every Process call and every flag change,
	// and survives session resets, so it is monotonic for the lifetime
	// of the engine. Consumers compare versions to detect change.
	Version uint64

	// ToolGroups lists every tool step in discovery order.
	ToolGroups []*Step

	// ToolTurnGroups lists the turns containing tool steps, in turn
	// order.
	ToolTurnGroups []*TurnGroup

	// DisplayGroups lists the final-answer steps, but only once the
	// engine believes the answer should be shown (FinalAnswerComing or
	// the force-show escape hatch). Empty otherwise, even when answer
	// packets have arrived.
	DisplayGroups []*Step

	// Citations lists citation numbers in first-seen order, de-duplicated.
	Citations []int

	// CitationMap maps citation number to the most recently reported
	// document for it.
	CitationMap map[int]string

	// StopPacketSeen is true once any Stop packet was observed this
	// session.
	StopPacketSeen bool

	// StopReason is the reason from the most recent Stop packet.
	StopReason packet.StopReason

	// FinalAnswerComing is true while the most recently discovered step
	// is the final answer rather than a tool action.
	FinalAnswerComing bool

	// IsGeneratingImage is true while image generation output has been
	// seen and the stream has not stopped.
	IsGeneratingImage bool

	// GeneratedImageCount is the cumulative number of images reported
	// by image generation deltas this session.
	GeneratedImageCount int

	// ToolProcessingDuration is the backend-reported seconds spent on
	// tool execution before the answer began. Nil when unreported.
	ToolProcessingDuration *float64

	// ExpectedBranches maps turn index to the branch count declared for
	// it, for turns that declared one.
	ExpectedBranches map[int]int

	// HasSteps is true once any tool step exists.
	HasSteps bool

	// IsComplete is true once the stream has stopped and the consumer
	// has reported that it finished rendering the delivered content.
	IsComplete bool
}

// HasDisplayContent reports whether any final-answer content is ready to
// show.
func (s Snapshot) HasDisplayContent() bool {
	return len(s.DisplayGroups) > 0
}

// CurrentTurnGroup returns the most recently discovered tool turn group,
// or nil when no tool steps exist yet.
func (s Snapshot) CurrentTurnGroup() *TurnGroup {
	if len(s.ToolTurnGroups) == 0 {
		return nil
	}
	return s.ToolTurnGroups[len(s.ToolTurnGroups)-1]
}
