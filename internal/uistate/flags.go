package uistate

// Flags are the per-state display toggles the renderer reads. Each flag
// is a pure function of the resolved state and the inputs, so each is
// independently testable.
type Flags struct {
	// ShowCollapsedCompact: the single-step compact streaming view.
	ShowCollapsedCompact bool
	// ShowCollapsedParallel: the parallel compact streaming view.
	ShowCollapsedParallel bool
	// ShowParallelTabs: the branch tab selector, visible only while the
	// timeline is collapsed and the current turn is parallel.
	ShowParallelTabs bool
	// ShowDoneStep: the "done" terminal marker in the expanded view.
	ShowDoneStep bool
	// ShowStoppedStep: the "stopped" terminal marker in the expanded
	// view.
	ShowStoppedStep bool
	// HasDoneIndicator: whether a done indicator is drawn at all. The
	// research agent renders its own terminal marker, so it is
	// excluded here.
	HasDoneIndicator bool
}

// DeriveFlags resolves the display flags for a state. isResearchAgent
// reports whether the timeline's terminal step runs the research agent,
// which draws its own completion marker.
func DeriveFlags(state State, in Inputs, isResearchAgent bool) Flags {
	var f Flags

	f.ShowCollapsedCompact = state == StateStreamingSequential
	f.ShowCollapsedParallel = state == StateStreamingParallel
	f.ShowParallelTabs = state == StateStreamingParallel ||
		(state == StateCompletedCollapsed && in.IsParallel)
	f.ShowDoneStep = state == StateCompletedExpanded
	f.ShowStoppedStep = state == StateStopped && in.IsExpanded
	f.HasDoneIndicator = f.ShowDoneStep && !isResearchAgent

	return f
}
