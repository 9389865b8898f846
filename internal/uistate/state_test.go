package uistate

import "testing"

// allInputs enumerates every combination of the seven state inputs.
func allInputs() []Inputs {
	var combos []Inputs
	for mask := 0; mask < 1<<7; mask++ {
		combos = append(combos, Inputs{
			HasSteps:          mask&(1<<0) != 0,
			HasDisplayContent: mask&(1<<1) != 0,
			StopPacketSeen:    mask&(1<<2) != 0,
			UserStopped:       mask&(1<<3) != 0,
			IsParallel:        mask&(1<<4) != 0,
			IsGeneratingImage: mask&(1<<5) != 0,
			IsExpanded:        mask&(1<<6) != 0,
		})
	}
	return combos
}

func TestDerive_Total(t *testing.T) {
	valid := map[State]bool{
		StateEmpty:               true,
		StateDisplayContentOnly:  true,
		StateStreamingSequential: true,
		StateStreamingParallel:   true,
		StateStopped:             true,
		StateCompletedCollapsed:  true,
		StateCompletedExpanded:   true,
	}

	for _, in := range allInputs() {
		state := Derive(in)
		if !valid[state] {
			t.Errorf("Inputs %+v resolved to invalid state %v", in, state)
		}
	}
}

func TestDerive_Empty(t *testing.T) {
	state := Derive(Inputs{})
	if state != StateEmpty {
		t.Errorf("No steps, no content, no stop: expected empty, got %v", state)
	}
}

func TestDerive_DisplayContentOnly(t *testing.T) {
	state := Derive(Inputs{HasDisplayContent: true})
	if state != StateDisplayContentOnly {
		t.Errorf("Answer with no tool steps: expected display_content_only, got %v", state)
	}

	// Holds even after stop: the answer-only view has no step chrome.
	state = Derive(Inputs{HasDisplayContent: true, StopPacketSeen: true})
	if state != StateDisplayContentOnly {
		t.Errorf("Answer-only after stop: expected display_content_only, got %v", state)
	}
}

func TestDerive_DisplayContentOnlyExcludedWhileGeneratingImage(t *testing.T) {
	state := Derive(Inputs{HasDisplayContent: true, IsGeneratingImage: true})
	if state == StateDisplayContentOnly {
		t.Error("Active image generation must keep the streaming view")
	}
}

func TestDerive_Streaming(t *testing.T) {
	state := Derive(Inputs{HasSteps: true})
	if state != StateStreamingSequential {
		t.Errorf("Steps without stop: expected streaming_sequential, got %v", state)
	}

	state = Derive(Inputs{HasSteps: true, IsParallel: true})
	if state != StateStreamingParallel {
		t.Errorf("Parallel turn without stop: expected streaming_parallel, got %v", state)
	}

	// Display content plus an actively generating image stays streaming.
	state = Derive(Inputs{HasSteps: true, HasDisplayContent: true, IsGeneratingImage: true})
	if state != StateStreamingSequential {
		t.Errorf("Image generation with content: expected streaming_sequential, got %v", state)
	}
}

func TestDerive_Stopped(t *testing.T) {
	state := Derive(Inputs{HasSteps: true, StopPacketSeen: true, UserStopped: true})
	if state != StateStopped {
		t.Errorf("User cancellation: expected stopped, got %v", state)
	}
}

func TestDerive_Completed(t *testing.T) {
	in := Inputs{HasSteps: true, StopPacketSeen: true}

	if state := Derive(in); state != StateCompletedCollapsed {
		t.Errorf("Completed without expand: expected completed_collapsed, got %v", state)
	}

	in.IsExpanded = true
	if state := Derive(in); state != StateCompletedExpanded {
		t.Errorf("Completed with expand: expected completed_expanded, got %v", state)
	}
}

func TestDerive_UnhandledCombinationFallsBackSafely(t *testing.T) {
	// Steps and visible answer while still streaming matches no rule;
	// the machine must degrade to the collapsed completed view rather
	// than fail.
	state := Derive(Inputs{HasSteps: true, HasDisplayContent: true})
	if state != StateCompletedCollapsed {
		t.Errorf("Unhandled combination must fall back to completed_collapsed, got %v", state)
	}
}

func TestDeriveFlags_Streaming(t *testing.T) {
	in := Inputs{HasSteps: true}
	flags := DeriveFlags(StateStreamingSequential, in, false)
	if !flags.ShowCollapsedCompact {
		t.Error("Sequential streaming should show the compact view")
	}
	if flags.ShowCollapsedParallel || flags.ShowParallelTabs {
		t.Error("Sequential streaming should not show parallel chrome")
	}

	in.IsParallel = true
	flags = DeriveFlags(StateStreamingParallel, in, false)
	if !flags.ShowCollapsedParallel {
		t.Error("Parallel streaming should show the parallel compact view")
	}
	if !flags.ShowParallelTabs {
		t.Error("Parallel streaming should show the tab selector")
	}
}

func TestDeriveFlags_ParallelTabsOnlyWhileCollapsed(t *testing.T) {
	in := Inputs{HasSteps: true, StopPacketSeen: true, IsParallel: true}

	flags := DeriveFlags(StateCompletedCollapsed, in, false)
	if !flags.ShowParallelTabs {
		t.Error("Collapsed completed parallel view should keep the tab selector")
	}

	in.IsExpanded = true
	flags = DeriveFlags(StateCompletedExpanded, in, false)
	if flags.ShowParallelTabs {
		t.Error("Expanded view should not show the tab selector")
	}
}

func TestDeriveFlags_TerminalMarkers(t *testing.T) {
	in := Inputs{HasSteps: true, StopPacketSeen: true, IsExpanded: true}

	flags := DeriveFlags(StateCompletedExpanded, in, false)
	if !flags.ShowDoneStep {
		t.Error("Expanded completed view should show the done marker")
	}
	if !flags.HasDoneIndicator {
		t.Error("Done indicator expected for non-research-agent timelines")
	}

	flags = DeriveFlags(StateCompletedExpanded, in, true)
	if flags.HasDoneIndicator {
		t.Error("Research agent renders its own marker; done indicator must be suppressed")
	}

	in.UserStopped = true
	flags = DeriveFlags(StateStopped, in, false)
	if !flags.ShowStoppedStep {
		t.Error("Expanded stopped view should show the stopped marker")
	}
	in.IsExpanded = false
	flags = DeriveFlags(StateStopped, in, false)
	if flags.ShowStoppedStep {
		t.Error("Collapsed stopped view should not show the stopped marker")
	}
}

func TestDeriveFlags_TotalOverAllStatesAndInputs(t *testing.T) {
	states := []State{
		StateEmpty, StateDisplayContentOnly, StateStreamingSequential,
		StateStreamingParallel, StateStopped, StateCompletedCollapsed,
		StateCompletedExpanded,
	}
	for _, state := range states {
		for _, in := range allInputs() {
			for _, research := range []bool{false, true} {
				flags := DeriveFlags(state, in, research)
				if flags.HasDoneIndicator && !flags.ShowDoneStep {
					t.Errorf("State %v inputs %+v: done indicator without done step", state, in)
				}
				if flags.ShowCollapsedCompact && flags.ShowCollapsedParallel {
					t.Errorf("State %v inputs %+v: compact and parallel views are exclusive", state, in)
				}
			}
		}
	}
}
