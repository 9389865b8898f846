// Package uistate derives the timeline's display state from engine
// facts. Both derivations are pure functions with no rendering concern,
// so every reachable input combination can be tested in isolation.
package uistate

// State is the timeline's resolved display state. Exactly one state
// holds for any combination of inputs.
type State int

const (
	// StateEmpty: nothing has arrived yet.
	StateEmpty State = iota
	// StateDisplayContentOnly: the agent answered without running any
	// tool, so only the answer is shown.
	StateDisplayContentOnly
	// StateStreamingSequential: tool steps are streaming one turn at a
	// time.
	StateStreamingSequential
	// StateStreamingParallel: the current turn is streaming concurrent
	// branches.
	StateStreamingParallel
	// StateStopped: the user cancelled the interaction.
	StateStopped
	// StateCompletedCollapsed: the interaction finished and the step
	// list is collapsed to its compact form.
	StateCompletedCollapsed
	// StateCompletedExpanded: the interaction finished and the user
	// expanded the step list.
	StateCompletedExpanded
)

// String returns a short identifier for the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDisplayContentOnly:
		return "display_content_only"
	case StateStreamingSequential:
		return "streaming_sequential"
	case StateStreamingParallel:
		return "streaming_parallel"
	case StateStopped:
		return "stopped"
	case StateCompletedCollapsed:
		return "completed_collapsed"
	case StateCompletedExpanded:
		return "completed_expanded"
	default:
		return "unknown"
	}
}

// Inputs are the facts the state derivation reads. All but IsExpanded
// come from the (paced) engine snapshot; IsExpanded is operator intent
// supplied by the consumer.
type Inputs struct {
	// HasSteps is true once any tool step exists.
	HasSteps bool
	// HasDisplayContent is true once final-answer content is exposed.
	HasDisplayContent bool
	// StopPacketSeen is true once the stream has stopped.
	StopPacketSeen bool
	// UserStopped is true when the stop reason was a user cancellation.
	UserStopped bool
	// IsParallel is true when the current turn group streams branches.
	IsParallel bool
	// IsGeneratingImage is true while image output is streaming.
	IsGeneratingImage bool
	// IsExpanded is the user's expand/collapse toggle.
	IsExpanded bool
}

// Derive resolves the display state for the given inputs. It is total:
// an input combination matching no rule falls back to the collapsed
// completed view, the safest thing to draw for a stream the engine did
// not anticipate, because a malformed backend payload must never take
// down the render path.
func Derive(in Inputs) State {
	switch {
	case !in.HasSteps && !in.HasDisplayContent && !in.StopPacketSeen:
		return StateEmpty
	case in.HasDisplayContent && !in.HasSteps && !in.IsGeneratingImage:
		return StateDisplayContentOnly
	case !in.StopPacketSeen && (!in.HasDisplayContent || in.IsGeneratingImage):
		if in.IsParallel {
			return StateStreamingParallel
		}
		return StateStreamingSequential
	case in.StopPacketSeen && in.UserStopped:
		return StateStopped
	case in.StopPacketSeen && in.IsExpanded:
		return StateCompletedExpanded
	case in.StopPacketSeen:
		return StateCompletedCollapsed
	default:
		return StateCompletedCollapsed
	}
}
