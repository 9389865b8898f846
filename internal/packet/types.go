// Package packet defines the typed vocabulary of agent-execution stream
// events and the placement coordinates that position them on the timeline.
// Payloads form an open tagged union: new kinds can be added without
// touching the grouping logic downstream.
package packet

import "encoding/json"

// Kind identifies the payload variant carried by a packet.
// Convention: lowercase snake_case matching the wire representation.
type Kind string

const (
	KindToolStart            Kind = "tool_start"
	KindToolDelta            Kind = "tool_delta"
	KindSectionEnd           Kind = "section_end"
	KindMessageStart         Kind = "message_start"
	KindMessageDelta         Kind = "message_delta"
	KindCitationInfo         Kind = "citation_info"
	KindTopLevelBranching    Kind = "top_level_branching"
	KindImageGenerationDelta Kind = "image_generation_delta"
	KindStop                 Kind = "stop"
)

// Placement identifies which timeline step a packet belongs to.
// TurnIndex orders the sequential phases of agent execution; TabIndex
// distinguishes concurrently executing branches within the same turn
// (0 when the turn is not parallel).
type Placement struct {
	TurnIndex int
	TabIndex  int
}

// Packet is one immutable event in the agent-execution stream.
type Packet struct {
	Placement Placement
	Payload   Payload
}

// Payload is the interface all packet payloads implement.
type Payload interface {
	// PayloadKind returns the discriminator for this payload variant.
	PayloadKind() Kind
}

// ToolKind identifies which tool an execution step is running.
type ToolKind string

const (
	ToolGeneric         ToolKind = "tool"
	ToolWebSearch       ToolKind = "web_search"
	ToolCodeExecution   ToolKind = "code_execution"
	ToolReasoning       ToolKind = "reasoning"
	ToolResearchAgent   ToolKind = "research_agent"
	ToolImageGeneration ToolKind = "image_generation"
)

// IsSearch reports whether the tool performs a search action.
func (t ToolKind) IsSearch() bool {
	return t == ToolWebSearch
}

// IsResearchAgent reports whether the tool is the long-running research
// agent, which renders its own terminal marker in the timeline.
func (t ToolKind) IsResearchAgent() bool {
	return t == ToolResearchAgent
}

// IsImageGeneration reports whether the tool generates images.
func (t ToolKind) IsImageGeneration() bool {
	return t == ToolImageGeneration
}

// SupportsCollapsedStreaming reports whether intermediate output for this
// tool can stream into the collapsed (compact) timeline row. Tools whose
// deltas are textual summaries stream well collapsed; opaque tools do not.
func (t ToolKind) SupportsCollapsedStreaming() bool {
	switch t {
	case ToolWebSearch, ToolResearchAgent, ToolReasoning:
		return true
	default:
		return false
	}
}

// StopReason is the backend-reported cause of stream termination.
type StopReason string

const (
	StopReasonNone          StopReason = ""
	StopReasonEndTurn       StopReason = "end_turn"
	StopReasonUserCancelled StopReason = "user_cancelled"
	StopReasonError         StopReason = "error"
)

// IsUserCancelled reports whether the stream stopped because the user
// cancelled the interaction.
func (r StopReason) IsUserCancelled() bool {
	return r == StopReasonUserCancelled
}

// -----------------------------------------------------------------------------
// Payload variants
// -----------------------------------------------------------------------------

// ToolStart announces that a tool invocation has begun for its step.
type ToolStart struct {
	Tool ToolKind // Which tool is running
}

func (ToolStart) PayloadKind() Kind { return KindToolStart }

// ToolDelta carries an intermediate chunk of tool output. The engine
// groups deltas but never interprets their contents.
type ToolDelta struct {
	Data json.RawMessage // Opaque tool-specific progress data
}

func (ToolDelta) PayloadKind() Kind { return KindToolDelta }

// SectionEnd marks the step at its placement as finished streaming.
type SectionEnd struct{}

func (SectionEnd) PayloadKind() Kind { return KindSectionEnd }

// MessageStart announces the beginning of the final answer message.
type MessageStart struct {
	ID string // Backend identifier for the message

	// PreAnswerProcessingSeconds is the backend-reported wall-clock time
	// spent in tool execution before the answer began. Nil when the
	// backend did not report one.
	PreAnswerProcessingSeconds *float64
}

func (MessageStart) PayloadKind() Kind { return KindMessageStart }

// MessageDelta carries a chunk of final answer text.
type MessageDelta struct {
	Text string
}

func (MessageDelta) PayloadKind() Kind { return KindMessageDelta }

// CitationInfo maps a citation number in the answer text to a source
// document. Later packets for the same number overwrite the mapping;
// documents may be enriched after first citation.
type CitationInfo struct {
	CitationNumber int
	DocumentID     string
}

func (CitationInfo) PayloadKind() Kind { return KindCitationInfo }

// TopLevelBranching declares that a turn will execute parallel branches.
// It carries no step content of its own; it only informs parallel
// detection for its turn, and may arrive before or after the branch
// steps themselves.
type TopLevelBranching struct {
	NumParallelBranches int
}

func (TopLevelBranching) PayloadKind() Kind { return KindTopLevelBranching }

// GeneratedImage is one image produced by the image generation tool.
type GeneratedImage struct {
	ID  string
	URL string
}

// ImageGenerationDelta carries images produced so far by the image
// generation tool.
type ImageGenerationDelta struct {
	Images []GeneratedImage
}

func (ImageGenerationDelta) PayloadKind() Kind { return KindImageGenerationDelta }

// Stop marks the end of the stream.
type Stop struct {
	Reason StopReason // Why the stream stopped; empty if the backend gave none
}

func (Stop) PayloadKind() Kind { return KindStop }

// Unknown preserves a payload whose kind this build does not recognize.
// Unknown packets still group into steps so the timeline can render
// "a step happened" rather than dropping the event.
type Unknown struct {
	Kind Kind            // The unrecognized wire kind
	Data json.RawMessage // The raw payload body, untouched
}

func (u Unknown) PayloadKind() Kind { return u.Kind }
