// Package timeline reduces the growing packet stream of an agent
// execution into grouped steps, turn groups, and derived completion
// state, incrementally: each call folds in only the packets appended
// since the previous call.
package timeline

import (
	"maps"
	"slices"

	"github.com/tracetide/tracetide/internal/logging"
	"github.com/tracetide/tracetide/internal/packet"
)

// Engine incrementally groups stream packets into steps and turn groups
// and tracks completion, citation, and image-generation state.
//
// Engine is a single-writer structure: Process and the flag setters are
// expected to be called from one logical caller per session. The engine
// never returns an error; malformed input degrades the produced
// timeline instead of failing it.
type Engine struct {
	logger *logging.Logger

	sessionKey     string
	started        bool
	processedCount int
	version        uint64

	stepsByPlacement map[packet.Placement]*Step
	toolGroups       []*Step
	toolTurnGroups   []*TurnGroup
	turnsByIndex     map[int]*TurnGroup
	displaySteps     []*Step
	expectedBranches map[int]int

	citations   []int
	citationMap map[int]string

	stopSeen   bool
	stopReason packet.StopReason

	finalAnswerComing bool
	renderComplete    bool
	forceShowAnswer   bool

	imageSeen  bool
	imageCount int

	sawMessageStart       bool
	toolProcessingSeconds *float64
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NopLogger()
	}
	e := &Engine{logger: logger}
	e.clear()
	return e
}

// Process folds the packet stream into the grouped timeline and returns
// a snapshot of the result.
//
// packets must be the entire stream seen so far for the session
// identified by sessionKey. When packets extends the previously
// supplied list and sessionKey is unchanged, only the appended suffix
// is processed; cost per call is proportional to the new packets, not
// the whole stream. A changed sessionKey, or a list shorter than
// previously observed, discards all accumulated state and reprocesses
// from empty — a shrinking stream is the backend's signal of a retried
// turn, not an error.
func (e *Engine) Process(packets []packet.Packet, sessionKey string) Snapshot {
	if !e.started || sessionKey != e.sessionKey || len(packets) < e.processedCount {
		if e.started {
			e.logger.Debug("resetting timeline state",
				"session_key", sessionKey,
				"previous_session_key", e.sessionKey,
				"packet_count", len(packets),
				"processed_count", e.processedCount)
		}
		e.clear()
		e.started = true
		e.sessionKey = sessionKey
	}

	for _, p := range packets[e.processedCount:] {
		e.ingest(p)
	}
	e.processedCount = len(packets)

	e.version++
	return e.publish()
}

// OnRenderComplete records that the consumer finished painting the
// currently delivered content. The flag is one of the two halves of
// IsComplete; setting it repeatedly is a no-op. It goes stale (and is
// cleared) when a reset occurs or when a tool step supersedes an
// already-seen answer.
func (e *Engine) OnRenderComplete() Snapshot {
	e.renderComplete = true
	e.version++
	return e.publish()
}

// MarkAllToolsDisplayed forces DisplayGroups to be populated even while
// FinalAnswerComing is false. Consumers call it once their tool UI has
// finished its own settle animation and the answer should be revealed.
// The flag resets with the rest of the session state.
func (e *Engine) MarkAllToolsDisplayed() Snapshot {
	e.forceShowAnswer = true
	e.version++
	return e.publish()
}

// clear discards all per-session state. The version counter survives so
// snapshot versions stay monotonic across resets.
func (e *Engine) clear() {
	e.started = false
	e.sessionKey = ""
	e.processedCount = 0
	e.stepsByPlacement = make(map[packet.Placement]*Step)
	e.toolGroups = nil
	e.toolTurnGroups = nil
	e.turnsByIndex = make(map[int]*TurnGroup)
	e.displaySteps = nil
	e.expectedBranches = make(map[int]int)
	e.citations = nil
	e.citationMap = make(map[int]string)
	e.stopSeen = false
	e.stopReason = packet.StopReasonNone
	e.finalAnswerComing = false
	e.renderComplete = false
	e.forceShowAnswer = false
	e.imageSeen = false
	e.imageCount = 0
	e.sawMessageStart = false
	e.toolProcessingSeconds = nil
}

// ingest folds one packet into the grouped state.
func (e *Engine) ingest(p packet.Packet) {
	switch payload := p.Payload.(type) {
	case packet.TopLevelBranching:
		// Stream-scoped: records the declared branch count but never
		// creates a step. The declaration may arrive after branch
		// steps already exist, so the existing group is updated too.
		e.expectedBranches[p.Placement.TurnIndex] = payload.NumParallelBranches
		if g := e.turnsByIndex[p.Placement.TurnIndex]; g != nil {
			g.ExpectedBranches = payload.NumParallelBranches
		}
		return
	case packet.Stop:
		e.stopSeen = true
		e.stopReason = payload.Reason
		return
	case packet.CitationInfo:
		e.recordCitation(payload)
	case packet.ImageGenerationDelta:
		e.imageSeen = true
		e.imageCount += len(payload.Images)
	case packet.ToolStart:
		if payload.Tool.IsImageGeneration() {
			e.imageSeen = true
		}
	case packet.MessageStart:
		if !e.sawMessageStart {
			e.sawMessageStart = true
			e.toolProcessingSeconds = payload.PreAnswerProcessingSeconds
		}
	}

	e.appendToStep(p)
}

// appendToStep routes a packet to the step for its placement, creating
// the step (and its turn group, for tool steps) on first contact.
func (e *Engine) appendToStep(p packet.Packet) {
	if step, ok := e.stepsByPlacement[p.Placement]; ok {
		step.Packets = append(step.Packets, p)
		switch payload := p.Payload.(type) {
		case packet.SectionEnd:
			step.IsComplete = true
		case packet.ToolStart:
			if !step.IsDisplay && step.Tool == "" {
				step.Tool = payload.Tool
			}
		}
		return
	}

	step := newStep(p)
	e.stepsByPlacement[p.Placement] = step

	if step.IsDisplay {
		e.displaySteps = append(e.displaySteps, step)
	} else {
		e.toolGroups = append(e.toolGroups, step)
		group := e.turnsByIndex[p.Placement.TurnIndex]
		if group == nil {
			group = &TurnGroup{
				TurnIndex:        p.Placement.TurnIndex,
				ExpectedBranches: e.expectedBranches[p.Placement.TurnIndex],
			}
			e.turnsByIndex[p.Placement.TurnIndex] = group
			e.toolTurnGroups = append(e.toolTurnGroups, group)
		}
		group.Steps = append(group.Steps, step)
	}

	// The answer is "coming" while the newest discovered step is a
	// display step. A tool step discovered after an answer step flips
	// it back (the agent emitted a preliminary message, then chose to
	// call a tool) and invalidates any prior render-complete signal:
	// the consumer has not drawn the content that now supersedes it.
	wasComing := e.finalAnswerComing
	e.finalAnswerComing = step.IsDisplay
	if wasComing && !e.finalAnswerComing {
		e.renderComplete = false
	}
}

// newStep builds a step from its first packet. Message and citation
// payloads open display steps; everything else, recognized or not,
// opens a tool step so unknown kinds still render as "a step happened".
func newStep(p packet.Packet) *Step {
	step := &Step{
		Placement: p.Placement,
		Packets:   []packet.Packet{p},
	}
	switch payload := p.Payload.(type) {
	case packet.MessageStart, packet.MessageDelta, packet.CitationInfo:
		step.IsDisplay = true
	case packet.ToolStart:
		step.Tool = payload.Tool
	case packet.ImageGenerationDelta:
		step.Tool = packet.ToolImageGeneration
	case packet.SectionEnd:
		step.IsComplete = true
	}
	return step
}

// recordCitation upserts the citation mapping. Numbers keep their
// first-seen position in the ordered list; re-reports only refresh the
// document mapping (documents may be enriched after first citation).
func (e *Engine) recordCitation(c packet.CitationInfo) {
	if _, seen := e.citationMap[c.CitationNumber]; !seen {
		e.citations = append(e.citations, c.CitationNumber)
	}
	e.citationMap[c.CitationNumber] = c.DocumentID
}

// publish builds a snapshot of the current state. Top-level slices and
// maps are cloned so consumers can hold snapshots across calls; the
// steps and groups inside are shared, append-only values owned by the
// engine.
func (e *Engine) publish() Snapshot {
	snap := Snapshot{
		Version:                e.version,
		ToolGroups:             slices.Clone(e.toolGroups),
		ToolTurnGroups:         slices.Clone(e.toolTurnGroups),
		Citations:              slices.Clone(e.citations),
		CitationMap:            maps.Clone(e.citationMap),
		StopPacketSeen:         e.stopSeen,
		StopReason:             e.stopReason,
		FinalAnswerComing:      e.finalAnswerComing,
		IsGeneratingImage:      e.imageSeen && !e.stopSeen,
		GeneratedImageCount:    e.imageCount,
		ToolProcessingDuration: e.toolProcessingSeconds,
		ExpectedBranches:       maps.Clone(e.expectedBranches),
		HasSteps:               len(e.toolGroups) > 0,
		IsComplete:             e.stopSeen && e.renderComplete,
	}
	if e.finalAnswerComing || e.forceShowAnswer {
		snap.DisplayGroups = slices.Clone(e.displaySteps)
	}
	return snap
}
