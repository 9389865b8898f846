package tui

import (
	"fmt"
	"strings"

	"github.com/tracetide/tracetide/internal/packet"
	"github.com/tracetide/tracetide/internal/timeline"
	"github.com/tracetide/tracetide/internal/tui/styles"
	"github.com/tracetide/tracetide/internal/uistate"
	"github.com/tracetide/tracetide/internal/util"
)

// View renders the timeline for the current display state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	in := m.inputs()
	state := uistate.Derive(in)
	flags := uistate.DeriveFlags(state, in, m.researchAgentLast())

	var b strings.Builder
	b.WriteString(styles.Title.Render("agent timeline") + "\n")

	switch state {
	case uistate.StateEmpty:
		b.WriteString(styles.Muted.Render("waiting for stream..."))

	case uistate.StateDisplayContentOnly:
		b.WriteString(m.renderAnswer())

	case uistate.StateStreamingSequential:
		b.WriteString(m.renderCollapsedGroup(flags))

	case uistate.StateStreamingParallel:
		if flags.ShowParallelTabs {
			b.WriteString(m.renderTabs() + "\n")
		}
		b.WriteString(m.renderCollapsedGroup(flags))

	case uistate.StateStopped:
		b.WriteString(m.renderExpandedSteps(flags))
		b.WriteString(styles.Error.Render("■ stopped by user") + "\n")

	case uistate.StateCompletedCollapsed:
		if flags.ShowParallelTabs {
			b.WriteString(m.renderTabs() + "\n")
		}
		b.WriteString(m.renderCollapsedSummary())
		b.WriteString(m.renderAnswer())

	case uistate.StateCompletedExpanded:
		b.WriteString(m.renderExpandedSteps(flags))
		if flags.HasDoneIndicator {
			b.WriteString(styles.StepMarker.Render("✓ done") + "\n")
		}
		b.WriteString(m.renderAnswer())
	}

	b.WriteString(m.renderFooter(state))
	return b.String()
}

// inputs assembles the state machine inputs from the paced view and the
// latest snapshot.
func (m Model) inputs() uistate.Inputs {
	paced := m.paced()
	group := m.activeGroup()

	return uistate.Inputs{
		HasSteps:          len(paced.TurnGroups) > 0,
		HasDisplayContent: len(paced.DisplayGroups) > 0,
		StopPacketSeen:    m.snapshot.StopPacketSeen,
		UserStopped:       m.snapshot.StopReason.IsUserCancelled(),
		IsParallel:        group != nil && group.IsParallel(),
		IsGeneratingImage: m.snapshot.IsGeneratingImage,
		IsExpanded:        m.isExpanded,
	}
}

// researchAgentLast reports whether the timeline's terminal tool step
// runs the research agent.
func (m Model) researchAgentLast() bool {
	groups := m.paced().TurnGroups
	if len(groups) == 0 {
		return false
	}
	steps := groups[len(groups)-1].Steps
	if len(steps) == 0 {
		return false
	}
	return steps[len(steps)-1].IsResearchAgent()
}

// renderCollapsedGroup draws the active turn group in its compact
// streaming form.
func (m Model) renderCollapsedGroup(flags uistate.Flags) string {
	group := m.activeGroup()
	if group == nil {
		return ""
	}

	var step *timeline.Step
	if flags.ShowCollapsedParallel {
		step = group.Steps[m.clampedTab()]
	} else if len(group.Steps) > 0 {
		step = group.Steps[0]
	}
	if step == nil {
		return ""
	}

	line := m.spinner.View() + " " + styles.StepActive.Render(stepLabel(step))
	if step.SupportsCollapsedStreaming() && !step.IsComplete {
		line += styles.Muted.Render(" · streaming")
	}
	return m.fit(line) + "\n"
}

// fit truncates a styled line to the terminal width. Lines pass through
// unchanged before the first WindowSizeMsg arrives.
func (m Model) fit(line string) string {
	if m.width <= 0 {
		return line
	}
	return util.TruncateANSI(line, m.width)
}

// renderExpandedSteps draws every turn group as full rows.
func (m Model) renderExpandedSteps(flags uistate.Flags) string {
	var b strings.Builder
	for _, group := range m.paced().TurnGroups {
		for _, step := range group.Steps {
			marker := "•"
			style := styles.StepActive
			if step.IsComplete {
				marker = "✓"
				style = styles.StepComplete
			}
			b.WriteString(m.fit(styles.StepMarker.Render(marker)+" "+style.Render(stepLabel(step))) + "\n")
		}
	}
	return b.String()
}

// renderCollapsedSummary draws the one-line completed summary.
func (m Model) renderCollapsedSummary() string {
	count := len(m.paced().TurnGroups)
	label := fmt.Sprintf("%d steps", count)
	if count == 1 {
		label = "1 step"
	}
	if d := m.snapshot.ToolProcessingDuration; d != nil {
		label += fmt.Sprintf(" · %.0fs", *d)
	}
	return styles.Muted.Render("▸ "+label+" (e to expand)") + "\n"
}

// renderTabs draws the branch selector for the active parallel group.
func (m Model) renderTabs() string {
	group := m.activeGroup()
	if group == nil {
		return ""
	}

	active := m.clampedTab()
	var tabs []string
	for i := range group.Steps {
		label := fmt.Sprintf("branch %d", i+1)
		if i == active {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// renderAnswer draws the final answer text with its citations.
func (m Model) renderAnswer() string {
	paced := m.paced()
	if len(paced.DisplayGroups) == 0 {
		return ""
	}

	var b strings.Builder
	for _, step := range paced.DisplayGroups {
		text := step.Text()
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		if len(lines) > m.cfg.TUI.MaxAnswerLines {
			lines = lines[:m.cfg.TUI.MaxAnswerLines]
		}
		b.WriteString(styles.Answer.Render(strings.Join(lines, "\n")) + "\n")
	}

	if m.cfg.TUI.ShowCitations {
		for _, num := range m.snapshot.Citations {
			line := styles.Citation.Render(fmt.Sprintf("[%d] %s", num, m.snapshot.CitationMap[num]))
			b.WriteString(m.fit(line) + "\n")
		}
	}
	return b.String()
}

// renderFooter draws the key hints.
func (m Model) renderFooter(state uistate.State) string {
	hints := []string{"q quit"}
	switch state {
	case uistate.StateCompletedCollapsed, uistate.StateCompletedExpanded, uistate.StateStopped:
		hints = append(hints, "e expand/collapse")
	case uistate.StateStreamingParallel:
		hints = append(hints, "tab switch branch")
	}
	return styles.Help.Render(strings.Join(hints, " · "))
}

// stepLabel names a step row by what it does.
func stepLabel(step *timeline.Step) string {
	if step.IsDisplay {
		return "writing answer"
	}
	switch step.Tool {
	case packet.ToolWebSearch:
		return "searching the web"
	case packet.ToolCodeExecution:
		return "running code"
	case packet.ToolReasoning:
		return "thinking"
	case packet.ToolResearchAgent:
		return "researching"
	case packet.ToolImageGeneration:
		return "generating image"
	case packet.ToolGeneric:
		return "using tool"
	default:
		if step.Tool == "" {
			return "working"
		}
		return string(step.Tool)
	}
}
