package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tracetide/tracetide/internal/config"
	"github.com/tracetide/tracetide/internal/timeline"
	"github.com/tracetide/tracetide/internal/uistate"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <stream.jsonl>",
	Short: "Reduce a packet stream and print the final timeline state",
	Long: `Dump feeds an entire recorded packet log through the timeline engine
in one pass and prints the resulting groups, citations, and resolved
display state. Useful for inspecting a stream without the viewer.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().Bool("json", false, "print the reduced state as JSON")
	rootCmd.AddCommand(dumpCmd)
}

// dumpResult is the serializable projection of a reduced stream.
type dumpResult struct {
	State               string         `json:"state"`
	TurnCount           int            `json:"turn_count"`
	StepCount           int            `json:"step_count"`
	ParallelTurns       []int          `json:"parallel_turns,omitempty"`
	Answer              string         `json:"answer,omitempty"`
	Citations           map[int]string `json:"citations,omitempty"`
	StopReason          string         `json:"stop_reason,omitempty"`
	GeneratedImageCount int            `json:"generated_image_count,omitempty"`
	ToolSeconds         *float64       `json:"tool_processing_seconds,omitempty"`
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	stream, sessionKey, err := loadStream(cmd, args[0])
	if err != nil {
		return err
	}

	engine := timeline.NewEngine(nil)
	engine.Process(stream, sessionKey)
	engine.MarkAllToolsDisplayed()
	snap := engine.OnRenderComplete()

	in := uistate.Inputs{
		HasSteps:          snap.HasSteps,
		HasDisplayContent: snap.HasDisplayContent(),
		StopPacketSeen:    snap.StopPacketSeen,
		UserStopped:       snap.StopReason.IsUserCancelled(),
		IsGeneratingImage: snap.IsGeneratingImage,
		IsExpanded:        cfg.TUI.Expanded,
	}
	if group := snap.CurrentTurnGroup(); group != nil {
		in.IsParallel = group.IsParallel()
	}

	result := buildDumpResult(snap, uistate.Derive(in))

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printDumpResult(cmd, result)
	return nil
}

func buildDumpResult(snap timeline.Snapshot, state uistate.State) dumpResult {
	result := dumpResult{
		State:               state.String(),
		TurnCount:           len(snap.ToolTurnGroups),
		StepCount:           len(snap.ToolGroups),
		StopReason:          string(snap.StopReason),
		GeneratedImageCount: snap.GeneratedImageCount,
		ToolSeconds:         snap.ToolProcessingDuration,
	}

	for _, group := range snap.ToolTurnGroups {
		if group.IsParallel() {
			result.ParallelTurns = append(result.ParallelTurns, group.TurnIndex)
		}
	}
	for _, step := range snap.DisplayGroups {
		result.Answer += step.Text()
	}
	if len(snap.CitationMap) > 0 {
		result.Citations = snap.CitationMap
	}
	return result
}

func printDumpResult(cmd *cobra.Command, result dumpResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "state:      %s\n", result.State)
	fmt.Fprintf(out, "turns:      %d (%d steps)\n", result.TurnCount, result.StepCount)
	if len(result.ParallelTurns) > 0 {
		fmt.Fprintf(out, "parallel:   turns %v\n", result.ParallelTurns)
	}
	if result.StopReason != "" {
		fmt.Fprintf(out, "stopped:    %s\n", result.StopReason)
	}
	if result.ToolSeconds != nil {
		fmt.Fprintf(out, "tool time:  %.1fs\n", *result.ToolSeconds)
	}
	if result.GeneratedImageCount > 0 {
		fmt.Fprintf(out, "images:     %d\n", result.GeneratedImageCount)
	}
	if result.Answer != "" {
		fmt.Fprintf(out, "answer:\n%s\n", result.Answer)
	}
	for _, num := range slices.Sorted(maps.Keys(result.Citations)) {
		fmt.Fprintf(out, "  [%d] %s\n", num, result.Citations[num])
	}
}
