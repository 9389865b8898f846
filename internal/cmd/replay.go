package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tracetide/tracetide/internal/config"
	"github.com/tracetide/tracetide/internal/logging"
	"github.com/tracetide/tracetide/internal/packet"
	"github.com/tracetide/tracetide/internal/tui"
)

var replayCmd = &cobra.Command{
	Use:   "replay <stream.jsonl>",
	Short: "Replay a recorded packet stream in the timeline viewer",
	Long: `Replay reads a newline-delimited JSON packet log and plays it back
through the timeline engine at the configured cadence, rendering the
timeline exactly as it would have streamed live.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Int("interval", 0, "milliseconds between replayed packets (overrides config)")
	replayCmd.Flags().String("session", "", "session key for the replayed stream (default: the file name)")
	replayCmd.Flags().Bool("no-pacing", false, "disable the settle delay between turn transitions")
	_ = viper.BindPFlag("replay.interval_ms", replayCmd.Flags().Lookup("interval"))

	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if noPacing, _ := cmd.Flags().GetBool("no-pacing"); noPacing {
		// A negative settle interval disables holding in the scheduler.
		cfg.Pacing.SettleIntervalMs = -1
	}

	stream, sessionKey, err := loadStream(cmd, args[0])
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	return tui.New(cfg, logger.WithSession(sessionKey), sessionKey, stream).Run()
}

// loadStream decodes the packet log at path and resolves the session
// key for it.
func loadStream(cmd *cobra.Command, path string) ([]packet.Packet, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open stream: %w", err)
	}
	defer func() { _ = f.Close() }()

	stream, err := packet.DecodeStream(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode stream: %w", err)
	}

	sessionKey, _ := cmd.Flags().GetString("session")
	if sessionKey == "" {
		sessionKey = path
	}
	return stream, sessionKey, nil
}
