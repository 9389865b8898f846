// Package cmd implements the tracetide command line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tracetide/tracetide/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tracetide",
	Short: "Agent execution trace timeline viewer",
	Long: `Tracetide reduces the recorded packet stream of an AI agent execution
into a live timeline: tool steps grouped by turn, parallel branches,
citations, and the final answer, rendered in the terminal the same way
they streamed.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tracetide/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/tracetide")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TRACETIDE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TRACETIDE_PACING_SETTLE_INTERVAL_MS for pacing.settle_interval_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
