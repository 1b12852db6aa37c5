package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quorum",
	Short: "Expert panel orchestrator",
	Long: `Quorum convenes a panel of expert personas on your project and runs
them in parallel against a shared instruction. Experts can hand
follow-up questions to each other, bounded to two hops.

With no arguments, launches the interactive TUI where you select
experts, type instructions, and watch responses arrive as they
complete.

Core capabilities:
- Persona experts with editable roles and descriptions
- Parallel dispatch with per-expert pending markers
- Expert-to-expert delegation with depth bounding
- Cooperative cancellation of a running batch
- Persistent result history across sessions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(expertsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
