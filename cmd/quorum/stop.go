package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/panel"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Cancel the running panel batch",
	Long: `Signal a running quorum session to stop. In-flight experts finish and
their responses are kept; queued follow-ups are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		signals, err := panel.NewSignalManager(config.DataDir())
		if err != nil {
			return fmt.Errorf("open signals: %w", err)
		}
		defer signals.Close()

		if err := signals.SendStop(); err != nil {
			return fmt.Errorf("send stop: %w", err)
		}
		color.Yellow("Stop requested. In-flight experts will finish.")
		return nil
	},
}
