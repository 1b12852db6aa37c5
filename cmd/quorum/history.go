package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/store"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past panel responses",
	Long: `Print stored panel responses, newest first. Responses persist across
sessions until cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(store.DefaultDBPath(config.DataDir()))
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate history: %w", err)
		}

		if historyClear {
			if err := db.ClearResults(); err != nil {
				return err
			}
			color.Green("History cleared.")
			return nil
		}

		results, err := db.ListResults(historyLimit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No stored responses.")
			return nil
		}

		header := color.New(color.FgGreen, color.Bold)
		meta := color.New(color.FgHiBlack)
		for _, r := range results {
			header.Printf("%s %s", r.Avatar, r.ExpertName)
			if r.TriggeredBy != "" {
				meta.Printf("  asked by %s", r.TriggeredBy)
			}
			meta.Printf("  %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("%s\n\n", r.Text)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum responses to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all stored responses")
}
