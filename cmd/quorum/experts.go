package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/roster"
	"github.com/quorumhq/quorum/pkg/models"
)

var (
	expertAddRole        string
	expertAddAvatar      string
	expertAddDescription string
)

var expertsCmd = &cobra.Command{
	Use:   "experts",
	Short: "Manage the expert roster",
	Long: `List, add, remove, import, and export the expert personas that make
up the panel. The roster is stored per user and seeded with a default
panel on first run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listExperts()
	},
}

var expertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listExperts()
	},
}

var expertsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an expert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openRoster()
		if err != nil {
			return err
		}
		defer mgr.Close()

		expert, err := mgr.Add(models.Expert{
			Name:        args[0],
			Role:        expertAddRole,
			Avatar:      expertAddAvatar,
			Description: expertAddDescription,
		})
		if err != nil {
			return err
		}
		color.Green("Added %s %s", expert.Avatar, expert.Name)
		return nil
	},
}

var expertsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an expert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openRoster()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.Remove(args[0]); err != nil {
			return err
		}
		color.Green("Removed %s", args[0])
		return nil
	},
}

var expertsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import experts from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openRoster()
		if err != nil {
			return err
		}
		defer mgr.Close()

		imported, err := mgr.Import(args[0])
		if err != nil {
			return err
		}
		color.Green("Imported %d expert(s) from %s", len(imported), args[0])
		return nil
	},
}

var expertsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the roster to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openRoster()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.Export(args[0]); err != nil {
			return err
		}
		color.Green("Exported roster to %s", args[0])
		return nil
	},
}

func init() {
	expertsAddCmd.Flags().StringVar(&expertAddRole, "role", "", "Expert's role title")
	expertsAddCmd.Flags().StringVar(&expertAddAvatar, "avatar", "", "Avatar glyph shown next to the name")
	expertsAddCmd.Flags().StringVar(&expertAddDescription, "description", "", "Persona description used in the system prompt")

	expertsCmd.AddCommand(expertsListCmd)
	expertsCmd.AddCommand(expertsAddCmd)
	expertsCmd.AddCommand(expertsRemoveCmd)
	expertsCmd.AddCommand(expertsImportCmd)
	expertsCmd.AddCommand(expertsExportCmd)
}

func openRoster() (*roster.Manager, error) {
	mgr, err := roster.Open(roster.DefaultDBPath(config.DataDir()))
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	return mgr, nil
}

func listExperts() error {
	mgr, err := openRoster()
	if err != nil {
		return err
	}
	defer mgr.Close()

	team, err := mgr.Team()
	if err != nil {
		return err
	}

	nameStyle := color.New(color.FgGreen, color.Bold)
	roleStyle := color.New(color.FgHiBlack)
	for _, e := range team {
		nameStyle.Printf("%s %s", e.Avatar, e.Name)
		if e.Role != "" {
			roleStyle.Printf("  %s", e.Role)
		}
		fmt.Println()
		if e.Description != "" {
			fmt.Printf("    %s\n", e.Description)
		}
	}
	return nil
}
