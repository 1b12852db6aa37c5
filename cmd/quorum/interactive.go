package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/panel"
	"github.com/quorumhq/quorum/internal/roster"
	"github.com/quorumhq/quorum/internal/store"
	"github.com/quorumhq/quorum/internal/tui"
	"github.com/quorumhq/quorum/pkg/models"
)

var (
	interactiveContext     string
	interactiveContextFile string
)

func init() {
	rootCmd.Flags().StringVar(&interactiveContext, "context", "", "Project context given to every expert")
	rootCmd.Flags().StringVar(&interactiveContextFile, "context-file", "", "Read project context from a file")
}

func runInteractive() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataDir := config.DataDir()
	logger := panel.NewDebugLoggerForDataDir(dataDir)
	panel.SetPackageLogger(logger)
	defer logger.Close()

	rosterMgr, err := roster.Open(roster.DefaultDBPath(dataDir))
	if err != nil {
		return fmt.Errorf("open roster: %w", err)
	}
	defer rosterMgr.Close()

	team, err := rosterMgr.Team()
	if err != nil {
		return fmt.Errorf("load team: %w", err)
	}

	db, err := store.Open(store.DefaultDBPath(dataDir))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}

	projectContext, err := resolveProjectContext(db, interactiveContext, interactiveContextFile)
	if err != nil {
		return err
	}

	backend, err := buildBackend(cfg, "")
	if err != nil {
		return err
	}
	db.SetSetting(store.SettingLastBackend, backend.Name())

	journal := panel.NewJournal()
	if cfg.Panel.HistoryLimit > 0 {
		if history, err := db.ListResults(cfg.Panel.HistoryLimit); err == nil {
			journal.Seed(history)
		}
	}

	invoker := panel.NewAdapter(backend, cfg.Panel.Language)
	engine := panel.NewEngine(invoker, journal,
		panel.WithFollowUpDelay(cfg.Panel.FollowUpDelay),
		panel.WithEngineLogger(logger),
	)

	signals, err := panel.NewSignalManager(dataDir)
	if err == nil {
		signals.ClearSignals()
		signals.OnStop(engine.Cancel)
		defer signals.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tui.NewApp(team, journal)
	if saved, err := db.GetSelectedExperts(); err == nil {
		app.ApplySelection(saved)
	}
	app.SetSubmitHandler(func(experts []models.Expert, instruction string) error {
		return engine.DispatchBatch(ctx, panel.BatchRequest{
			Experts:        experts,
			Team:           team,
			Instruction:    instruction,
			ProjectContext: projectContext,
		})
	})
	app.SetCancelHandler(engine.Cancel)

	program := tea.NewProgram(app, tea.WithAltScreen())

	go func() {
		for event := range engine.Events() {
			program.Send(tui.PanelEventMsg{Event: event})
			if event.Type == panel.EventBatchDone {
				persistResults(db, journal)
			}
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	engine.Cancel()
	engine.Wait()
	persistResults(db, journal)
	db.SetSelectedExperts(app.SelectedExpertIDs())
	return nil
}

// persistResults writes the journal's results to the history store.
// Saves are idempotent, so re-saving already stored results is fine.
func persistResults(db *store.DB, journal *panel.Journal) {
	for _, r := range journal.Results() {
		if err := db.SaveResult(r); err != nil {
			return
		}
	}
}

// resolveProjectContext picks the project context from, in order, the
// context file flag, the context flag, the stored setting, and a
// generic default. Explicit flags update the stored setting.
func resolveProjectContext(db *store.DB, flagContext, flagContextFile string) (string, error) {
	if flagContextFile != "" {
		data, err := os.ReadFile(flagContextFile)
		if err != nil {
			return "", fmt.Errorf("read context file: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("context file %s is empty", flagContextFile)
		}
		db.SetSetting(store.SettingProjectContext, text)
		return text, nil
	}

	if strings.TrimSpace(flagContext) != "" {
		text := strings.TrimSpace(flagContext)
		db.SetSetting(store.SettingProjectContext, text)
		return text, nil
	}

	if stored, err := db.GetSetting(store.SettingProjectContext); err == nil && stored != "" {
		return stored, nil
	}

	return "General question and answer session with no specific project attached.", nil
}
