package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/llm"
	"github.com/quorumhq/quorum/internal/panel"
	"github.com/quorumhq/quorum/internal/roster"
	"github.com/quorumhq/quorum/internal/store"
	"github.com/quorumhq/quorum/pkg/models"
)

var (
	runExperts     string
	runBackend     string
	runContext     string
	runContextFile string
)

var runCmd = &cobra.Command{
	Use:   "run <instruction>",
	Short: "Run the panel once and print the responses",
	Long: `Dispatch an instruction to the panel without the TUI and print each
expert's response as it completes.

By default every expert on the roster is asked. Use --experts to pick
a subset by name; names match the same way delegation targets do, so
partial names work.

Examples:
  quorum run "Should we move the queue to Postgres?"
  quorum run --experts ada,marvin "Poke holes in this rollout plan"
  quorum run --backend gemini --context-file ./PROJECT.md "Review the API sketch"`,
	Args: cobra.ExactArgs(1),
	RunE: runOnce,
}

func init() {
	runCmd.Flags().StringVar(&runExperts, "experts", "", "Comma-separated expert names (default: all)")
	runCmd.Flags().StringVar(&runBackend, "backend", "", "LLM backend: anthropic or gemini")
	runCmd.Flags().StringVar(&runContext, "context", "", "Project context given to every expert")
	runCmd.Flags().StringVar(&runContextFile, "context-file", "", "Read project context from a file")
}

func runOnce(cmd *cobra.Command, args []string) error {
	instruction := strings.TrimSpace(args[0])

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

	selected, err := selectExperts(team, runExperts)
	if err != nil {
		return err
	}

	db, err := store.Open(store.DefaultDBPath(dataDir))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}

	projectContext, err := resolveProjectContext(db, runContext, runContextFile)
	if err != nil {
		return err
	}

	backend, err := buildBackend(cfg, runBackend)
	if err != nil {
		return err
	}
	db.SetSetting(store.SettingLastBackend, backend.Name())

	journal := panel.NewJournal()
	invoker := panel.NewAdapter(backend, cfg.Panel.Language)
	engine := panel.NewEngine(invoker, journal,
		panel.WithFollowUpDelay(cfg.Panel.FollowUpDelay),
		panel.WithEngineLogger(logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl+C and `quorum stop` both cancel cooperatively: in-flight
	// experts finish, queued follow-ups are dropped.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		color.Yellow("\nStopping after in-flight experts finish...")
		engine.Cancel()
	}()

	signals, err := panel.NewSignalManager(dataDir)
	if err == nil {
		signals.ClearSignals()
		signals.OnStop(engine.Cancel)
		defer signals.Close()
	}

	if err := engine.DispatchBatch(ctx, panel.BatchRequest{
		Experts:        selected,
		Team:           team,
		Instruction:    instruction,
		ProjectContext: projectContext,
	}); err != nil {
		return err
	}

	color.Cyan("Asked %d expert(s): %s\n", len(selected), expertNames(selected))

	printed := make(map[string]bool)
	for event := range engine.Events() {
		switch event.Type {
		case panel.EventTaskStarted:
			color.HiBlack("… %s is thinking", event.ExpertName)
		case panel.EventDelegationScheduled:
			color.HiBlack("→ %s hands a follow-up to %s", event.TriggeredBy, event.ExpertName)
		case panel.EventTaskCompleted:
			printNewResults(journal, printed)
		case panel.EventTaskFailed:
			color.Red("✗ %s failed: %v", event.ExpertName, event.Err)
		case panel.EventCancelled:
			color.Yellow("%s", event.Message)
		}
		if event.Type == panel.EventBatchDone {
			break
		}
	}
	engine.Wait()

	persistResults(db, journal)
	printUsageSummary(backend)

	failures := 0
	for _, m := range journal.Pending() {
		if m.Status == models.MarkerError {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d expert(s) failed", failures)
	}
	return nil
}

// selectExperts resolves a comma-separated name list against the
// roster. An empty list selects the whole bench.
func selectExperts(team models.Team, names string) ([]models.Expert, error) {
	if strings.TrimSpace(names) == "" {
		return team, nil
	}

	var selected []models.Expert
	seen := make(map[string]bool)
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		expert, ok := team.ResolveName(name)
		if !ok {
			return nil, fmt.Errorf("no expert matches %q (have: %s)", name, expertNames(team))
		}
		if !seen[expert.ID] {
			seen[expert.ID] = true
			selected = append(selected, expert)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no experts selected")
	}
	return selected, nil
}

func expertNames(experts []models.Expert) string {
	names := make([]string, 0, len(experts))
	for _, e := range experts {
		names = append(names, e.Name)
	}
	return strings.Join(names, ", ")
}

// printNewResults prints journal results that have not been printed
// yet, oldest of the new batch first.
func printNewResults(journal *panel.Journal, printed map[string]bool) {
	results := journal.Results()
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		if printed[r.ID] {
			continue
		}
		printed[r.ID] = true

		header := color.New(color.FgGreen, color.Bold)
		if r.TriggeredBy != "" {
			header.Printf("\n%s %s (asked by %s)\n", r.Avatar, r.ExpertName, r.TriggeredBy)
		} else {
			header.Printf("\n%s %s\n", r.Avatar, r.ExpertName)
		}
		fmt.Println(r.Text)
	}
}

// printUsageSummary prints token counts and estimated cost when the
// backend tracks them.
func printUsageSummary(backend llm.Backend) {
	ab, ok := backend.(*llm.AnthropicBackend)
	if !ok {
		return
	}
	tracker := ab.Client().Tracker()
	input, output := tracker.Total()
	if tracker.Calls() == 0 {
		return
	}
	color.HiBlack("\n%d call(s), %d in / %d out tokens, ~$%.4f",
		tracker.Calls(), input, output, tracker.Cost())
}
