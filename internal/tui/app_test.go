package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/quorumhq/quorum/internal/panel"
	"github.com/quorumhq/quorum/pkg/models"
)

func TestApp_SubmitDispatchesSelectedExperts(t *testing.T) {
	journal := panel.NewJournal()
	app := NewApp(testTeam(), journal)

	var gotExperts []models.Expert
	var gotInstruction string
	app.SetSubmitHandler(func(experts []models.Expert, instruction string) error {
		gotExperts = experts
		gotInstruction = instruction
		return nil
	})

	app.Update(BatchSubmittedMsg{Instruction: "compare the two designs"})

	if gotInstruction != "compare the two designs" {
		t.Errorf("instruction = %q", gotInstruction)
	}
	if len(gotExperts) != 3 {
		t.Errorf("dispatched %d experts, want 3", len(gotExperts))
	}
}

func TestApp_SubmitErrorShownInFooter(t *testing.T) {
	app := NewApp(testTeam(), panel.NewJournal())
	app.SetSubmitHandler(func([]models.Expert, string) error {
		return errors.New("no experts selected")
	})

	app.Update(BatchSubmittedMsg{Instruction: "hello"})

	if app.footer.notice != "no experts selected" {
		t.Errorf("footer notice = %q", app.footer.notice)
	}
}

func TestApp_EscInvokesCancelHandler(t *testing.T) {
	app := NewApp(testTeam(), panel.NewJournal())

	cancelled := false
	app.SetCancelHandler(func() { cancelled = true })

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !cancelled {
		t.Error("esc should invoke the cancel handler")
	}
}

func TestApp_TabCyclesFocus(t *testing.T) {
	app := NewApp(testTeam(), panel.NewJournal())

	if app.focus != FocusInput {
		t.Fatalf("initial focus = %d, want input", app.focus)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.focus != FocusExperts {
		t.Errorf("focus = %d after tab, want experts", app.focus)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.focus != FocusResults {
		t.Errorf("focus = %d after second tab, want results", app.focus)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.focus != FocusInput {
		t.Errorf("focus = %d after third tab, want input", app.focus)
	}
}

func TestApp_EventUpdatesBusyAndActive(t *testing.T) {
	app := NewApp(testTeam(), panel.NewJournal())

	app.Update(PanelEventMsg{Event: panel.Event{
		Type:     panel.EventTaskStarted,
		ExpertID: "1",
		Active:   1,
	}})
	if !app.expertsPanel.busy["1"] {
		t.Error("expert 1 should be marked busy")
	}
	if app.footer.active != 1 {
		t.Errorf("footer active = %d, want 1", app.footer.active)
	}

	app.Update(PanelEventMsg{Event: panel.Event{
		Type:     panel.EventTaskCompleted,
		ExpertID: "1",
		Active:   0,
	}})
	if app.expertsPanel.busy["1"] {
		t.Error("expert 1 should no longer be busy")
	}
	if app.footer.active != 0 {
		t.Errorf("footer active = %d, want 0", app.footer.active)
	}
}

func TestApp_RefreshShowsJournalResults(t *testing.T) {
	journal := panel.NewJournal()
	ada := models.Expert{ID: "1", Name: "Ada"}
	inv := models.TaskInvocation{ID: uuid.New().String(), Expert: ada, Instruction: "q"}
	marker := journal.BeginPending(inv)
	journal.Complete(marker.ID, inv, "the answer")

	app := NewApp(testTeam(), journal)
	app.Update(RefreshMsg{})

	if len(app.resultsPanel.results) != 1 {
		t.Fatalf("results panel has %d results, want 1", len(app.resultsPanel.results))
	}
	if app.resultsPanel.results[0].Text != "the answer" {
		t.Errorf("result text = %q", app.resultsPanel.results[0].Text)
	}
}
