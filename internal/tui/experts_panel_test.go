package tui

import (
	"testing"

	"github.com/quorumhq/quorum/pkg/models"
)

func testTeam() models.Team {
	return models.Team{
		{ID: "1", Name: "Ada", Role: "Architect"},
		{ID: "2", Name: "Grace", Role: "Engineer"},
		{ID: "3", Name: "Marvin", Role: "Skeptic"},
	}
}

func TestExpertsPanel_StartsAllSelected(t *testing.T) {
	p := NewExpertsPanel(testTeam())

	if got := len(p.Selected()); got != 3 {
		t.Errorf("Selected() = %d experts, want 3", got)
	}
}

func TestExpertsPanel_ToggleSelection(t *testing.T) {
	p := NewExpertsPanel(testTeam())

	p.HandleKey(" ") // toggle Ada off
	selected := p.Selected()
	if len(selected) != 2 {
		t.Fatalf("Selected() = %d experts, want 2", len(selected))
	}
	for _, e := range selected {
		if e.Name == "Ada" {
			t.Error("Ada should be deselected")
		}
	}

	p.HandleKey(" ") // toggle Ada back on
	if got := len(p.Selected()); got != 3 {
		t.Errorf("Selected() = %d experts after re-toggle, want 3", got)
	}
}

func TestExpertsPanel_CursorMovement(t *testing.T) {
	p := NewExpertsPanel(testTeam())

	p.HandleKey("up") // clamp at top
	if p.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", p.cursor)
	}

	p.HandleKey("down")
	p.HandleKey("down")
	p.HandleKey("down") // clamp at bottom
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want 2", p.cursor)
	}

	p.HandleKey(" ")
	for _, e := range p.Selected() {
		if e.Name == "Marvin" {
			t.Error("Marvin should be deselected at cursor position 2")
		}
	}
}

func TestExpertsPanel_SelectAllAndNone(t *testing.T) {
	p := NewExpertsPanel(testTeam())

	p.HandleKey("n")
	if got := len(p.Selected()); got != 0 {
		t.Errorf("Selected() = %d after select-none, want 0", got)
	}

	p.HandleKey("a")
	if got := len(p.Selected()); got != 3 {
		t.Errorf("Selected() = %d after select-all, want 3", got)
	}
}

func TestExpertsPanel_SelectedPreservesRosterOrder(t *testing.T) {
	p := NewExpertsPanel(testTeam())
	p.HandleKey("down")
	p.HandleKey(" ") // deselect Grace

	selected := p.Selected()
	if len(selected) != 2 || selected[0].Name != "Ada" || selected[1].Name != "Marvin" {
		t.Errorf("Selected() = %+v, want Ada then Marvin", selected)
	}
}

func TestExpertsPanel_SetTeamKeepsSurvivingSelections(t *testing.T) {
	p := NewExpertsPanel(testTeam())
	p.HandleKey(" ") // deselect Ada

	p.SetTeam(models.Team{
		{ID: "2", Name: "Grace"},
		{ID: "4", Name: "Harper"},
	})

	selected := p.Selected()
	if len(selected) != 1 || selected[0].Name != "Grace" {
		t.Errorf("Selected() = %+v, want only Grace", selected)
	}
}

func TestExpertsPanel_ApplySelection(t *testing.T) {
	p := NewExpertsPanel(testTeam())

	p.ApplySelection([]string{"2", "missing"})
	selected := p.Selected()
	if len(selected) != 1 || selected[0].Name != "Grace" {
		t.Errorf("Selected() = %+v, want only Grace", selected)
	}

	// Nothing valid to restore keeps the previous selection.
	p.ApplySelection([]string{"missing"})
	if got := len(p.Selected()); got != 1 {
		t.Errorf("Selected() = %d after invalid restore, want 1", got)
	}

	p.ApplySelection(nil)
	if got := len(p.Selected()); got != 1 {
		t.Errorf("Selected() = %d after empty restore, want 1", got)
	}
}

func TestExpertsPanel_BusyMarkers(t *testing.T) {
	p := NewExpertsPanel(testTeam())

	p.SetBusy("1", true)
	if !p.busy["1"] {
		t.Error("expert 1 should be busy")
	}

	p.SetBusy("1", false)
	if p.busy["1"] {
		t.Error("expert 1 should no longer be busy")
	}

	p.SetBusy("2", true)
	p.ClearBusy()
	if len(p.busy) != 0 {
		t.Error("ClearBusy should remove all markers")
	}
}
