package models

import "testing"

func testTeam() Team {
	return Team{
		{ID: "e1", Name: "Alice Hart", Role: "Strategist"},
		{ID: "e2", Name: "Bob", Role: "Engineer"},
		{ID: "e3", Name: "Carol Nguyen", Role: "Counsel"},
	}
}

func TestTeamByID(t *testing.T) {
	team := testTeam()

	e, ok := team.ByID("e2")
	if !ok {
		t.Fatal("expected to find e2")
	}
	if e.Name != "Bob" {
		t.Errorf("expected Bob, got %s", e.Name)
	}

	if _, ok := team.ByID("missing"); ok {
		t.Error("expected missing id to not resolve")
	}
}

func TestTeamResolveName(t *testing.T) {
	team := testTeam()

	tests := []struct {
		name   string
		target string
		wantID string
		wantOK bool
	}{
		{"exact", "Bob", "e2", true},
		{"case insensitive", "bob", "e2", true},
		{"partial of member", "Alice", "e1", true},
		{"member within target", "Dr. Carol Nguyen, Esq.", "e3", true},
		{"surrounding whitespace", "  alice hart ", "e1", true},
		{"unknown", "Zed", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := team.ResolveName(tt.target)
			if ok != tt.wantOK {
				t.Fatalf("ResolveName(%q) ok = %v, want %v", tt.target, ok, tt.wantOK)
			}
			if ok && e.ID != tt.wantID {
				t.Errorf("ResolveName(%q) = %s, want %s", tt.target, e.ID, tt.wantID)
			}
		})
	}
}

func TestTeamResolveNameFirstMatchWins(t *testing.T) {
	team := Team{
		{ID: "a", Name: "Ana"},
		{ID: "b", Name: "Ana Maria"},
	}

	e, ok := team.ResolveName("ana")
	if !ok || e.ID != "a" {
		t.Errorf("expected first match a, got %+v ok=%v", e, ok)
	}
}

func TestTeamTeammates(t *testing.T) {
	team := testTeam()

	mates := team.Teammates("e2")
	if len(mates) != 2 {
		t.Fatalf("expected 2 teammates, got %d", len(mates))
	}
	for _, e := range mates {
		if e.ID == "e2" {
			t.Error("teammates should exclude the acting expert")
		}
	}

	// Unknown id leaves the team unchanged.
	if got := len(team.Teammates("nope")); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestMarkerStatusValid(t *testing.T) {
	if !MarkerPending.Valid() || !MarkerError.Valid() {
		t.Error("expected known statuses to be valid")
	}
	if MarkerStatus("done").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
