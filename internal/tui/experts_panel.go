package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quorumhq/quorum/pkg/models"
)

// ExpertsPanel lists the panel roster and tracks which experts are
// selected for the next dispatch.
type ExpertsPanel struct {
	team     models.Team
	selected map[string]bool
	busy     map[string]bool
	cursor   int
	width    int
	height   int
	focused  bool

	titleStyle    lipgloss.Style
	borderStyle   lipgloss.Style
	focusedBorder lipgloss.Style
	selectedStyle lipgloss.Style
	busyStyle     lipgloss.Style
	cursorStyle   lipgloss.Style
	roleStyle     lipgloss.Style
}

// NewExpertsPanel creates an ExpertsPanel for the given team.
func NewExpertsPanel(team models.Team) *ExpertsPanel {
	p := &ExpertsPanel{
		team:     team,
		selected: make(map[string]bool),
		busy:     make(map[string]bool),
		width:    30,
		height:   10,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),

		focusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")),

		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),

		busyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),

		cursorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),

		roleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}

	// Everyone starts selected; most panels want the full bench.
	for _, e := range team {
		p.selected[e.ID] = true
	}

	return p
}

// SetTeam replaces the roster, preserving selections where IDs survive.
func (p *ExpertsPanel) SetTeam(team models.Team) {
	p.team = team
	kept := make(map[string]bool, len(team))
	for _, e := range team {
		if p.selected[e.ID] {
			kept[e.ID] = true
		}
	}
	p.selected = kept
	if p.cursor >= len(team) {
		p.cursor = 0
	}
}

// SetSize sets the panel dimensions.
func (p *ExpertsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets keyboard focus.
func (p *ExpertsPanel) SetFocused(focused bool) {
	p.focused = focused
}

// SetBusy marks an expert as having work in flight.
func (p *ExpertsPanel) SetBusy(expertID string, busy bool) {
	if busy {
		p.busy[expertID] = true
	} else {
		delete(p.busy, expertID)
	}
}

// ClearBusy resets all busy markers.
func (p *ExpertsPanel) ClearBusy() {
	p.busy = make(map[string]bool)
}

// ApplySelection replaces the selection with the given expert IDs.
// Unknown IDs are ignored; an empty list leaves the default selection.
func (p *ExpertsPanel) ApplySelection(ids []string) {
	if len(ids) == 0 {
		return
	}
	known := make(map[string]bool, len(p.team))
	for _, e := range p.team {
		known[e.ID] = true
	}
	selection := make(map[string]bool)
	for _, id := range ids {
		if known[id] {
			selection[id] = true
		}
	}
	if len(selection) > 0 {
		p.selected = selection
	}
}

// Selected returns the currently selected experts in roster order.
func (p *ExpertsPanel) Selected() []models.Expert {
	var out []models.Expert
	for _, e := range p.team {
		if p.selected[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// HandleKey processes a key press. Returns true if the key was consumed.
func (p *ExpertsPanel) HandleKey(key string) bool {
	switch key {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
		return true
	case "down", "j":
		if p.cursor < len(p.team)-1 {
			p.cursor++
		}
		return true
	case " ", "space":
		if p.cursor < len(p.team) {
			id := p.team[p.cursor].ID
			p.selected[id] = !p.selected[id]
		}
		return true
	case "a":
		for _, e := range p.team {
			p.selected[e.ID] = true
		}
		return true
	case "n":
		p.selected = make(map[string]bool)
		return true
	}
	return false
}

// View renders the panel.
func (p *ExpertsPanel) View() string {
	var b strings.Builder
	b.WriteString(p.titleStyle.Render(fmt.Sprintf("Experts (%d/%d)", len(p.Selected()), len(p.team))))
	b.WriteString("\n")

	for i, e := range p.team {
		cursor := "  "
		if p.focused && i == p.cursor {
			cursor = p.cursorStyle.Render("> ")
		}

		check := "[ ]"
		line := fmt.Sprintf("%s %s", e.Avatar, e.Name)
		if p.selected[e.ID] {
			check = p.selectedStyle.Render("[x]")
		}
		if p.busy[e.ID] {
			line = p.busyStyle.Render(line + " …")
		}

		role := ""
		if e.Role != "" {
			role = " " + p.roleStyle.Render(e.Role)
		}

		b.WriteString(fmt.Sprintf("%s%s %s%s\n", cursor, check, line, role))
	}

	border := p.borderStyle
	if p.focused {
		border = p.focusedBorder
	}
	return border.Width(p.width - 2).Height(p.height - 2).Render(b.String())
}
