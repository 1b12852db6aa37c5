package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quorumhq/quorum/pkg/models"
)

// ResultsPanel shows pending markers and the newest-first result log.
type ResultsPanel struct {
	results      []models.TaskResult
	pending      []models.PendingMarker
	scrollOffset int
	width        int
	height       int
	focused      bool

	titleStyle    lipgloss.Style
	borderStyle   lipgloss.Style
	focusedBorder lipgloss.Style
	nameStyle     lipgloss.Style
	metaStyle     lipgloss.Style
	pendingStyle  lipgloss.Style
	errorStyle    lipgloss.Style
	bodyStyle     lipgloss.Style
}

// NewResultsPanel creates a ResultsPanel.
func NewResultsPanel() *ResultsPanel {
	return &ResultsPanel{
		width:  50,
		height: 20,

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

		nameStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),

		metaStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		pendingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),

		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		bodyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
	}
}

// SetSize sets the panel dimensions.
func (p *ResultsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets keyboard focus.
func (p *ResultsPanel) SetFocused(focused bool) {
	p.focused = focused
}

// SetData replaces the displayed results and pending markers.
func (p *ResultsPanel) SetData(results []models.TaskResult, pending []models.PendingMarker) {
	p.results = results
	p.pending = pending
	if p.scrollOffset > p.maxScroll() {
		p.scrollOffset = p.maxScroll()
	}
}

// HandleKey processes scrolling keys. Returns true if consumed.
func (p *ResultsPanel) HandleKey(key string) bool {
	switch key {
	case "up", "k":
		if p.scrollOffset > 0 {
			p.scrollOffset--
		}
		return true
	case "down", "j":
		if p.scrollOffset < p.maxScroll() {
			p.scrollOffset++
		}
		return true
	case "pgup":
		p.scrollOffset -= p.contentHeight()
		if p.scrollOffset < 0 {
			p.scrollOffset = 0
		}
		return true
	case "pgdown":
		p.scrollOffset += p.contentHeight()
		if p.scrollOffset > p.maxScroll() {
			p.scrollOffset = p.maxScroll()
		}
		return true
	case "home", "g":
		p.scrollOffset = 0
		return true
	}
	return false
}

func (p *ResultsPanel) contentHeight() int {
	h := p.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (p *ResultsPanel) maxScroll() int {
	lines := len(p.renderLines())
	max := lines - p.contentHeight()
	if max < 0 {
		max = 0
	}
	return max
}

func (p *ResultsPanel) renderLines() []string {
	var lines []string
	wrapWidth := p.width - 6
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	for _, m := range p.pending {
		label := fmt.Sprintf("%s %s is thinking…", m.Avatar, m.ExpertName)
		style := p.pendingStyle
		if m.Status == models.MarkerError {
			label = fmt.Sprintf("%s %s failed: %s", m.Avatar, m.ExpertName, m.Error)
			style = p.errorStyle
		}
		for _, l := range wrapText(label, wrapWidth) {
			lines = append(lines, style.Render(l))
		}
		lines = append(lines, "")
	}

	for _, r := range p.results {
		header := p.nameStyle.Render(fmt.Sprintf("%s %s", r.Avatar, r.ExpertName))
		meta := p.metaStyle.Render(r.CreatedAt.Format("15:04:05"))
		if r.TriggeredBy != "" {
			meta = p.metaStyle.Render(fmt.Sprintf("%s · asked by %s", r.CreatedAt.Format("15:04:05"), r.TriggeredBy))
		}
		lines = append(lines, header+" "+meta)
		for _, l := range wrapText(r.Text, wrapWidth) {
			lines = append(lines, p.bodyStyle.Render(l))
		}
		lines = append(lines, "")
	}

	if len(lines) == 0 {
		lines = append(lines, p.metaStyle.Render("No results yet. Select experts and submit an instruction."))
	}
	return lines
}

// View renders the panel.
func (p *ResultsPanel) View() string {
	lines := p.renderLines()

	start := p.scrollOffset
	if start > len(lines) {
		start = len(lines)
	}
	end := start + p.contentHeight()
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	title := fmt.Sprintf("Results (%d)", len(p.results))
	if len(p.pending) > 0 {
		title = fmt.Sprintf("Results (%d, %d pending)", len(p.results), len(p.pending))
	}
	b.WriteString(p.titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Join(lines[start:end], "\n"))

	border := p.borderStyle
	if p.focused {
		border = p.focusedBorder
	}
	return border.Width(p.width - 2).Height(p.height - 2).Render(b.String())
}

// wrapText breaks text into lines no longer than width, preserving
// existing newlines.
func wrapText(text string, width int) []string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return out
}
