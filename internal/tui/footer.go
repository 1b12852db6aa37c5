package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Footer shows key hints, the in-flight task count, and any notice.
type Footer struct {
	width  int
	active int
	notice string

	keyStyle    lipgloss.Style
	descStyle   lipgloss.Style
	activeStyle lipgloss.Style
	noticeStyle lipgloss.Style
}

// NewFooter creates a Footer.
func NewFooter() *Footer {
	return &Footer{
		width: 80,

		keyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),

		descStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		activeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),

		noticeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetActive updates the in-flight task count.
func (f *Footer) SetActive(n int) {
	f.active = n
}

// SetNotice sets the status notice text. Empty clears it.
func (f *Footer) SetNotice(notice string) {
	f.notice = notice
}

// View renders the footer.
func (f *Footer) View() string {
	hints := []string{
		f.keyStyle.Render("tab") + f.descStyle.Render(" focus"),
		f.keyStyle.Render("space") + f.descStyle.Render(" toggle expert"),
		f.keyStyle.Render("esc") + f.descStyle.Render(" cancel batch"),
		f.keyStyle.Render("ctrl+c") + f.descStyle.Render(" quit"),
	}
	line := strings.Join(hints, f.descStyle.Render("  ·  "))

	if f.active > 0 {
		line += "    " + f.activeStyle.Render(fmt.Sprintf("%d in flight", f.active))
	}
	if f.notice != "" {
		line += "    " + f.noticeStyle.Render(f.notice)
	}
	return lipgloss.NewStyle().Width(f.width).Render(line)
}
