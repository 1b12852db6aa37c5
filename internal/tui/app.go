package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quorumhq/quorum/internal/panel"
	"github.com/quorumhq/quorum/pkg/models"
)

// Focus targets.
const (
	FocusInput   = 0
	FocusExperts = 1
	FocusResults = 2
)

// App is the main bubbletea model for the panel session.
type App struct {
	expertsPanel *ExpertsPanel
	resultsPanel *ResultsPanel
	inputField   *InputField
	footer       *Footer

	journal *panel.Journal

	focus    int
	width    int
	height   int
	quitting bool

	// onSubmit dispatches a batch for the selected experts. A non-nil
	// error is shown in the footer instead of starting a batch.
	onSubmit func(experts []models.Expert, instruction string) error

	// onCancel requests cooperative cancellation of the running batch.
	onCancel func()
}

// NewApp creates the session model for the given roster and journal.
func NewApp(team models.Team, journal *panel.Journal) *App {
	return &App{
		expertsPanel: NewExpertsPanel(team),
		resultsPanel: NewResultsPanel(),
		inputField:   NewInputField(),
		footer:       NewFooter(),
		journal:      journal,
		focus:        FocusInput,
		width:        80,
		height:       24,
	}
}

// SetSubmitHandler sets the dispatch callback.
func (a *App) SetSubmitHandler(handler func(experts []models.Expert, instruction string) error) {
	a.onSubmit = handler
}

// SetCancelHandler sets the cancellation callback.
func (a *App) SetCancelHandler(handler func()) {
	a.onCancel = handler
}

// ApplySelection restores a saved expert selection.
func (a *App) ApplySelection(ids []string) {
	a.expertsPanel.ApplySelection(ids)
}

// SelectedExpertIDs returns the IDs of the currently selected experts.
func (a *App) SelectedExpertIDs() []string {
	var ids []string
	for _, e := range a.expertsPanel.Selected() {
		ids = append(ids, e.ID)
	}
	return ids
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.refreshFromJournal()
	return a.inputField.Focus()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case BatchSubmittedMsg:
		return a.handleSubmit(msg)

	case DispatchFailedMsg:
		a.footer.SetNotice(msg.Err.Error())
		return a, nil

	case PanelEventMsg:
		a.handleEvent(msg.Event)
		return a, nil

	case RefreshMsg:
		a.refreshFromJournal()
		return a, nil
	}

	if a.focus == FocusInput {
		var cmd tea.Cmd
		a.inputField, cmd = a.inputField.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit

	case "esc":
		if a.onCancel != nil {
			a.onCancel()
		}
		return a, nil

	case "tab":
		a.focus = (a.focus + 1) % 3
		a.applyFocus()
		if a.focus == FocusInput {
			return a, a.inputField.Focus()
		}
		return a, nil

	case "shift+tab":
		a.focus = (a.focus + 2) % 3
		a.applyFocus()
		if a.focus == FocusInput {
			return a, a.inputField.Focus()
		}
		return a, nil
	}

	switch a.focus {
	case FocusExperts:
		a.expertsPanel.HandleKey(msg.String())
		return a, nil
	case FocusResults:
		a.resultsPanel.HandleKey(msg.String())
		return a, nil
	default:
		var cmd tea.Cmd
		a.inputField, cmd = a.inputField.Update(msg)
		return a, cmd
	}
}

func (a *App) handleSubmit(msg BatchSubmittedMsg) (tea.Model, tea.Cmd) {
	selected := a.expertsPanel.Selected()
	if a.onSubmit == nil {
		return a, nil
	}
	if err := a.onSubmit(selected, msg.Instruction); err != nil {
		a.footer.SetNotice(err.Error())
		return a, nil
	}
	a.footer.SetNotice("")
	a.refreshFromJournal()
	return a, nil
}

func (a *App) handleEvent(event panel.Event) {
	switch event.Type {
	case panel.EventTaskStarted:
		a.expertsPanel.SetBusy(event.ExpertID, true)
	case panel.EventTaskCompleted, panel.EventTaskFailed, panel.EventTaskAbandoned:
		a.expertsPanel.SetBusy(event.ExpertID, false)
	case panel.EventBatchDone:
		a.expertsPanel.ClearBusy()
	case panel.EventCancelled:
		a.footer.SetNotice(event.Message)
	}
	a.footer.SetActive(event.Active)
	a.refreshFromJournal()
}

func (a *App) refreshFromJournal() {
	if a.journal == nil {
		return
	}
	a.resultsPanel.SetData(a.journal.Results(), a.journal.Pending())
}

func (a *App) applyFocus() {
	a.expertsPanel.SetFocused(a.focus == FocusExperts)
	a.resultsPanel.SetFocused(a.focus == FocusResults)
	if a.focus != FocusInput {
		a.inputField.Blur()
	}
}

func (a *App) updateSizes() {
	expertsWidth := a.width / 3
	if expertsWidth > 40 {
		expertsWidth = 40
	}
	if expertsWidth < 24 {
		expertsWidth = 24
	}
	resultsWidth := a.width - expertsWidth

	// Input box plus footer take four rows.
	panelHeight := a.height - 4
	if panelHeight < 6 {
		panelHeight = 6
	}

	a.expertsPanel.SetSize(expertsWidth, panelHeight)
	a.resultsPanel.SetSize(resultsWidth, panelHeight)
	a.inputField.SetWidth(a.width)
	a.footer.SetWidth(a.width)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye.\n"
	}
	if a.width == 0 {
		return "Loading..."
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.expertsPanel.View(),
		a.resultsPanel.View(),
	)

	return fmt.Sprintf("%s\n%s\n%s", panels, a.inputField.View(), a.footer.View())
}
