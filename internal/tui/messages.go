package tui

import (
	"time"

	"github.com/quorumhq/quorum/internal/panel"
)

// PanelEventMsg wraps an engine event for the bubbletea update loop.
type PanelEventMsg struct {
	Event panel.Event
}

// BatchSubmittedMsg is sent when the user submits an instruction for
// the selected experts.
type BatchSubmittedMsg struct {
	Instruction string
}

// DispatchFailedMsg is sent when a submitted batch is rejected before
// any expert runs.
type DispatchFailedMsg struct {
	Err error
}

// RefreshMsg asks the app to re-render from the journal.
type RefreshMsg struct {
	At time.Time
}
