package panel

import "errors"

// Validation errors rejected at the batch-entry boundary. No state is
// mutated when one of these is returned.
var (
	// ErrNoExpertsSelected is returned when a batch names no experts.
	ErrNoExpertsSelected = errors.New("no experts selected")
	// ErrBlankInstruction is returned when the instruction is blank.
	ErrBlankInstruction = errors.New("instruction is blank")
	// ErrBlankProjectContext is returned when no project context is set.
	ErrBlankProjectContext = errors.New("project context is blank")
	// ErrBatchInFlight is returned when a batch is dispatched while a
	// previous batch still has outstanding work.
	ErrBatchInFlight = errors.New("a batch is already in flight")
)
