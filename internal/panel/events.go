package panel

import (
	"time"
)

// EventType represents the type of panel event.
type EventType string

const (
	// EventTaskStarted indicates an expert invocation has started.
	EventTaskStarted EventType = "task_started"
	// EventTaskCompleted indicates an expert invocation completed successfully.
	EventTaskCompleted EventType = "task_completed"
	// EventTaskFailed indicates an expert invocation failed.
	EventTaskFailed EventType = "task_failed"
	// EventTaskAbandoned indicates an invocation was dropped before it
	// started because cancellation was requested.
	EventTaskAbandoned EventType = "task_abandoned"
	// EventDelegationScheduled indicates a follow-up invocation was
	// scheduled from a delegation directive.
	EventDelegationScheduled EventType = "delegation_scheduled"
	// EventBatchDone indicates all outstanding work has settled.
	EventBatchDone EventType = "batch_done"
	// EventCancelled indicates the user requested termination.
	EventCancelled EventType = "cancelled"
)

// Event represents an event emitted by the engine.
// These events are used to update the TUI and the one-shot CLI.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// InvocationID is the ID of the related invocation, if applicable.
	InvocationID string
	// ExpertID is the ID of the related expert, if applicable.
	ExpertID string
	// ExpertName is the display name of the related expert.
	ExpertName string
	// TriggeredBy names the delegating expert for follow-up invocations.
	TriggeredBy string
	// Depth is the delegation depth of the related invocation.
	Depth int
	// Message provides additional context about the event.
	Message string
	// Err contains error details for failure events.
	Err error
	// Active is the value of the active counter after this event.
	Active int
	// Timestamp is when the event occurred.
	Timestamp time.Time
}
