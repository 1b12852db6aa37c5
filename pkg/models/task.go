package models

import "time"

// MarkerStatus represents the state of a pending marker.
type MarkerStatus string

const (
	// MarkerPending indicates the invocation is in flight.
	MarkerPending MarkerStatus = "pending"
	// MarkerError indicates the invocation failed and the marker is
	// retained until the user dismisses it.
	MarkerError MarkerStatus = "error"
)

// Valid returns true if the status is a known value.
func (s MarkerStatus) Valid() bool {
	switch s {
	case MarkerPending, MarkerError:
		return true
	default:
		return false
	}
}

// TaskInvocation is a single dispatch of an instruction to an expert.
// It is created at dispatch time, immutable afterwards, and consumed by
// exactly one execution attempt.
type TaskInvocation struct {
	// ID is the unique identifier for this invocation.
	ID string `json:"id"`
	// Expert is the target expert.
	Expert Expert `json:"expert"`
	// Instruction is the text the expert is asked to act on.
	Instruction string `json:"instruction"`
	// TriggeredBy is the name of the expert whose delegation spawned
	// this invocation. Empty for root invocations.
	TriggeredBy string `json:"triggered_by,omitempty"`
	// Depth is the number of delegation hops from the root (root = 0).
	Depth int `json:"depth"`
}

// PendingMarker is the transient record of an in-flight or failed
// invocation, kept for display until the invocation succeeds or the
// user dismisses the error.
type PendingMarker struct {
	// ID is the unique identifier for this marker.
	ID string `json:"id"`
	// ExpertID is the id of the expert being invoked.
	ExpertID string `json:"expert_id"`
	// ExpertName is the display name of the expert.
	ExpertName string `json:"expert_name"`
	// Avatar is the expert's avatar reference.
	Avatar string `json:"avatar,omitempty"`
	// Status is pending while in flight, error after a failure.
	Status MarkerStatus `json:"status"`
	// Error holds the failure message when Status is error.
	Error string `json:"error,omitempty"`
	// TriggeredBy names the delegating expert, if any.
	TriggeredBy string `json:"triggered_by,omitempty"`
}

// TaskResult is the immutable record of a successfully completed
// invocation. Results are kept newest first, in arrival order.
type TaskResult struct {
	// ID is the unique identifier for this result.
	ID string `json:"id"`
	// ExpertID is the id of the expert that produced the result.
	ExpertID string `json:"expert_id"`
	// ExpertName is the display name of the expert.
	ExpertName string `json:"expert_name"`
	// Avatar is the expert's avatar reference.
	Avatar string `json:"avatar,omitempty"`
	// Instruction is the instruction this result answers.
	Instruction string `json:"instruction"`
	// Text is the user-visible response with delegation directives
	// stripped out.
	Text string `json:"text"`
	// TriggeredBy names the delegating expert, if any.
	TriggeredBy string `json:"triggered_by,omitempty"`
	// CreatedAt is when the result was recorded.
	CreatedAt time.Time `json:"created_at"`
}
