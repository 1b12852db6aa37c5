package panel

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quorumhq/quorum/pkg/models"
)

// Journal is the execution log: a newest-first sequence of completed
// results plus the shorter-lived collection of pending markers. It is
// the only state the UI renders, so every mutation happens under one
// mutex and accessors hand out copies.
type Journal struct {
	mu      sync.RWMutex
	results []models.TaskResult
	pending []models.PendingMarker
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// BeginPending appends a pending marker for the invocation and returns it.
func (j *Journal) BeginPending(inv models.TaskInvocation) models.PendingMarker {
	marker := models.PendingMarker{
		ID:          uuid.New().String(),
		ExpertID:    inv.Expert.ID,
		ExpertName:  inv.Expert.Name,
		Avatar:      inv.Expert.Avatar,
		Status:      models.MarkerPending,
		TriggeredBy: inv.TriggeredBy,
	}

	j.mu.Lock()
	j.pending = append(j.pending, marker)
	j.mu.Unlock()

	return marker
}

// Complete removes the marker and records the result at the head of the
// log, so results read newest first in arrival order.
func (j *Journal) Complete(markerID string, inv models.TaskInvocation, text string) models.TaskResult {
	result := models.TaskResult{
		ID:          uuid.New().String(),
		ExpertID:    inv.Expert.ID,
		ExpertName:  inv.Expert.Name,
		Avatar:      inv.Expert.Avatar,
		Instruction: inv.Instruction,
		Text:        text,
		TriggeredBy: inv.TriggeredBy,
		CreatedAt:   time.Now(),
	}

	j.mu.Lock()
	j.removeMarkerLocked(markerID)
	j.results = append([]models.TaskResult{result}, j.results...)
	j.mu.Unlock()

	return result
}

// Fail flips the marker to the error state with the failure message.
// The marker stays visible until the user dismisses it.
func (j *Journal) Fail(markerID, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for i := range j.pending {
		if j.pending[i].ID == markerID {
			j.pending[i].Status = models.MarkerError
			j.pending[i].Error = message
			return
		}
	}
}

// Results returns a copy of the result log, newest first.
func (j *Journal) Results() []models.TaskResult {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]models.TaskResult, len(j.results))
	copy(out, j.results)
	return out
}

// Pending returns a copy of the pending marker collection.
func (j *Journal) Pending() []models.PendingMarker {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]models.PendingMarker, len(j.pending))
	copy(out, j.pending)
	return out
}

// PendingCount returns the number of markers still in the pending state.
func (j *Journal) PendingCount() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := 0
	for _, m := range j.pending {
		if m.Status == models.MarkerPending {
			n++
		}
	}
	return n
}

// DeleteResult removes a single result by id.
// Returns true if a result was removed.
func (j *Journal) DeleteResult(id string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	for i := range j.results {
		if j.results[i].ID == id {
			j.results = append(j.results[:i], j.results[i+1:]...)
			return true
		}
	}
	return false
}

// ClearResults removes every result from the log.
func (j *Journal) ClearResults() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = nil
}

// ClearPendingError dismisses error markers for the given expert.
func (j *Journal) ClearPendingError(expertID string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	kept := j.pending[:0]
	for _, m := range j.pending {
		if m.ExpertID == expertID && m.Status == models.MarkerError {
			continue
		}
		kept = append(kept, m)
	}
	j.pending = kept
}

// Seed replaces the result log, typically with history loaded at
// startup. The slice is stored newest first as given.
func (j *Journal) Seed(results []models.TaskResult) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.results = make([]models.TaskResult, len(results))
	copy(j.results, results)
}

// removeMarkerLocked removes a marker by id. Caller must hold j.mu.
func (j *Journal) removeMarkerLocked(markerID string) {
	for i := range j.pending {
		if j.pending[i].ID == markerID {
			j.pending = append(j.pending[:i], j.pending[i+1:]...)
			return
		}
	}
}
