package panel

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quorumhq/quorum/pkg/models"
)

// DefaultFollowUpDelay is the pacing delay before a delegation
// follow-up starts. Pacing only; correctness never depends on it.
const DefaultFollowUpDelay = 500 * time.Millisecond

// BatchRequest describes one root dispatch: the selected experts, the
// full team snapshot used for delegation targets, the instruction, and
// the project context.
type BatchRequest struct {
	// Experts are the selected experts; each receives one root invocation.
	Experts []models.Expert
	// Team is the delegation target pool. If empty, Experts is used.
	Team models.Team
	// Instruction is the user's instruction text.
	Instruction string
	// ProjectContext is the project description given to every expert.
	ProjectContext string
}

// Engine owns the concurrency, depth bounding, cancellation, and
// result reconciliation for a panel run. All shared state (active
// counter, cancellation flag, team snapshot) is guarded by one mutex;
// the journal guards itself.
type Engine struct {
	invoker Invoker
	journal *Journal
	emitter *EventEmitter
	logger  *DebugLogger

	followUpDelay time.Duration

	mu             sync.Mutex
	active         int
	cancelled      bool
	notice         string
	team           models.Team
	projectContext string

	wg sync.WaitGroup
}

// EngineOption configures an Engine. Use With* functions to create options.
type EngineOption func(*Engine)

// WithFollowUpDelay overrides the pacing delay before delegation
// follow-ups start. Mainly for tests.
func WithFollowUpDelay(d time.Duration) EngineOption {
	return func(e *Engine) { e.followUpDelay = d }
}

// WithEngineLogger sets the debug logger.
func WithEngineLogger(l *DebugLogger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithEventBuffer sets the event channel buffer size.
func WithEventBuffer(n int) EngineOption {
	return func(e *Engine) { e.emitter = NewEventEmitter(n) }
}

// NewEngine creates an engine using the given invoker and journal.
func NewEngine(invoker Invoker, journal *Journal, opts ...EngineOption) *Engine {
	e := &Engine{
		invoker:       invoker,
		journal:       journal,
		emitter:       NewEventEmitter(100),
		logger:        NopLogger(),
		followUpDelay: DefaultFollowUpDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Journal returns the engine's journal.
func (e *Engine) Journal() *Journal {
	return e.journal
}

// Events returns the channel for receiving engine events.
func (e *Engine) Events() <-chan Event {
	return e.emitter.Events()
}

// Active returns the number of invocations that have been dispatched
// and have not yet settled.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Cancelled reports whether cancellation has been requested for the
// current batch.
func (e *Engine) Cancelled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelled
}

// Notice returns the user-visible cancellation notice, if any.
func (e *Engine) Notice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notice
}

// Wait blocks until every dispatched invocation has settled.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// DispatchBatch validates the request and fans one root invocation out
// per selected expert, all in parallel. The cancellation flag is reset
// and the active counter set to the number of experts before any
// invocation starts.
func (e *Engine) DispatchBatch(ctx context.Context, req BatchRequest) error {
	if len(req.Experts) == 0 {
		return ErrNoExpertsSelected
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return ErrBlankInstruction
	}
	if strings.TrimSpace(req.ProjectContext) == "" {
		return ErrBlankProjectContext
	}

	team := req.Team
	if len(team) == 0 {
		team = models.Team(req.Experts)
	}

	e.mu.Lock()
	if e.active > 0 {
		e.mu.Unlock()
		return ErrBatchInFlight
	}
	e.cancelled = false
	e.notice = ""
	e.active = len(req.Experts)
	e.team = team
	e.projectContext = req.ProjectContext
	e.mu.Unlock()

	e.logger.Log("[engine] dispatching batch: %d expert(s), instruction %q", len(req.Experts), req.Instruction)

	for _, expert := range req.Experts {
		inv := models.TaskInvocation{
			ID:          uuid.New().String(),
			Expert:      expert,
			Instruction: req.Instruction,
			Depth:       0,
		}
		e.wg.Add(1)
		go e.executeOne(ctx, inv)
	}

	return nil
}

// Cancel sets the cancellation flag and records a user-visible notice.
// In-flight invocations run to completion; only invocations that have
// not yet started are prevented from executing.
func (e *Engine) Cancel() {
	e.mu.Lock()
	if e.cancelled {
		e.mu.Unlock()
		return
	}
	e.cancelled = true
	e.notice = "Cancellation requested: running tasks will finish, no new delegations will start."
	active := e.active
	e.mu.Unlock()

	e.logger.Log("[engine] cancellation requested with %d invocation(s) outstanding", active)
	e.emitter.Emit(Event{
		Type:      EventCancelled,
		Message:   "cancellation requested",
		Active:    active,
		Timestamp: time.Now(),
	})
}

// executeOne runs a single invocation to a terminal state. It is the
// only place the active counter is decremented, exactly once per
// invocation, after all of the invocation's own work has settled.
func (e *Engine) executeOne(ctx context.Context, inv models.TaskInvocation) {
	defer e.wg.Done()

	// Abandon before starting if cancellation was requested. No marker
	// is created and no result recorded.
	if e.Cancelled() {
		e.logger.Log("[engine] abandoning invocation %s for %s (cancelled before start)", inv.ID, inv.Expert.Name)
		e.emitter.Emit(Event{
			Type:         EventTaskAbandoned,
			InvocationID: inv.ID,
			ExpertID:     inv.Expert.ID,
			ExpertName:   inv.Expert.Name,
			Depth:        inv.Depth,
			Timestamp:    time.Now(),
		})
		e.settle()
		return
	}

	marker := e.journal.BeginPending(inv)

	e.emitter.Emit(Event{
		Type:         EventTaskStarted,
		InvocationID: inv.ID,
		ExpertID:     inv.Expert.ID,
		ExpertName:   inv.Expert.Name,
		TriggeredBy:  inv.TriggeredBy,
		Depth:        inv.Depth,
		Message:      "invoking " + inv.Expert.Name,
		Timestamp:    time.Now(),
	})

	e.mu.Lock()
	team := e.team
	projectContext := e.projectContext
	e.mu.Unlock()

	raw, err := e.invoker.Invoke(ctx, inv.Expert, inv.Instruction, projectContext, team.Teammates(inv.Expert.ID), inv.Depth)
	if err != nil {
		// Failure is contained to this invocation: the marker flips to
		// error and stays visible, siblings are unaffected.
		e.logger.Log("[engine] invocation %s for %s failed: %v", inv.ID, inv.Expert.Name, err)
		e.journal.Fail(marker.ID, err.Error())
		e.emitter.Emit(Event{
			Type:         EventTaskFailed,
			InvocationID: inv.ID,
			ExpertID:     inv.Expert.ID,
			ExpertName:   inv.Expert.Name,
			Depth:        inv.Depth,
			Err:          err,
			Message:      err.Error(),
			Timestamp:    time.Now(),
		})
		e.settle()
		return
	}

	clean, directives := ExtractDirectives(raw, inv.Depth, MaxDelegationDepth, team, inv.Expert.ID)

	e.journal.Complete(marker.ID, inv, clean)
	e.emitter.Emit(Event{
		Type:         EventTaskCompleted,
		InvocationID: inv.ID,
		ExpertID:     inv.Expert.ID,
		ExpertName:   inv.Expert.Name,
		TriggeredBy:  inv.TriggeredBy,
		Depth:        inv.Depth,
		Timestamp:    time.Now(),
	})

	if len(directives) > 0 {
		e.scheduleFollowUps(ctx, inv, directives)
	}

	e.settle()
}

// scheduleFollowUps increments the active counter for the follow-ups
// and starts each after the pacing delay. The increment happens before
// the parent invocation settles so the counter can never touch zero
// while transitive work is still owed.
func (e *Engine) scheduleFollowUps(ctx context.Context, parent models.TaskInvocation, directives []Directive) {
	e.mu.Lock()
	if e.cancelled {
		e.mu.Unlock()
		e.logger.Log("[engine] dropping %d follow-up(s) from %s (cancelled)", len(directives), parent.Expert.Name)
		return
	}
	e.active += len(directives)
	e.mu.Unlock()

	for _, d := range directives {
		child := models.TaskInvocation{
			ID:          uuid.New().String(),
			Expert:      d.Target,
			Instruction: d.Instruction,
			TriggeredBy: parent.Expert.Name,
			Depth:       parent.Depth + 1,
		}

		e.logger.Log("[engine] %s delegated to %s at depth %d", parent.Expert.Name, child.Expert.Name, child.Depth)
		e.emitter.Emit(Event{
			Type:         EventDelegationScheduled,
			InvocationID: child.ID,
			ExpertID:     child.Expert.ID,
			ExpertName:   child.Expert.Name,
			TriggeredBy:  child.TriggeredBy,
			Depth:        child.Depth,
			Timestamp:    time.Now(),
		})

		e.wg.Add(1)
		go func(inv models.TaskInvocation) {
			// Pacing delay; cancellation is re-checked when the
			// invocation actually starts.
			select {
			case <-time.After(e.followUpDelay):
			case <-ctx.Done():
			}
			e.executeOne(ctx, inv)
		}(child)
	}
}

// settle decrements the active counter for one fully settled
// invocation and announces batch completion when it reaches zero.
func (e *Engine) settle() {
	e.mu.Lock()
	e.active--
	if e.active < 0 {
		// Must never happen; clamp so the gate stays usable.
		e.active = 0
	}
	remaining := e.active
	e.mu.Unlock()

	if remaining == 0 {
		e.logger.Log("[engine] batch settled")
		e.emitter.Emit(Event{
			Type:      EventBatchDone,
			Active:    0,
			Timestamp: time.Now(),
		})
	}
}
