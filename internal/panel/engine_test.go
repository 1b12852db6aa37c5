package panel

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/quorumhq/quorum/pkg/models"
)

// fakeInvoker returns scripted responses keyed by expert id.
type fakeInvoker struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []fakeCall
	block     chan struct{} // when set, Invoke waits until closed
}

type fakeCall struct {
	expertID    string
	instruction string
	depth       int
	teammates   int
}

func (f *fakeInvoker) Invoke(ctx context.Context, expert models.Expert, instruction, projectContext string, teammates models.Team, depth int) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{
		expertID:    expert.ID,
		instruction: instruction,
		depth:       depth,
		teammates:   len(teammates),
	})
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	if err, ok := f.errs[expert.ID]; ok {
		return "", err
	}
	if resp, ok := f.responses[expert.ID]; ok {
		return resp, nil
	}
	return "analysis from " + expert.Name, nil
}

func (f *fakeInvoker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var engineTeam = models.Team{
	{ID: "e1", Name: "Alice", Role: "Strategist"},
	{ID: "e2", Name: "Bob", Role: "Engineer"},
	{ID: "e3", Name: "Carol", Role: "Counsel"},
}

func newTestEngine(inv Invoker) *Engine {
	return NewEngine(inv, NewJournal(), WithFollowUpDelay(time.Millisecond))
}

func dispatch(t *testing.T, e *Engine, experts ...models.Expert) {
	t.Helper()
	err := e.DispatchBatch(context.Background(), BatchRequest{
		Experts:        experts,
		Team:           engineTeam,
		Instruction:    "Review the budget",
		ProjectContext: "A rooftop solar venture",
	})
	if err != nil {
		t.Fatalf("DispatchBatch failed: %v", err)
	}
}

func TestDispatchBatchValidation(t *testing.T) {
	e := newTestEngine(&fakeInvoker{})

	tests := []struct {
		name string
		req  BatchRequest
		want error
	}{
		{"no experts", BatchRequest{Instruction: "x", ProjectContext: "y"}, ErrNoExpertsSelected},
		{"blank instruction", BatchRequest{Experts: engineTeam[:1], Instruction: "  \n", ProjectContext: "y"}, ErrBlankInstruction},
		{"blank context", BatchRequest{Experts: engineTeam[:1], Instruction: "x", ProjectContext: " "}, ErrBlankProjectContext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.DispatchBatch(context.Background(), tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	// Validation must not mutate state.
	if e.Active() != 0 {
		t.Errorf("expected active 0 after rejected dispatches, got %d", e.Active())
	}
	if got := len(e.Journal().Pending()); got != 0 {
		t.Errorf("expected no pending markers, got %d", got)
	}
}

func TestScenarioABothSucceed(t *testing.T) {
	inv := &fakeInvoker{}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0], engineTeam[1])
	e.Wait()

	if got := len(e.Journal().Results()); got != 2 {
		t.Errorf("expected 2 results, got %d", got)
	}
	if got := len(e.Journal().Pending()); got != 0 {
		t.Errorf("expected no pending markers, got %d", got)
	}
	if e.Active() != 0 {
		t.Errorf("expected counter 0, got %d", e.Active())
	}
}

func TestScenarioBDelegation(t *testing.T) {
	inv := &fakeInvoker{
		responses: map[string]string{
			"e1": "My take. " + wrap("Bob", "Check the infra costs"),
		},
	}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0])
	e.Wait()

	results := e.Journal().Results()
	if len(results) != 2 {
		t.Fatalf("expected 2 results (Alice + delegated Bob), got %d", len(results))
	}

	var bob models.TaskResult
	for _, r := range results {
		if r.ExpertID == "e2" {
			bob = r
		}
	}
	if bob.ID == "" {
		t.Fatal("expected a result from Bob")
	}
	if bob.TriggeredBy != "Alice" {
		t.Errorf("expected Bob's result triggered by Alice, got %q", bob.TriggeredBy)
	}
	if bob.Instruction != "Check the infra costs" {
		t.Errorf("unexpected delegated instruction %q", bob.Instruction)
	}
	if e.Active() != 0 {
		t.Errorf("expected counter 0, got %d", e.Active())
	}
}

func TestScenarioCFailureIsContained(t *testing.T) {
	inv := &fakeInvoker{
		errs: map[string]error{"e3": errors.New("401 Unauthorized")},
	}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam...)
	e.Wait()

	results := e.Journal().Results()
	if len(results) != 2 {
		t.Errorf("expected 2 results from the healthy experts, got %d", len(results))
	}
	for _, r := range results {
		if r.ExpertID == "e3" {
			t.Error("failed invocation must not record a result")
		}
	}

	pending := e.Journal().Pending()
	if len(pending) != 1 {
		t.Fatalf("expected Carol's error marker, got %d markers", len(pending))
	}
	if pending[0].Status != models.MarkerError || pending[0].Error != "401 Unauthorized" {
		t.Errorf("expected verbatim error marker, got %+v", pending[0])
	}
	if e.Active() != 0 {
		t.Errorf("expected counter 0 despite failure, got %d", e.Active())
	}
}

func TestScenarioDUnknownTarget(t *testing.T) {
	inv := &fakeInvoker{
		responses: map[string]string{
			"e1": "Findings. " + wrap("Zed", "Do something"),
		},
	}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0])
	e.Wait()

	results := e.Journal().Results()
	if len(results) != 1 {
		t.Fatalf("expected only Alice's result, got %d", len(results))
	}
	if strings.Contains(results[0].Text, DelegationSentinel) {
		t.Errorf("directive markup leaked: %q", results[0].Text)
	}
	if inv.callCount() != 1 {
		t.Errorf("expected no follow-up invocation, got %d calls", inv.callCount())
	}
}

func TestDelegationChainStopsAtDepthCeiling(t *testing.T) {
	// Every expert tries to delegate onward; the chain must stop after
	// two hops no matter what the responses contain.
	inv := &fakeInvoker{
		responses: map[string]string{
			"e1": wrap("Bob", "hop one") + " alice text",
			"e2": wrap("Carol", "hop two") + " bob text",
			"e3": wrap("Alice", "hop three") + " carol text",
		},
	}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0])
	e.Wait()

	results := e.Journal().Results()
	if len(results) != 3 {
		t.Fatalf("expected exactly 3 results (depths 0, 1, 2), got %d", len(results))
	}
	for _, r := range results {
		if strings.Contains(r.Text, DelegationSentinel) {
			t.Errorf("markup leaked at some depth: %q", r.Text)
		}
	}
	if inv.callCount() != 3 {
		t.Errorf("expected 3 invocations, got %d", inv.callCount())
	}
	if e.Active() != 0 {
		t.Errorf("expected counter 0, got %d", e.Active())
	}
}

func TestNDirectivesScheduleNFollowUps(t *testing.T) {
	inv := &fakeInvoker{
		responses: map[string]string{
			"e1": wrap("Bob", "first") + wrap("Carol", "second"),
		},
	}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0])
	e.Wait()

	if got := len(e.Journal().Results()); got != 3 {
		t.Errorf("expected 3 results, got %d", got)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()
	depth1 := 0
	for _, c := range inv.calls {
		if c.depth == 1 {
			depth1++
		}
	}
	if depth1 != 2 {
		t.Errorf("expected 2 depth-1 invocations, got %d", depth1)
	}
}

func TestCancelBeforeFollowUpStarts(t *testing.T) {
	inv := &fakeInvoker{
		responses: map[string]string{
			"e1": wrap("Bob", "delegated work"),
		},
	}
	e := NewEngine(inv, NewJournal(), WithFollowUpDelay(200*time.Millisecond))

	dispatch(t, e, engineTeam[0])

	// Wait for Alice's result, then cancel before Bob's timer fires.
	deadline := time.Now().Add(2 * time.Second)
	for len(e.Journal().Results()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for root result")
		}
		time.Sleep(5 * time.Millisecond)
	}
	e.Cancel()
	e.Wait()

	results := e.Journal().Results()
	if len(results) != 1 {
		t.Errorf("expected only the root result after cancel, got %d", len(results))
	}
	if got := len(e.Journal().Pending()); got != 0 {
		t.Errorf("abandoned follow-up must not leave a marker, got %d", got)
	}
	if e.Active() != 0 {
		t.Errorf("expected counter 0, got %d", e.Active())
	}
	if e.Notice() == "" {
		t.Error("expected a user-visible cancellation notice")
	}
}

func TestCancelDoesNotAbortInFlightRoots(t *testing.T) {
	block := make(chan struct{})
	inv := &fakeInvoker{block: block}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0], engineTeam[1])

	// Both roots are in flight; cancellation must let them finish.
	deadline := time.Now().Add(2 * time.Second)
	for inv.callCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for invocations to start")
		}
		time.Sleep(5 * time.Millisecond)
	}
	e.Cancel()
	close(block)
	e.Wait()

	if got := len(e.Journal().Results()); got != 2 {
		t.Errorf("in-flight roots must still record results, got %d", got)
	}
	if e.Active() != 0 {
		t.Errorf("expected counter 0, got %d", e.Active())
	}
}

func TestDispatchResetsCancellation(t *testing.T) {
	inv := &fakeInvoker{}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0])
	e.Wait()
	e.Cancel()

	if !e.Cancelled() {
		t.Fatal("expected cancelled flag set")
	}

	dispatch(t, e, engineTeam[1])
	if e.Cancelled() {
		t.Error("dispatch must clear the cancellation flag")
	}
	e.Wait()

	if got := len(e.Journal().Results()); got != 2 {
		t.Errorf("expected both batches' results, got %d", got)
	}
}

func TestSecondBatchWhileInFlightRejected(t *testing.T) {
	block := make(chan struct{})
	inv := &fakeInvoker{block: block}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0])

	err := e.DispatchBatch(context.Background(), BatchRequest{
		Experts:        []models.Expert{engineTeam[1]},
		Team:           engineTeam,
		Instruction:    "x",
		ProjectContext: "y",
	})
	if !errors.Is(err, ErrBatchInFlight) {
		t.Errorf("expected ErrBatchInFlight, got %v", err)
	}

	close(block)
	e.Wait()
}

func TestEngineEmitsBatchDone(t *testing.T) {
	inv := &fakeInvoker{}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0], engineTeam[1])

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-e.Events():
			if ev.Type == EventBatchDone {
				if e.Active() != 0 {
					t.Errorf("batch done with active %d", e.Active())
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for batch done event")
		}
	}
}

func TestTeammatesExcludeActingExpert(t *testing.T) {
	inv := &fakeInvoker{}
	e := newTestEngine(inv)

	dispatch(t, e, engineTeam[0])
	e.Wait()

	inv.mu.Lock()
	defer inv.mu.Unlock()
	if len(inv.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(inv.calls))
	}
	if inv.calls[0].teammates != 2 {
		t.Errorf("expected 2 teammates (team minus self), got %d", inv.calls[0].teammates)
	}
}
