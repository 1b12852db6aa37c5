// Package panel coordinates the execution of a panel of persona experts.
//
// The panel package provides functionality for:
//   - Batch dispatch: Fanning a user instruction out to every selected expert in parallel
//   - Delegation: Parsing follow-up directives embedded in model output and scheduling
//     depth-bounded sub-tasks addressed to teammates
//   - Reconciliation: Maintaining the journal of completed results and in-flight
//     pending markers along with an active-work counter and a cooperative
//     cancellation flag
//
// The Engine component owns every piece of shared mutable state. All mutation
// happens under a single mutex, so invocations running on separate goroutines
// observe a consistent counter, flag, and journal.
//
// Example usage:
//
//	journal := panel.NewJournal()
//	engine := panel.NewEngine(adapter, journal)
//	err := engine.DispatchBatch(ctx, panel.BatchRequest{
//		Experts:        selected,
//		Team:           roster,
//		Instruction:    "Review the budget",
//		ProjectContext: project,
//	})
package panel
