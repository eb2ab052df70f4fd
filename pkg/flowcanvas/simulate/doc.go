/*
Package simulate dry-runs a workflow with mocked node responses.

No model or network is called. Each node reports running, waits for the
configured step delay and then succeeds with a canned output from the
Responder. Edge conditions are evaluated with package expr against the
run variables, so branches that do not match are left unvisited and end
as skipped.

# Run Variables

	input            the user input
	<nodeID>.output  output of an executed node
	<nodeID>.reasoning
	<nodeID>.type
	intent           set by the mock intent classifier ("support")

A Responder may add further top-level variables through Response.Vars.

# Usage

	runner := simulate.New(simulate.WithStepDelay(500 * time.Millisecond))
	res, err := runner.Run(ctx, wf, "My order never arrived", func(steps []simulate.Step) {
		render(steps)
	})

Cancelling ctx stops the run and returns a *CancellationError carrying the
steps recorded so far.
*/
package simulate
