package simulate

import (
	"errors"
	"fmt"
)

// Sentinel errors for simulation runs.
var (
	// ErrEmptyInput indicates the input was blank.
	ErrEmptyInput = errors.New("simulation input is empty")

	// ErrNoWorkflow indicates Run was given a nil workflow.
	ErrNoWorkflow = errors.New("no workflow to simulate")
)

// CancellationError captures the run state when ctx was cancelled.
type CancellationError struct {
	// NodeID is the node that was about to run or was running.
	NodeID string
	// Steps is a snapshot of every step at cancellation.
	Steps []Step
	// Cause is ctx.Err().
	Cause error
	// WasExecuting is true if cancellation interrupted a running node.
	WasExecuting bool
}

func (e *CancellationError) Error() string {
	if e.WasExecuting {
		return fmt.Sprintf("simulation cancelled during node %s: %v", e.NodeID, e.Cause)
	}
	return fmt.Sprintf("simulation cancelled before node %s: %v", e.NodeID, e.Cause)
}

func (e *CancellationError) Unwrap() error {
	return e.Cause
}

// ConditionError reports an edge condition that failed to parse.
type ConditionError struct {
	EdgeID    string
	Condition string
	Err       error
}

func (e *ConditionError) Error() string {
	return fmt.Sprintf("edge %s condition %q: %v", e.EdgeID, e.Condition, e.Err)
}

func (e *ConditionError) Unwrap() error {
	return e.Err
}
