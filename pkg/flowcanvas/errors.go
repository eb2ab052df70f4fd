package flowcanvas

import (
	"errors"
	"fmt"
)

// Sentinel errors for node kinds and data.
var (
	// ErrUnknownNodeType indicates a type outside the seven node kinds.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrInvalidNodeData indicates node data holds a value the editor does not offer.
	ErrInvalidNodeData = errors.New("invalid node data")
)

// Sentinel errors reported by Audit.
var (
	// ErrDuplicateNodeID indicates two nodes share an id.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrDuplicateEdgeID indicates two edges share an id.
	ErrDuplicateEdgeID = errors.New("duplicate edge id")

	// ErrDanglingEdge indicates an edge endpoint names a missing node.
	ErrDanglingEdge = errors.New("edge references missing node")

	// ErrInvalidConnection indicates an edge the connection rules reject.
	ErrInvalidConnection = errors.New("invalid connection")
)

// NodeError attaches a node id to an audit problem.
type NodeError struct {
	NodeID string
	Err    error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %v", e.NodeID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// EdgeError attaches an edge id to an audit problem.
type EdgeError struct {
	EdgeID string
	Err    error
}

// Error implements the error interface.
func (e *EdgeError) Error() string {
	return fmt.Sprintf("edge %s: %v", e.EdgeID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EdgeError) Unwrap() error {
	return e.Err
}

// Result reports what a store command did.
//
// Store commands never fail. A command whose target does not exist, or that
// runs with no active workflow, leaves state untouched and says so here.
type Result int

const (
	// Applied means the command changed state.
	Applied Result = iota
	// NoWorkflow means no workflow was active.
	NoWorkflow
	// NotFound means the referenced node or edge does not exist.
	NotFound
	// AtBoundary means undo or redo was already at the end of history.
	AtBoundary
	// Rejected means the connection rules refused a new edge.
	Rejected
)

// Changed reports whether the command altered state.
func (r Result) Changed() bool {
	return r == Applied
}

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case NoWorkflow:
		return "no_workflow"
	case NotFound:
		return "not_found"
	case AtBoundary:
		return "at_boundary"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}
