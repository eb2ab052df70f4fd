package flowcanvas

import (
	"errors"
	"fmt"
)

// Audit checks a whole workflow against the invariants the store only
// enforces at edit time. It is meant for imported documents.
//
// All problems are reported, joined with errors.Join:
//   - duplicate node or edge ids
//   - unknown node types and node data the editor does not offer
//   - edges whose source or target node is missing
//   - edges the connection rules reject
//
// Instance-level cycles are not problems; see FindCycle.
func Audit(w *Workflow) error {
	return errors.Join(Problems(w)...)
}

// Problems returns each audit problem in node then edge order.
func Problems(w *Workflow) []error {
	if w == nil {
		return nil
	}
	var problems []error

	types := make(map[string]NodeType, len(w.Nodes))
	for _, n := range w.Nodes {
		if _, dup := types[n.ID]; dup {
			problems = append(problems, &NodeError{NodeID: n.ID, Err: ErrDuplicateNodeID})
			continue
		}
		types[n.ID] = n.Type

		data, err := n.Typed()
		if err != nil {
			problems = append(problems, &NodeError{NodeID: n.ID, Err: err})
			continue
		}
		if err := data.Validate(); err != nil {
			problems = append(problems, &NodeError{NodeID: n.ID, Err: err})
		}
	}

	seen := make(map[string]bool, len(w.Edges))
	for _, e := range w.Edges {
		if seen[e.ID] {
			problems = append(problems, &EdgeError{EdgeID: e.ID, Err: ErrDuplicateEdgeID})
			continue
		}
		seen[e.ID] = true

		sourceType, hasSource := types[e.Source]
		targetType, hasTarget := types[e.Target]
		switch {
		case !hasSource:
			problems = append(problems, &EdgeError{EdgeID: e.ID, Err: fmt.Errorf("%w: source %s", ErrDanglingEdge, e.Source)})
			continue
		case !hasTarget:
			problems = append(problems, &EdgeError{EdgeID: e.ID, Err: fmt.Errorf("%w: target %s", ErrDanglingEdge, e.Target)})
			continue
		}

		if v := ValidateConnection(sourceType, targetType, e.Source, e.Target); !v.IsValid {
			problems = append(problems, &EdgeError{EdgeID: e.ID, Err: fmt.Errorf("%w: %s", ErrInvalidConnection, v.Reason)})
		}
	}
	return problems
}
