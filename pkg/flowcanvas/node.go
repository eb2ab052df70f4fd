package flowcanvas

import (
	"fmt"
)

// NodeType identifies one of the fixed node kinds a workflow may contain.
type NodeType string

// The closed set of node kinds.
const (
	Orchestrator     NodeType = "orchestrator"
	IntentClassifier NodeType = "intent-classifier"
	Agent            NodeType = "agent"
	KnowledgeBase    NodeType = "knowledge-base"
	APIEndpoint      NodeType = "api-endpoint"
	Tool             NodeType = "tool"
	Output           NodeType = "output"
)

var nodeTypes = []NodeType{
	Orchestrator,
	IntentClassifier,
	Agent,
	KnowledgeBase,
	APIEndpoint,
	Tool,
	Output,
}

// NodeTypes returns every node type in canonical palette order.
func NodeTypes() []NodeType {
	out := make([]NodeType, len(nodeTypes))
	copy(out, nodeTypes)
	return out
}

// Valid reports whether t is one of the seven node kinds.
func (t NodeType) Valid() bool {
	for _, known := range nodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (t NodeType) String() string {
	return string(t)
}

// ParseNodeType converts s to a NodeType, rejecting unknown kinds.
func ParseNodeType(s string) (NodeType, error) {
	t := NodeType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownNodeType, s)
	}
	return t, nil
}

// Position is a canvas coordinate. It is presentation only and never
// validated.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a typed unit of workflow behavior.
//
// Data holds kind-specific configuration as an open mapping. Use Typed for
// a statically checked view of the same fields.
type Node struct {
	ID       string         `json:"id" yaml:"id"`
	Type     NodeType       `json:"type" yaml:"type"`
	Label    string         `json:"label" yaml:"label"`
	Data     map[string]any `json:"data" yaml:"data"`
	Position Position       `json:"position" yaml:"position"`
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	n.Data = cloneMap(n.Data)
	return n
}

// Typed decodes the node's data into the struct for its kind.
func (n Node) Typed() (NodeData, error) {
	return DecodeNodeData(n.Type, n.Data)
}

// EdgeData carries optional routing metadata on an edge.
// Condition is free text; the store and validator never interpret it.
type EdgeData struct {
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string    `json:"id" yaml:"id"`
	Source string    `json:"source" yaml:"source"`
	Target string    `json:"target" yaml:"target"`
	Data   *EdgeData `json:"data,omitempty" yaml:"data,omitempty"`
}

// Clone returns a deep copy of e.
func (e Edge) Clone() Edge {
	if e.Data != nil {
		d := *e.Data
		e.Data = &d
	}
	return e
}

// Condition returns the edge's routing condition, or "" when none.
func (e Edge) Condition() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.Condition
}
