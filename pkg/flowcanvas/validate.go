package flowcanvas

import (
	"fmt"
	"slices"
)

// Connection feedback colors.
const (
	ValidConnectionColor   = "#10b981"
	InvalidConnectionColor = "#ef4444"
)

// allowedTargets is the static allow-list of target types per source type.
var allowedTargets = map[NodeType][]NodeType{
	Orchestrator:     {IntentClassifier, Agent, Output},
	IntentClassifier: {Agent, KnowledgeBase, Output},
	Agent:            {Tool, KnowledgeBase, APIEndpoint, Output},
	KnowledgeBase:    {Agent, Output},
	APIEndpoint:      {Agent, Output},
	Tool:             {Agent, Output},
	Output:           {},
}

// noSelfLoop holds the types that may never connect a node to itself.
var noSelfLoop = map[NodeType]bool{
	Orchestrator: true,
	Output:       true,
}

// ConnectionValidation is the outcome of checking a proposed edge.
// Reason is empty when IsValid is true.
type ConnectionValidation struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason,omitempty"`
}

// AllowedTargets returns the target types source may connect to.
// Unknown types have none.
func AllowedTargets(source NodeType) []NodeType {
	return slices.Clone(allowedTargets[source])
}

// CanConnect reports whether the type pair is on the allow-list.
func CanConnect(source, target NodeType) bool {
	return slices.Contains(allowedTargets[source], target)
}

// ValidateConnection decides whether an edge from a node of sourceType to a
// node of targetType is admissible. Rules apply in order and the first
// failure wins:
//
//  1. a self-loop on an orchestrator or output node
//  2. a target type missing from the source's allow-list
//  3. any edge leaving an output node
//
// The check is local to the type pair. It does not prevent cycles among
// node instances.
func ValidateConnection(sourceType, targetType NodeType, sourceID, targetID string) ConnectionValidation {
	if sourceID == targetID && noSelfLoop[sourceType] {
		return ConnectionValidation{Reason: fmt.Sprintf("%s cannot connect to itself", sourceType)}
	}
	if !CanConnect(sourceType, targetType) {
		return ConnectionValidation{Reason: fmt.Sprintf("Cannot connect %s to %s", sourceType, targetType)}
	}
	if sourceType == Output {
		return ConnectionValidation{Reason: "Output nodes cannot have outgoing connections"}
	}
	return ConnectionValidation{IsValid: true}
}

// ValidateEdge resolves both endpoints in w and applies ValidateConnection.
// A nil workflow and missing endpoints are rejected first.
func ValidateEdge(w *Workflow, sourceID, targetID string) ConnectionValidation {
	if w == nil {
		return ConnectionValidation{Reason: noWorkflowReason}
	}
	source, ok := w.Node(sourceID)
	if !ok {
		return ConnectionValidation{Reason: fmt.Sprintf("source node %s not found", sourceID)}
	}
	target, ok := w.Node(targetID)
	if !ok {
		return ConnectionValidation{Reason: fmt.Sprintf("target node %s not found", targetID)}
	}
	return ValidateConnection(source.Type, target.Type, sourceID, targetID)
}

const noWorkflowReason = "no active workflow"

// ConnectionColor returns the feedback color for a validation outcome.
func ConnectionColor(isValid bool) string {
	if isValid {
		return ValidConnectionColor
	}
	return InvalidConnectionColor
}
