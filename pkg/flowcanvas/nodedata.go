package flowcanvas

import (
	"fmt"
	"slices"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/config"
)

// NodeData is the typed configuration of one node kind.
//
// The open Node.Data map stays the storage form so partial updates can be
// shallow-merged. NodeData is decoded from it on demand and converted back
// with Fields.
type NodeData interface {
	// Kind returns the node type this data belongs to.
	Kind() NodeType

	// Fields returns the data as an open mapping using the wire key names.
	Fields() map[string]any

	// Validate reports values outside the set the editor offers.
	Validate() error
}

// HTTPMethods lists the methods an API endpoint node may use.
var HTTPMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}

// OutputFormats lists the formats an output node may produce.
var OutputFormats = []string{"json", "text", "xml"}

// OrchestratorData configures an orchestrator node.
type OrchestratorData struct {
	Name        string
	Description string
}

func (OrchestratorData) Kind() NodeType { return Orchestrator }
func (OrchestratorData) Validate() error { return nil }

func (d OrchestratorData) Fields() map[string]any {
	return map[string]any{"name": d.Name, "description": d.Description}
}

// IntentClassifierData configures an intent classifier node.
type IntentClassifierData struct {
	Name         string
	SystemPrompt string
}

func (IntentClassifierData) Kind() NodeType { return IntentClassifier }
func (IntentClassifierData) Validate() error { return nil }

func (d IntentClassifierData) Fields() map[string]any {
	return map[string]any{"name": d.Name, "systemPrompt": d.SystemPrompt}
}

// AgentData configures an agent node.
type AgentData struct {
	Name         string
	SystemPrompt string
	Tools        []string
}

func (AgentData) Kind() NodeType { return Agent }
func (AgentData) Validate() error { return nil }

func (d AgentData) Fields() map[string]any {
	tools := make([]any, len(d.Tools))
	for i, t := range d.Tools {
		tools[i] = t
	}
	return map[string]any{"name": d.Name, "systemPrompt": d.SystemPrompt, "tools": tools}
}

// KnowledgeBaseData configures a knowledge base node.
// StoreType is serialized under the key "type".
type KnowledgeBaseData struct {
	Name      string
	Source    string
	StoreType string
}

func (KnowledgeBaseData) Kind() NodeType { return KnowledgeBase }
func (KnowledgeBaseData) Validate() error { return nil }

func (d KnowledgeBaseData) Fields() map[string]any {
	return map[string]any{"name": d.Name, "source": d.Source, "type": d.StoreType}
}

// APIEndpointData configures an API endpoint node.
type APIEndpointData struct {
	Name    string
	URL     string
	Method  string
	Headers map[string]string
}

func (APIEndpointData) Kind() NodeType { return APIEndpoint }

func (d APIEndpointData) Validate() error {
	if !slices.Contains(HTTPMethods, d.Method) {
		return fmt.Errorf("%w: method %q", ErrInvalidNodeData, d.Method)
	}
	return nil
}

func (d APIEndpointData) Fields() map[string]any {
	headers := make(map[string]any, len(d.Headers))
	for k, v := range d.Headers {
		headers[k] = v
	}
	return map[string]any{"name": d.Name, "url": d.URL, "method": d.Method, "headers": headers}
}

// ToolData configures a tool node.
type ToolData struct {
	Name        string
	Description string
	Code        string
}

func (ToolData) Kind() NodeType { return Tool }
func (ToolData) Validate() error { return nil }

func (d ToolData) Fields() map[string]any {
	return map[string]any{"name": d.Name, "description": d.Description, "code": d.Code}
}

// OutputData configures an output node.
type OutputData struct {
	Name   string
	Format string
}

func (OutputData) Kind() NodeType { return Output }

func (d OutputData) Validate() error {
	if !slices.Contains(OutputFormats, d.Format) {
		return fmt.Errorf("%w: format %q", ErrInvalidNodeData, d.Format)
	}
	return nil
}

func (d OutputData) Fields() map[string]any {
	return map[string]any{"name": d.Name, "format": d.Format}
}

// DecodeNodeData reads the open data mapping of a node of type t.
// Missing or mistyped keys take the editor's defaults ("GET" for method,
// "json" for format, empty otherwise). Unknown keys are ignored.
func DecodeNodeData(t NodeType, data map[string]any) (NodeData, error) {
	v := config.New(data)
	name := v.String("name", "")

	switch t {
	case Orchestrator:
		return OrchestratorData{Name: name, Description: v.String("description", "")}, nil
	case IntentClassifier:
		return IntentClassifierData{Name: name, SystemPrompt: v.String("systemPrompt", "")}, nil
	case Agent:
		return AgentData{
			Name:         name,
			SystemPrompt: v.String("systemPrompt", ""),
			Tools:        v.StringSlice("tools", []string{}),
		}, nil
	case KnowledgeBase:
		return KnowledgeBaseData{
			Name:      name,
			Source:    v.String("source", ""),
			StoreType: v.String("type", ""),
		}, nil
	case APIEndpoint:
		return APIEndpointData{
			Name:    name,
			URL:     v.String("url", ""),
			Method:  v.String("method", "GET"),
			Headers: v.StringMap("headers", map[string]string{}),
		}, nil
	case Tool:
		return ToolData{
			Name:        name,
			Description: v.String("description", ""),
			Code:        v.String("code", ""),
		}, nil
	case Output:
		return OutputData{Name: name, Format: v.String("format", "json")}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, string(t))
	}
}
