package flowcanvas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTypes(t *testing.T) {
	types := NodeTypes()
	assert.Equal(t, []NodeType{
		Orchestrator, IntentClassifier, Agent, KnowledgeBase, APIEndpoint, Tool, Output,
	}, types)

	types[0] = "mutated"
	assert.Equal(t, Orchestrator, NodeTypes()[0])
}

func TestParseNodeType(t *testing.T) {
	for _, nt := range NodeTypes() {
		got, err := ParseNodeType(string(nt))
		require.NoError(t, err)
		assert.Equal(t, nt, got)
		assert.True(t, got.Valid())
	}

	_, err := ParseNodeType("Agent")
	assert.ErrorIs(t, err, ErrUnknownNodeType)
	_, err = ParseNodeType("")
	assert.ErrorIs(t, err, ErrUnknownNodeType)
	assert.False(t, NodeType("router").Valid())
}

func TestDecodeNodeData(t *testing.T) {
	tests := []struct {
		name string
		typ  NodeType
		data map[string]any
		want NodeData
	}{
		{
			name: "orchestrator",
			typ:  Orchestrator,
			data: map[string]any{"name": "Orchestrator", "description": "Central workflow orchestrator"},
			want: OrchestratorData{Name: "Orchestrator", Description: "Central workflow orchestrator"},
		},
		{
			name: "intent classifier",
			typ:  IntentClassifier,
			data: map[string]any{"name": "IC", "systemPrompt": "Classify user intent..."},
			want: IntentClassifierData{Name: "IC", SystemPrompt: "Classify user intent..."},
		},
		{
			name: "agent with decoded json tools",
			typ:  Agent,
			data: map[string]any{"name": "Agent", "systemPrompt": "", "tools": []any{"search", "calc"}},
			want: AgentData{Name: "Agent", Tools: []string{"search", "calc"}},
		},
		{
			name: "knowledge base type key",
			typ:  KnowledgeBase,
			data: map[string]any{"name": "KB", "source": "s3://docs", "type": "vector"},
			want: KnowledgeBaseData{Name: "KB", Source: "s3://docs", StoreType: "vector"},
		},
		{
			name: "api endpoint headers",
			typ:  APIEndpoint,
			data: map[string]any{"url": "https://api.example.com", "method": "POST", "headers": map[string]any{"X-Key": "k"}},
			want: APIEndpointData{URL: "https://api.example.com", Method: "POST", Headers: map[string]string{"X-Key": "k"}},
		},
		{
			name: "api endpoint defaults",
			typ:  APIEndpoint,
			data: nil,
			want: APIEndpointData{Method: "GET", Headers: map[string]string{}},
		},
		{
			name: "tool",
			typ:  Tool,
			data: map[string]any{"name": "Tool", "description": "d", "code": "return 1"},
			want: ToolData{Name: "Tool", Description: "d", Code: "return 1"},
		},
		{
			name: "output default format",
			typ:  Output,
			data: map[string]any{"name": "Out", "format": 42},
			want: OutputData{Name: "Out", Format: "json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeNodeData(tt.typ, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.typ, got.Kind())
		})
	}
}

func TestDecodeNodeData_UnknownType(t *testing.T) {
	_, err := DecodeNodeData("router", nil)
	assert.ErrorIs(t, err, ErrUnknownNodeType)
}

// TestNodeData_FieldsRoundTrip verifies Fields produces data that decodes
// back to the same value.
func TestNodeData_FieldsRoundTrip(t *testing.T) {
	values := []NodeData{
		OrchestratorData{Name: "o", Description: "d"},
		IntentClassifierData{Name: "i", SystemPrompt: "p"},
		AgentData{Name: "a", SystemPrompt: "p", Tools: []string{"x"}},
		KnowledgeBaseData{Name: "k", Source: "src", StoreType: "vector"},
		APIEndpointData{Name: "api", URL: "u", Method: "PUT", Headers: map[string]string{"h": "v"}},
		ToolData{Name: "t", Description: "d", Code: "c"},
		OutputData{Name: "out", Format: "xml"},
	}
	for _, v := range values {
		got, err := DecodeNodeData(v.Kind(), v.Fields())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestNodeData_Validate(t *testing.T) {
	assert.NoError(t, APIEndpointData{Method: "DELETE"}.Validate())
	assert.ErrorIs(t, APIEndpointData{Method: "FETCH"}.Validate(), ErrInvalidNodeData)
	assert.NoError(t, OutputData{Format: "text"}.Validate())
	assert.ErrorIs(t, OutputData{Format: "csv"}.Validate(), ErrInvalidNodeData)
	assert.NoError(t, AgentData{}.Validate())
}

func TestNode_Typed(t *testing.T) {
	n := Node{ID: "a", Type: Agent, Data: map[string]any{"name": "Helper", "tools": []string{"t1"}}}
	data, err := n.Typed()
	require.NoError(t, err)

	agent, ok := data.(AgentData)
	require.True(t, ok)
	assert.Equal(t, "Helper", agent.Name)
	assert.Equal(t, []string{"t1"}, agent.Tools)

	_, err = Node{Type: "bogus"}.Typed()
	assert.True(t, errors.Is(err, ErrUnknownNodeType))
}

func TestEdge_Condition(t *testing.T) {
	assert.Empty(t, Edge{}.Condition())
	assert.Equal(t, "x > 1", Edge{Data: &EdgeData{Condition: "x > 1"}}.Condition())
}
