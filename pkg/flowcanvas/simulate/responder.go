package simulate

import (
	"context"
	"fmt"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas"
)

// Response is the mocked result of running one node.
type Response struct {
	Output    string
	Reasoning string
	// Vars are merged into the top-level run variables.
	Vars map[string]any
}

// Responder produces the response of a node.
type Responder interface {
	Respond(ctx context.Context, node flowcanvas.Node, input string, vars map[string]any) (Response, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, node flowcanvas.Node, input string, vars map[string]any) (Response, error)

func (f ResponderFunc) Respond(ctx context.Context, node flowcanvas.Node, input string, vars map[string]any) (Response, error) {
	return f(ctx, node, input, vars)
}

// MockResponder returns canned responses per node type.
type MockResponder struct{}

// Respond implements Responder.
func (MockResponder) Respond(_ context.Context, node flowcanvas.Node, _ string, _ map[string]any) (Response, error) {
	data, err := node.Typed()
	if err != nil {
		return Response{}, err
	}

	switch d := data.(type) {
	case flowcanvas.OrchestratorData:
		return Response{
			Output:    "Routing request to downstream nodes",
			Reasoning: "Coordinating workflow execution...",
		}, nil
	case flowcanvas.IntentClassifierData:
		return Response{
			Output:    "Intent: Customer Support",
			Reasoning: "Analyzing user input to determine intent...",
			Vars:      map[string]any{"intent": "support"},
		}, nil
	case flowcanvas.KnowledgeBaseData:
		return Response{
			Output:    "Found 3 relevant documents",
			Reasoning: "Searching knowledge base for relevant documents...",
			Vars:      map[string]any{"documents": 3},
		}, nil
	case flowcanvas.AgentData:
		return Response{
			Output:    "Here's the solution to your problem...",
			Reasoning: "Generating response based on retrieved context...",
		}, nil
	case flowcanvas.APIEndpointData:
		return Response{
			Output:    fmt.Sprintf("%s %s responded 200 OK", d.Method, d.URL),
			Reasoning: "Calling external API...",
			Vars:      map[string]any{"status": 200},
		}, nil
	case flowcanvas.ToolData:
		return Response{
			Output:    fmt.Sprintf("Tool %s executed", d.Name),
			Reasoning: "Running tool function...",
		}, nil
	case flowcanvas.OutputData:
		return Response{
			Output:    fmt.Sprintf("Response formatted as %s", d.Format),
			Reasoning: "Formatting final response...",
		}, nil
	}
	return Response{}, fmt.Errorf("no mock response for %s", node.Type)
}
