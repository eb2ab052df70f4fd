package flowcanvas

import (
	"sync"
	"time"
)

// fakeClock returns a strictly increasing time on every call.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func node(id string, t NodeType) Node {
	return Node{ID: id, Type: t, Label: string(t), Data: map[string]any{"name": id}}
}

func edge(id, source, target string) Edge {
	return Edge{ID: id, Source: source, Target: target}
}

// supportWorkflow is a small valid pipeline:
//
//	orch -> classifier -> agent -> tool
//	                            -> out
func supportWorkflow() *Workflow {
	temp := 0.7
	maxTokens := 2000
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Workflow{
		ID:          "wf-support",
		Name:        "Customer Support Agent",
		Description: "AI-powered customer support workflow",
		Nodes: []Node{
			node("orch", Orchestrator),
			node("classifier", IntentClassifier),
			{ID: "agent", Type: Agent, Label: "Agent", Data: map[string]any{
				"name":         "Agent",
				"systemPrompt": "Be helpful",
				"tools":        []any{"search"},
			}},
			node("tool", Tool),
			node("out", Output),
		},
		Edges: []Edge{
			edge("e1", "orch", "classifier"),
			{ID: "e2", Source: "classifier", Target: "agent", Data: &EdgeData{Condition: "intent == 'support'", Label: "support"}},
			edge("e3", "agent", "tool"),
			edge("e4", "agent", "out"),
		},
		Settings:  Settings{Model: "GPT-4", Temperature: &temp, MaxTokens: &maxTokens},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func newTestStore(opts ...StoreOption) (*Store, *fakeClock) {
	clock := newFakeClock()
	opts = append([]StoreOption{WithClock(clock.Now)}, opts...)
	return NewStore(opts...), clock
}
