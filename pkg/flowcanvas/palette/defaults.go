package palette

import (
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas"
)

// DefaultConfigs returns the seven built-in node configs.
func DefaultConfigs() []NodeConfig {
	return []NodeConfig{
		{
			Type:  flowcanvas.Orchestrator,
			Label: "Orchestrator",
			Icon:  "Network",
			Color: "#3b82f6",
			DefaultData: map[string]any{
				"name":        "Orchestrator",
				"description": "Central workflow orchestrator",
			},
		},
		{
			Type:  flowcanvas.IntentClassifier,
			Label: "Intent Classifier",
			Icon:  "GitBranch",
			Color: "#8b5cf6",
			DefaultData: map[string]any{
				"name":         "Intent Classifier",
				"systemPrompt": "Classify user intent...",
			},
		},
		{
			Type:  flowcanvas.Agent,
			Label: "Agent",
			Icon:  "Zap",
			Color: "#ec4899",
			DefaultData: map[string]any{
				"name":         "Agent",
				"systemPrompt": "",
				"tools":        []any{},
			},
		},
		{
			Type:  flowcanvas.KnowledgeBase,
			Label: "Knowledge Base",
			Icon:  "Database",
			Color: "#f59e0b",
			DefaultData: map[string]any{
				"name":   "Knowledge Base",
				"source": "",
				"type":   "vector",
			},
		},
		{
			Type:  flowcanvas.APIEndpoint,
			Label: "API Endpoint",
			Icon:  "Globe",
			Color: "#10b981",
			DefaultData: map[string]any{
				"name":    "API Endpoint",
				"url":     "",
				"method":  "GET",
				"headers": map[string]any{},
			},
		},
		{
			Type:  flowcanvas.Tool,
			Label: "Tool/Function",
			Icon:  "Wrench",
			Color: "#06b6d4",
			DefaultData: map[string]any{
				"name":        "Tool",
				"description": "",
				"code":        "",
			},
		},
		{
			Type:  flowcanvas.Output,
			Label: "Output/Response",
			Icon:  "CheckCircle2",
			Color: "#14b8a6",
			DefaultData: map[string]any{
				"name":   "Output",
				"format": "json",
			},
		},
	}
}

// Default returns a palette holding DefaultConfigs.
func Default(opts ...Option) *Palette {
	p := New(opts...)
	for _, cfg := range DefaultConfigs() {
		// Built-in types are always valid.
		_ = p.Register(cfg)
	}
	return p
}
