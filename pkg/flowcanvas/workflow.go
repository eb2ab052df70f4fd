package flowcanvas

import (
	"time"
)

// Settings is opaque model configuration consumed by execution
// collaborators. Every field is optional.
type Settings struct {
	Model       string   `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey      string   `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty" yaml:"maxTokens,omitempty"`
}

func (s Settings) clone() Settings {
	if s.Temperature != nil {
		v := *s.Temperature
		s.Temperature = &v
	}
	if s.MaxTokens != nil {
		v := *s.MaxTokens
		s.MaxTokens = &v
	}
	return s
}

// Workflow is the aggregate of nodes, edges and settings for one agent
// pipeline. Nodes and edges keep insertion order.
type Workflow struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Nodes       []Node    `json:"nodes" yaml:"nodes"`
	Edges       []Edge    `json:"edges" yaml:"edges"`
	Settings    Settings  `json:"settings" yaml:"settings"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a deep copy of w. Mutating the copy, including nested node
// data, never affects w. Clone of nil is nil.
func (w *Workflow) Clone() *Workflow {
	if w == nil {
		return nil
	}
	out := *w
	out.Settings = w.Settings.clone()
	if w.Nodes != nil {
		out.Nodes = make([]Node, len(w.Nodes))
		for i, n := range w.Nodes {
			out.Nodes[i] = n.Clone()
		}
	}
	if w.Edges != nil {
		out.Edges = make([]Edge, len(w.Edges))
		for i, e := range w.Edges {
			out.Edges[i] = e.Clone()
		}
	}
	return &out
}

// NodeIndex returns the position of node id in Nodes, or -1.
func (w *Workflow) NodeIndex(id string) int {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// EdgeIndex returns the position of edge id in Edges, or -1.
func (w *Workflow) EdgeIndex(id string) int {
	for i := range w.Edges {
		if w.Edges[i].ID == id {
			return i
		}
	}
	return -1
}

// Node returns the node with the given id.
func (w *Workflow) Node(id string) (Node, bool) {
	if i := w.NodeIndex(id); i >= 0 {
		return w.Nodes[i], true
	}
	return Node{}, false
}

// Edge returns the edge with the given id.
func (w *Workflow) Edge(id string) (Edge, bool) {
	if i := w.EdgeIndex(id); i >= 0 {
		return w.Edges[i], true
	}
	return Edge{}, false
}

// NodeIDs returns node ids in workflow order.
func (w *Workflow) NodeIDs() []string {
	ids := make([]string, len(w.Nodes))
	for i, n := range w.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// EdgeIDs returns edge ids in workflow order.
func (w *Workflow) EdgeIDs() []string {
	ids := make([]string, len(w.Edges))
	for i, e := range w.Edges {
		ids[i] = e.ID
	}
	return ids
}
