package palette

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas"
)

// NodeConfig is the display and default configuration of one node kind.
type NodeConfig struct {
	Type        flowcanvas.NodeType `json:"type" yaml:"type"`
	Label       string              `json:"label" yaml:"label"`
	Icon        string              `json:"icon" yaml:"icon"` // lucide icon name
	Color       string              `json:"color" yaml:"color"`
	DefaultData map[string]any      `json:"defaultData" yaml:"defaultData"`
}

func (c NodeConfig) clone() NodeConfig {
	c.DefaultData = flowcanvas.CloneData(c.DefaultData)
	return c
}

// Palette is a thread-safe registry of node configs keyed by node type.
// Values handed out are copies; mutating them never changes the palette.
type Palette struct {
	mu      sync.RWMutex
	entries map[flowcanvas.NodeType]NodeConfig
	newID   func(flowcanvas.NodeType) string
}

// Option configures a Palette.
type Option func(*Palette)

// WithIDFunc overrides node id generation in NewNode.
func WithIDFunc(fn func(flowcanvas.NodeType) string) Option {
	return func(p *Palette) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// New creates an empty palette.
func New(opts ...Option) *Palette {
	p := &Palette{
		entries: make(map[flowcanvas.NodeType]NodeConfig),
		newID:   defaultID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// defaultID returns "<type>-<first 8 hex chars of a uuid>".
func defaultID(t flowcanvas.NodeType) string {
	return fmt.Sprintf("%s-%s", t, uuid.NewString()[:8])
}

// Register adds or replaces the config for cfg.Type.
func (p *Palette) Register(cfg NodeConfig) error {
	if !cfg.Type.Valid() {
		return fmt.Errorf("register %q: %w", cfg.Type, flowcanvas.ErrUnknownNodeType)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[cfg.Type] = cfg.clone()
	return nil
}

// Get returns the config for t.
func (p *Palette) Get(t flowcanvas.NodeType) (NodeConfig, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cfg, ok := p.entries[t]
	if !ok {
		return NodeConfig{}, false
	}
	return cfg.clone(), true
}

// MustGet returns the config for t, panicking if it is not registered.
func (p *Palette) MustGet(t flowcanvas.NodeType) NodeConfig {
	cfg, ok := p.Get(t)
	if !ok {
		panic(fmt.Sprintf("flowcanvas: palette has no config for %q", t))
	}
	return cfg
}

// Has reports whether t is registered.
func (p *Palette) Has(t flowcanvas.NodeType) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.entries[t]
	return ok
}

// Configs returns the registered configs in canonical node type order.
func (p *Palette) Configs() []NodeConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]NodeConfig, 0, len(p.entries))
	for _, t := range flowcanvas.NodeTypes() {
		if cfg, ok := p.entries[t]; ok {
			out = append(out, cfg.clone())
		}
	}
	return out
}

// Len returns the number of registered configs.
func (p *Palette) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// NewNode instantiates a node of type t at pos, the way a palette drop
// does: a fresh id, the config label and a copy of the default data.
func (p *Palette) NewNode(t flowcanvas.NodeType, pos flowcanvas.Position) (flowcanvas.Node, error) {
	cfg, ok := p.Get(t)
	if !ok {
		return flowcanvas.Node{}, fmt.Errorf("new node %q: %w", t, flowcanvas.ErrUnknownNodeType)
	}
	return flowcanvas.Node{
		ID:       p.newID(t),
		Type:     t,
		Label:    cfg.Label,
		Data:     cfg.DefaultData,
		Position: pos,
	}, nil
}
