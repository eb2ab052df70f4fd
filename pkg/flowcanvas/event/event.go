package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Change event types published by the workflow store.
const (
	WorkflowSet      = "workflow.set"
	NodeAdded        = "node.added"
	NodeUpdated      = "node.updated"
	NodeRemoved      = "node.removed"
	EdgeAdded        = "edge.added"
	EdgeRemoved      = "edge.removed"
	SelectionChanged = "selection.changed"
	HistorySaved     = "history.saved"
	HistoryUndo      = "history.undo"
	HistoryRedo      = "history.redo"
)

// Types returns every change event type in a stable order.
func Types() []string {
	return []string{
		WorkflowSet,
		NodeAdded,
		NodeUpdated,
		NodeRemoved,
		EdgeAdded,
		EdgeRemoved,
		SelectionChanged,
		HistorySaved,
		HistoryUndo,
		HistoryRedo,
	}
}

// Event describes one change to the edited workflow.
// Events are values; handlers receive their own copy.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	WorkflowID string         `json:"workflowId,omitempty"`
	Subject    string         `json:"subject,omitempty"` // node or edge id, if any
	Timestamp  time.Time      `json:"timestamp"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Option configures a new Event.
type Option func(*Event)

// WithEventID overrides the generated event id.
func WithEventID(id string) Option {
	return func(e *Event) {
		e.ID = id
	}
}

// WithTimestamp overrides the event timestamp.
func WithTimestamp(t time.Time) Option {
	return func(e *Event) {
		e.Timestamp = t
	}
}

// WithPayload attaches a key/value to the event payload.
func WithPayload(key string, value any) Option {
	return func(e *Event) {
		if e.Payload == nil {
			e.Payload = make(map[string]any)
		}
		e.Payload[key] = value
	}
}

// New creates an event with a random id and the current time.
func New(eventType, workflowID, subject string, opts ...Option) Event {
	evt := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		WorkflowID: workflowID,
		Subject:    subject,
		Timestamp:  time.Now(),
	}
	for _, opt := range opts {
		opt(&evt)
	}
	return evt
}

// Handler processes delivered events.
type Handler interface {
	Handle(ctx context.Context, evt Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, evt Event) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}
