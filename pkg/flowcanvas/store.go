package flowcanvas

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/event"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/observability"
)

// Store owns the active workflow, the current selection and the undo
// history for one editing session.
//
// Commands apply synchronously in call order. None of them returns an
// error: a command that cannot apply leaves state untouched and reports
// why through its Result. Checkpointing is never automatic; call
// SaveToHistory after each change (or batch of changes) that should be
// undoable.
//
// Store is safe for concurrent use.
type Store struct {
	mu             sync.RWMutex
	workflow       *Workflow
	selectedNodeID string
	selectedEdgeID string
	history        *History

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	bus     event.Bus
	now     func() time.Time
}

// NewStore creates a Store with no active workflow.
func NewStore(opts ...StoreOption) *Store {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{
		history: NewHistory(cfg.historyLimit),
		logger:  cfg.logger,
		metrics: cfg.metrics,
		bus:     cfg.bus,
		now:     cfg.clock,
	}
}

// Workflow returns a deep copy of the active workflow, or nil.
func (s *Store) Workflow() *Workflow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workflow.Clone()
}

// HasWorkflow reports whether a workflow is active.
func (s *Store) HasWorkflow() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workflow != nil
}

// SelectedNodeID returns the selected node id, or "" when none.
func (s *Store) SelectedNodeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedNodeID
}

// SelectedEdgeID returns the selected edge id, or "" when none.
func (s *Store) SelectedEdgeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedEdgeID
}

// SelectedNode returns a copy of the selected node.
func (s *Store) SelectedNode() (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workflow == nil || s.selectedNodeID == "" {
		return Node{}, false
	}
	n, ok := s.workflow.Node(s.selectedNodeID)
	return n.Clone(), ok
}

// SelectedEdge returns a copy of the selected edge.
func (s *Store) SelectedEdge() (Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workflow == nil || s.selectedEdgeID == "" {
		return Edge{}, false
	}
	e, ok := s.workflow.Edge(s.selectedEdgeID)
	return e.Clone(), ok
}

// SetWorkflow replaces the active workflow with a copy of w, resets history
// to a single checkpoint and clears the selection. w is not validated.
// A nil w clears the session.
func (s *Store) SetWorkflow(w *Workflow) Result {
	s.mu.Lock()
	s.workflow = w.Clone()
	s.history.Reset(w)
	s.selectedNodeID, s.selectedEdgeID = "", ""
	evt := s.newEvent(event.WorkflowSet, "",
		event.WithPayload("nodes", len(w.nodesOrNil())),
		event.WithPayload("edges", len(w.edgesOrNil())),
	)
	s.mu.Unlock()

	s.finish("set_workflow", workflowID(w), Applied, evt)
	return Applied
}

// SelectNode selects a node and clears the edge selection.
// An empty id clears all selection.
func (s *Store) SelectNode(id string) Result {
	s.mu.Lock()
	s.selectedNodeID, s.selectedEdgeID = id, ""
	evt := s.selectionEvent()
	s.mu.Unlock()

	s.finish("select_node", id, Applied, evt)
	return Applied
}

// SelectEdge selects an edge and clears the node selection.
// An empty id clears all selection.
func (s *Store) SelectEdge(id string) Result {
	s.mu.Lock()
	s.selectedNodeID, s.selectedEdgeID = "", id
	evt := s.selectionEvent()
	s.mu.Unlock()

	s.finish("select_edge", id, Applied, evt)
	return Applied
}

// UpdateNode shallow-merges partial into the node's data. Keys absent from
// partial are kept; conflicting keys are overwritten.
func (s *Store) UpdateNode(id string, partial map[string]any) Result {
	s.mu.Lock()
	res, evt := s.updateNodeLocked(id, event.NodeUpdated, func(n *Node) {
		if n.Data == nil {
			n.Data = make(map[string]any, len(partial))
		}
		for k, v := range partial {
			n.Data[k] = cloneValue(v)
		}
	})
	s.mu.Unlock()

	s.finish("update_node", id, res, evt...)
	return res
}

// RenameNode sets a node's display label.
func (s *Store) RenameNode(id, label string) Result {
	s.mu.Lock()
	res, evt := s.updateNodeLocked(id, event.NodeUpdated, func(n *Node) {
		n.Label = label
	})
	s.mu.Unlock()

	s.finish("rename_node", id, res, evt...)
	return res
}

// MoveNode sets a node's canvas position. A drag gesture calls MoveNode
// per frame and checkpoints once at the end.
func (s *Store) MoveNode(id string, pos Position) Result {
	s.mu.Lock()
	res, evt := s.updateNodeLocked(id, event.NodeUpdated, func(n *Node) {
		n.Position = pos
	})
	s.mu.Unlock()

	s.finish("move_node", id, res, evt...)
	return res
}

func (s *Store) updateNodeLocked(id, eventType string, apply func(*Node)) (Result, []event.Event) {
	if s.workflow == nil {
		return NoWorkflow, nil
	}
	i := s.workflow.NodeIndex(id)
	if i < 0 {
		return NotFound, nil
	}
	apply(&s.workflow.Nodes[i])
	s.touch()
	return Applied, []event.Event{s.newEvent(eventType, id)}
}

// AddNode appends a copy of node. The caller supplies a unique id.
func (s *Store) AddNode(node Node) Result {
	s.mu.Lock()
	if s.workflow == nil {
		s.mu.Unlock()
		s.finish("add_node", node.ID, NoWorkflow)
		return NoWorkflow
	}
	s.workflow.Nodes = append(s.workflow.Nodes, node.Clone())
	s.touch()
	evt := s.newEvent(event.NodeAdded, node.ID, event.WithPayload("type", string(node.Type)))
	s.mu.Unlock()

	s.finish("add_node", node.ID, Applied, evt)
	return Applied
}

// RemoveNode removes every node with the id and every edge that starts or
// ends at it.
func (s *Store) RemoveNode(id string) Result {
	s.mu.Lock()
	if s.workflow == nil {
		s.mu.Unlock()
		s.finish("remove_node", id, NoWorkflow)
		return NoWorkflow
	}
	if s.workflow.NodeIndex(id) < 0 {
		s.mu.Unlock()
		s.finish("remove_node", id, NotFound)
		return NotFound
	}

	s.workflow.Nodes = slices.DeleteFunc(s.workflow.Nodes, func(n Node) bool { return n.ID == id })
	kept := s.workflow.Edges[:0]
	var removed []string
	for _, e := range s.workflow.Edges {
		if e.Source == id || e.Target == id {
			removed = append(removed, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	clear(s.workflow.Edges[len(kept):])
	s.workflow.Edges = kept
	s.touch()

	events := []event.Event{s.newEvent(event.NodeRemoved, id, event.WithPayload("edges", removed))}
	if s.pruneSelection() {
		events = append(events, s.selectionEvent())
	}
	s.mu.Unlock()

	s.finish("remove_node", id, Applied, events...)
	return Applied
}

// AddEdge appends a copy of edge. It does not validate the connection;
// use Connect or ValidateEdge first.
func (s *Store) AddEdge(edge Edge) Result {
	s.mu.Lock()
	if s.workflow == nil {
		s.mu.Unlock()
		s.finish("add_edge", edge.ID, NoWorkflow)
		return NoWorkflow
	}
	s.workflow.Edges = append(s.workflow.Edges, edge.Clone())
	s.touch()
	evt := s.edgeAddedEvent(edge)
	s.mu.Unlock()

	s.finish("add_edge", edge.ID, Applied, evt)
	return Applied
}

// RemoveEdge removes every edge with the id.
func (s *Store) RemoveEdge(id string) Result {
	s.mu.Lock()
	if s.workflow == nil {
		s.mu.Unlock()
		s.finish("remove_edge", id, NoWorkflow)
		return NoWorkflow
	}
	if s.workflow.EdgeIndex(id) < 0 {
		s.mu.Unlock()
		s.finish("remove_edge", id, NotFound)
		return NotFound
	}
	s.workflow.Edges = slices.DeleteFunc(s.workflow.Edges, func(e Edge) bool { return e.ID == id })
	s.touch()

	events := []event.Event{s.newEvent(event.EdgeRemoved, id)}
	if s.pruneSelection() {
		events = append(events, s.selectionEvent())
	}
	s.mu.Unlock()

	s.finish("remove_edge", id, Applied, events...)
	return Applied
}

// Connect validates an edge between two existing nodes and, when valid,
// appends it with the id "<source>-<target>-<unix millis>". If that id is
// already taken a "-2", "-3", ... suffix makes it unique. The returned
// Edge is the zero value when the connection is rejected.
func (s *Store) Connect(sourceID, targetID string, data *EdgeData) (Edge, ConnectionValidation) {
	s.mu.Lock()
	if s.workflow == nil {
		s.mu.Unlock()
		s.finish("connect", sourceID, NoWorkflow)
		return Edge{}, ConnectionValidation{Reason: noWorkflowReason}
	}

	v := ValidateEdge(s.workflow, sourceID, targetID)
	sourceType, targetType := s.nodeType(sourceID), s.nodeType(targetID)
	if !v.IsValid {
		s.mu.Unlock()
		s.metrics.RecordConnection(context.Background(), sourceType, targetType, false)
		observability.LogConnectionRejected(s.logger, sourceID, targetID, v.Reason)
		s.finish("connect", sourceID, Rejected)
		return Edge{}, v
	}

	edge := Edge{
		ID:     s.edgeID(sourceID, targetID),
		Source: sourceID,
		Target: targetID,
	}
	if data != nil {
		d := *data
		edge.Data = &d
	}
	s.workflow.Edges = append(s.workflow.Edges, edge.Clone())
	s.touch()
	evt := s.edgeAddedEvent(edge)
	s.mu.Unlock()

	s.metrics.RecordConnection(context.Background(), sourceType, targetType, true)
	s.finish("connect", edge.ID, Applied, evt)
	return edge, v
}

// SaveToHistory checkpoints the active workflow.
func (s *Store) SaveToHistory() Result {
	s.mu.Lock()
	if s.workflow == nil {
		s.mu.Unlock()
		s.finish("save_history", "", NoWorkflow)
		return NoWorkflow
	}
	s.history.Save(s.workflow)
	index, length := s.history.Index(), s.history.Len()
	evt := s.historyEvent(event.HistorySaved, index, length)
	s.mu.Unlock()

	s.finishHistory("save", index, length, Applied, evt)
	return Applied
}

// Undo restores the previous checkpoint.
func (s *Store) Undo() Result {
	return s.step("undo", event.HistoryUndo, s.history.Undo)
}

// Redo restores the next checkpoint.
func (s *Store) Redo() Result {
	return s.step("redo", event.HistoryRedo, s.history.Redo)
}

func (s *Store) step(op, eventType string, move func() (*Workflow, bool)) Result {
	s.mu.Lock()
	w, ok := move()
	index, length := s.history.Index(), s.history.Len()
	if !ok {
		s.mu.Unlock()
		s.finishHistory(op, index, length, AtBoundary)
		return AtBoundary
	}
	s.workflow = w
	events := []event.Event{s.historyEvent(eventType, index, length)}
	if s.pruneSelection() {
		events = append(events, s.selectionEvent())
	}
	s.mu.Unlock()

	s.finishHistory(op, index, length, Applied, events...)
	return Applied
}

// CanUndo reports whether Undo would apply.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would apply.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// HistoryLen returns the number of checkpoints.
func (s *Store) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// HistoryIndex returns the current checkpoint position, or -1 before any
// workflow has been set.
func (s *Store) HistoryIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Index()
}

// edgeID returns an unused edge id for a new connection. Caller holds mu.
func (s *Store) edgeID(sourceID, targetID string) string {
	base := fmt.Sprintf("%s-%s-%d", sourceID, targetID, s.now().UnixMilli())
	id := base
	for n := 2; s.workflow.EdgeIndex(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// touch bumps UpdatedAt. Caller holds mu.
func (s *Store) touch() {
	s.workflow.UpdatedAt = s.now()
}

// pruneSelection clears a selection whose target no longer exists.
// Caller holds mu. Reports whether anything was cleared.
func (s *Store) pruneSelection() bool {
	changed := false
	if s.selectedNodeID != "" && (s.workflow == nil || s.workflow.NodeIndex(s.selectedNodeID) < 0) {
		s.selectedNodeID = ""
		changed = true
	}
	if s.selectedEdgeID != "" && (s.workflow == nil || s.workflow.EdgeIndex(s.selectedEdgeID) < 0) {
		s.selectedEdgeID = ""
		changed = true
	}
	return changed
}

func (s *Store) nodeType(id string) string {
	if n, ok := s.workflow.Node(id); ok {
		return string(n.Type)
	}
	return ""
}

// newEvent builds a change event for the active workflow. Caller holds mu.
func (s *Store) newEvent(eventType, subject string, opts ...event.Option) event.Event {
	return event.New(eventType, workflowID(s.workflow), subject, opts...)
}

func (s *Store) selectionEvent() event.Event {
	return s.newEvent(event.SelectionChanged, "",
		event.WithPayload("nodeId", s.selectedNodeID),
		event.WithPayload("edgeId", s.selectedEdgeID),
	)
}

func (s *Store) edgeAddedEvent(e Edge) event.Event {
	return s.newEvent(event.EdgeAdded, e.ID,
		event.WithPayload("source", e.Source),
		event.WithPayload("target", e.Target),
	)
}

func (s *Store) historyEvent(eventType string, index, length int) event.Event {
	return s.newEvent(eventType, "",
		event.WithPayload("index", index),
		event.WithPayload("length", length),
	)
}

// finish logs, records and publishes a command outcome. Called without mu
// held so bus handlers may read the store.
func (s *Store) finish(op, subject string, res Result, events ...event.Event) {
	observability.LogMutation(s.logger, op, subject, res.String())
	s.metrics.RecordMutation(context.Background(), op, res.Changed())
	s.publish(events)
}

func (s *Store) finishHistory(op string, index, length int, res Result, events ...event.Event) {
	observability.LogHistory(s.logger, op, index, length)
	s.metrics.RecordHistory(context.Background(), op, length)
	s.metrics.RecordMutation(context.Background(), op, res.Changed())
	s.publish(events)
}

func (s *Store) publish(events []event.Event) {
	if s.bus == nil {
		return
	}
	for _, evt := range events {
		if err := s.bus.Publish(context.Background(), evt); err != nil {
			observability.LogPublishError(s.logger, evt.Type, err)
		}
	}
}

func workflowID(w *Workflow) string {
	if w == nil {
		return ""
	}
	return w.ID
}

func (w *Workflow) nodesOrNil() []Node {
	if w == nil {
		return nil
	}
	return w.Nodes
}

func (w *Workflow) edgesOrNil() []Edge {
	if w == nil {
		return nil
	}
	return w.Edges
}
