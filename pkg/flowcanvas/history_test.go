package flowcanvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_UndoRedo(t *testing.T) {
	s, _ := newTestStore()
	s.SetWorkflow(supportWorkflow())
	v0 := s.Workflow()

	s.AddNode(node("kb", KnowledgeBase))
	s.SaveToHistory()
	v1 := s.Workflow()

	s.RemoveNode("tool")
	s.SaveToHistory()
	v2 := s.Workflow()

	require.Equal(t, 3, s.HistoryLen())
	require.Equal(t, 2, s.HistoryIndex())
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	assert.Equal(t, Applied, s.Undo())
	assert.Equal(t, v1, s.Workflow())
	assert.Equal(t, Applied, s.Undo())
	assert.Equal(t, v0, s.Workflow())
	assert.Equal(t, AtBoundary, s.Undo())
	assert.Equal(t, v0, s.Workflow())
	assert.False(t, s.CanUndo())

	assert.Equal(t, Applied, s.Redo())
	assert.Equal(t, Applied, s.Redo())
	assert.Equal(t, v2, s.Workflow())
	assert.Equal(t, AtBoundary, s.Redo())
}

// TestHistory_CheckpointAfterUndoDropsFuture verifies linear history.
func TestHistory_CheckpointAfterUndoDropsFuture(t *testing.T) {
	s, _ := newTestStore()
	s.SetWorkflow(supportWorkflow())
	s.AddNode(node("kb", KnowledgeBase))
	s.SaveToHistory()
	s.AddNode(node("api", APIEndpoint))
	s.SaveToHistory()

	s.Undo()
	s.RenameNode("orch", "Root")
	s.SaveToHistory()

	assert.Equal(t, 3, s.HistoryLen())
	assert.Equal(t, AtBoundary, s.Redo())
	w := s.Workflow()
	assert.NotContains(t, w.NodeIDs(), "api")
	assert.Contains(t, w.NodeIDs(), "kb")
}

// TestHistory_UncheckpointedEditsAreLostOnUndo documents that undo restores
// the last checkpoint, not the live state.
func TestHistory_UncheckpointedEditsAreLostOnUndo(t *testing.T) {
	s, _ := newTestStore()
	s.SetWorkflow(supportWorkflow())
	s.AddNode(node("kb", KnowledgeBase))
	s.SaveToHistory()

	s.AddNode(node("scratch", Tool))
	s.Undo()
	s.Redo()
	assert.NotContains(t, s.Workflow().NodeIDs(), "scratch")
}

func TestHistory_SnapshotsAreImmutable(t *testing.T) {
	s, _ := newTestStore()
	s.SetWorkflow(supportWorkflow())
	s.UpdateNode("agent", map[string]any{"systemPrompt": "v1"})
	s.SaveToHistory()

	s.UpdateNode("agent", map[string]any{"systemPrompt": "v2"})
	s.Undo()
	s.Redo()

	n, _ := s.Workflow().Node("agent")
	assert.Equal(t, "v1", n.Data["systemPrompt"])
}

// TestHistory_SnapshotsOwnNestedValues verifies values of any shape are
// copied into snapshots, so later caller mutations cannot reach them.
func TestHistory_SnapshotsOwnNestedValues(t *testing.T) {
	s, _ := newTestStore()
	s.SetWorkflow(supportWorkflow())

	retries := []int{1, 2, 3}
	headers := []map[string]any{{"k": "v"}}
	limits := map[string]int{"rpm": 60}
	timeout := 30
	s.UpdateNode("agent", map[string]any{
		"retries":    retries,
		"headerList": headers,
		"limits":     limits,
		"timeout":    &timeout,
	})
	s.SaveToHistory()

	retries[0] = 99
	headers[0]["k"] = "mutated"
	limits["rpm"] = 1
	timeout = 0

	s.Undo()
	s.Redo()

	n, ok := s.Workflow().Node("agent")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, n.Data["retries"])
	assert.Equal(t, []map[string]any{{"k": "v"}}, n.Data["headerList"])
	assert.Equal(t, map[string]int{"rpm": 60}, n.Data["limits"])
	require.IsType(t, (*int)(nil), n.Data["timeout"])
	assert.Equal(t, 30, *n.Data["timeout"].(*int))

	// Mutating a read copy does not reach the store either.
	n.Data["retries"].([]int)[1] = 42
	again, _ := s.Workflow().Node("agent")
	assert.Equal(t, []int{1, 2, 3}, again.Data["retries"])
}

func TestHistory_Limit(t *testing.T) {
	s, _ := newTestStore(WithHistoryLimit(3))
	s.SetWorkflow(&Workflow{ID: "w"})
	for _, id := range []string{"a", "b", "c", "d"} {
		s.AddNode(node(id, Agent))
		s.SaveToHistory()
	}

	assert.Equal(t, 3, s.HistoryLen())
	assert.Equal(t, 2, s.HistoryIndex())

	s.Undo()
	s.Undo()
	assert.Equal(t, AtBoundary, s.Undo())
	assert.Equal(t, []string{"a", "b"}, s.Workflow().NodeIDs())
}

func TestHistory_Direct(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, -1, h.Index())
	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)

	w := &Workflow{ID: "w", Name: "one"}
	h.Reset(w)
	w.Name = "two"
	h.Save(w)

	snap, ok := h.Snapshot(0)
	require.True(t, ok)
	assert.Equal(t, "one", snap.Name)
	snap.Name = "mutated"
	again, _ := h.Snapshot(0)
	assert.Equal(t, "one", again.Name)

	_, ok = h.Snapshot(5)
	assert.False(t, ok)

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "one", got.Name)

	h.Reset(nil)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Index())

	assert.Equal(t, 0, NewHistory(-4).limit)
}
