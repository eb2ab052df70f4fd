package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/document"
)

// syncBuffer is a bytes.Buffer safe for a writer and a polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(ctx context.Context, args ...string) (string, string, error) {
	var out, errOut syncBuffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := execute(context.Background(), args...)
	return out, err
}

func n(id string, typ flowcanvas.NodeType) flowcanvas.Node {
	return flowcanvas.Node{ID: id, Type: typ, Label: string(typ), Data: map[string]any{"name": id}}
}

func supportDoc(t *testing.T, name string) string {
	t.Helper()
	w := &flowcanvas.Workflow{
		ID:   "wf-1",
		Name: "Customer Support Agent",
		Nodes: []flowcanvas.Node{
			n("orch", flowcanvas.Orchestrator),
			n("classifier", flowcanvas.IntentClassifier),
			n("agent", flowcanvas.Agent),
			n("out", flowcanvas.Output),
		},
		Edges: []flowcanvas.Edge{
			{ID: "e1", Source: "orch", Target: "classifier"},
			{ID: "e2", Source: "classifier", Target: "agent",
				Data: &flowcanvas.EdgeData{Condition: "intent == 'support'"}},
			{ID: "e3", Source: "agent", Target: "out"},
		},
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, document.Save(path, w))
	return path
}

func brokenDoc(t *testing.T) string {
	t.Helper()
	w := &flowcanvas.Workflow{
		ID: "wf-bad",
		Nodes: []flowcanvas.Node{
			n("out", flowcanvas.Output),
			n("agent", flowcanvas.Agent),
		},
		Edges: []flowcanvas.Edge{
			{ID: "e1", Source: "out", Target: "agent"},
			{ID: "e2", Source: "agent", Target: "ghost"},
		},
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, document.Save(path, w))
	return path
}

func TestPaletteCmd(t *testing.T) {
	out, err := run(t, "palette")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "CONNECTS TO")
	assert.Contains(t, lines[1], "orchestrator")
	assert.Contains(t, lines[1], "intent-classifier, agent, output")
	assert.Contains(t, lines[6], "Tool/Function")
	assert.Contains(t, lines[7], "(none)")
}

func TestPaletteCmd_JSON(t *testing.T) {
	out, err := run(t, "palette", "--json")
	require.NoError(t, err)

	var entries []struct {
		Type           string   `json:"type"`
		Color          string   `json:"color"`
		AllowedTargets []string `json:"allowedTargets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 7)
	assert.Equal(t, "agent", entries[2].Type)
	assert.Equal(t, "#ec4899", entries[2].Color)
	assert.Equal(t, []string{"tool", "knowledge-base", "api-endpoint", "output"}, entries[2].AllowedTargets)
	assert.Empty(t, entries[6].AllowedTargets)
}

func TestCanConnectCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"allowed", []string{"agent", "tool"}, []string{"valid: agent -> tool", "color: " + flowcanvas.ValidConnectionColor}},
		{"not in list", []string{"output", "agent"}, []string{"invalid: Cannot connect output to agent", "color: " + flowcanvas.InvalidConnectionColor}},
		{"tool back to agent", []string{"tool", "agent"}, []string{"valid: tool -> agent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"can-connect"}, tt.args...)...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}

	_, err := run(t, "can-connect", "agent", "router")
	assert.ErrorIs(t, err, flowcanvas.ErrUnknownNodeType)

	_, err = run(t, "can-connect", "agent")
	assert.Error(t, err)
}

func TestValidateCmd(t *testing.T) {
	for _, name := range []string{"support.json", "support.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := supportDoc(t, name)
			out, err := run(t, "validate", path)
			require.NoError(t, err)
			assert.Contains(t, out, "ok (4 nodes, 3 edges)")
			assert.NotContains(t, out, "warning")
		})
	}
}

func TestValidateCmd_Problems(t *testing.T) {
	out, err := run(t, "validate", brokenDoc(t))
	assert.ErrorIs(t, err, errInvalidDocument)
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "ghost")
	assert.Contains(t, out, "2 problem(s)")
}

func TestValidateCmd_Warnings(t *testing.T) {
	w := &flowcanvas.Workflow{
		ID: "wf-loop",
		Nodes: []flowcanvas.Node{
			n("orch", flowcanvas.Orchestrator),
			n("agent", flowcanvas.Agent),
			n("tool", flowcanvas.Tool),
		},
		Edges: []flowcanvas.Edge{
			{ID: "e1", Source: "agent", Target: "tool"},
			{ID: "e2", Source: "tool", Target: "agent"},
		},
	}
	path := filepath.Join(t.TempDir(), "loop.json")
	require.NoError(t, document.Save(path, w))

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: unreachable from roots: agent, tool")
	assert.Contains(t, out, "warning: cycle: agent -> tool -> agent")
}

func TestValidateCmd_MissingFile(t *testing.T) {
	_, err := run(t, "validate", filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "read document")
}

func TestSimulateCmd(t *testing.T) {
	out, err := run(t, "simulate", supportDoc(t, "support.yaml"), "--input", "where is my order", "--delay", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "[running] orch")
	assert.Contains(t, out, "[success] classifier")
	assert.Contains(t, out, "Intent: Customer Support")
	assert.Contains(t, out, "Here's the solution to your problem...")
	assert.Contains(t, out, "finished in")
}

func TestSimulateCmd_Quiet(t *testing.T) {
	out, err := run(t, "simulate", supportDoc(t, "support.json"), "-i", "hi", "--delay", "0", "-q")
	require.NoError(t, err)
	assert.NotContains(t, out, "[running]")
	assert.Contains(t, out, "NODE")
}

func TestSimulateCmd_Errors(t *testing.T) {
	path := supportDoc(t, "support.json")

	_, err := run(t, "simulate", path)
	assert.ErrorContains(t, err, `required flag(s) "input" not set`)

	_, err = run(t, "simulate", path, "--input", "  ", "--delay", "0")
	assert.ErrorContains(t, err, "simulation input is empty")
}

func TestSimulateCmd_DelayFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "editor.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("simulation:\n  step_delay: 0s\n"), 0o644))

	start := time.Now()
	_, err := run(t, "--config", cfgPath, "simulate", supportDoc(t, "s.json"), "-i", "hi", "-q")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestLayoutCmd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "layout.db")

	out, err := run(t, "layout", "show", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "left:   18%\nright:  18%\nbottom: 30%\n", out)

	out, err = run(t, "layout", "set", "--db", db, "--left", "25", "--collapse-right")
	require.NoError(t, err)
	assert.Contains(t, out, "left:   25%")
	assert.Contains(t, out, "right:  18% (collapsed)")

	// Persisted across invocations.
	out, err = run(t, "layout", "show", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "left:   25%")
	assert.Contains(t, out, "(collapsed)")

	out, err = run(t, "layout", "set", "--db", db, "--bottom", "80", "--left", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "left:   12%")
	assert.Contains(t, out, "bottom: 50%")

	_, err = run(t, "layout", "reset", "--db", db)
	require.NoError(t, err)
	out, err = run(t, "layout", "show", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "left:   18%\nright:  18%\nbottom: 30%\n", out)
}

func TestLayoutCmd_PathFromConfig(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "prefs.db")
	cfgPath := filepath.Join(dir, "editor.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"layout": {"path": "`+filepath.ToSlash(db)+`"}}`), 0o644))

	_, err := run(t, "--config", cfgPath, "layout", "set", "--right", "30")
	require.NoError(t, err)
	_, err = os.Stat(db)
	require.NoError(t, err)

	out, err := run(t, "--config", cfgPath, "layout", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "right:  30%")
}

func TestRootFlags(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "palette")
	assert.ErrorContains(t, err, `unknown log level "loud"`)

	_, err = run(t, "--log-format", "xml", "palette")
	assert.ErrorContains(t, err, "log.format")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "palette")
	assert.ErrorContains(t, err, "loading config")

	_, errOut, err := execute(context.Background(), "--log-level", "info", "--log-format", "json", "validate", supportDoc(t, "s.json"))
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"document validated"`)
}

func TestWatchCmd(t *testing.T) {
	path := supportDoc(t, "watched.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out, errOut syncBuffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"watch", path, "--debounce", "10ms"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ok (4 nodes, 3 edges)")
	}, 5*time.Second, 10*time.Millisecond)

	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)
	data, err := os.ReadFile(brokenDoc(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "problem(s)")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "changed")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchFile_Debounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 200*time.Millisecond, func() { calls <- struct{}{} })
	}()
	time.Sleep(100 * time.Millisecond)

	// A burst of writes and an unrelated file produce one callback.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("b", i+1)), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no change callback")
	}
	select {
	case <-calls:
		t.Fatal("burst was not coalesced")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	assert.NoError(t, <-done)
}
