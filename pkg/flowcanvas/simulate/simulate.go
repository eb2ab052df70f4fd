package simulate

import (
	"context"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/expr"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/observability"
)

// Status is the state of one step.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Step is the progress of one node in a run.
type Step struct {
	NodeID    string              `json:"nodeId"`
	NodeType  flowcanvas.NodeType `json:"nodeType"`
	Label     string              `json:"label"`
	Status    Status              `json:"status"`
	Output    string              `json:"output,omitempty"`
	Reasoning string              `json:"reasoning,omitempty"`
	Error     string              `json:"error,omitempty"`
	Duration  time.Duration       `json:"duration"`
}

// Result is the outcome of a completed run.
type Result struct {
	RunID      string        `json:"runId"`
	WorkflowID string        `json:"workflowId"`
	Input      string        `json:"input"`
	Steps      []Step        `json:"steps"`
	Duration   time.Duration `json:"duration"`
}

// Step returns the step of node id.
func (r *Result) Step(id string) (Step, bool) {
	for _, s := range r.Steps {
		if s.NodeID == id {
			return s, true
		}
	}
	return Step{}, false
}

// Count returns the number of steps with status st.
func (r *Result) Count(st Status) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == st {
			n++
		}
	}
	return n
}

// Succeeded reports whether no step ended in error.
func (r *Result) Succeeded() bool {
	return r.Count(StatusError) == 0
}

// UpdateFunc receives a snapshot of all steps after every transition.
type UpdateFunc func(steps []Step)

// Runner simulates workflows. A Runner is safe for concurrent use; each
// Run keeps its own state.
type Runner struct {
	delay     time.Duration
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	responder Responder
	evaluator *expr.Evaluator
}

// New creates a Runner. Defaults: one second step delay, mock responses,
// slog.Default, no metrics or tracing.
func New(opts ...Option) *Runner {
	r := &Runner{
		delay:     time.Second,
		logger:    slog.Default(),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
		responder: MockResponder{},
		evaluator: expr.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// run is the mutable state of one Run call.
type run struct {
	*Runner
	wf       *flowcanvas.Workflow
	input    string
	steps    []Step
	index    map[string]int
	vars     map[string]any
	onUpdate UpdateFunc
	conds    map[string]expr.Condition // by condition text
}

// Run simulates w with the given input. It walks breadth-first from the
// root nodes, running each node at most once, and follows an outgoing
// edge only when its condition holds. Nodes never reached end as skipped.
//
// A node whose responder fails or whose outgoing condition does not parse
// ends in error and its branch stops; the rest of the run continues.
func (r *Runner) Run(ctx context.Context, w *flowcanvas.Workflow, input string, onUpdate UpdateFunc) (res *Result, runErr error) {
	if w == nil {
		return nil, ErrNoWorkflow
	}
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	runID := uuid.NewString()
	w = w.Clone()
	start := time.Now()
	observability.LogSimulationStart(r.logger, runID, w.ID, len(w.Nodes))

	ctx, span := r.spans.StartRunSpan(ctx, w.Name, runID)
	defer func() {
		duration := time.Since(start)
		r.spans.EndSpanWithError(span, runErr)
		r.metrics.RecordSimulation(ctx, runErr == nil, duration)
		if runErr != nil {
			observability.LogSimulationError(r.logger, runID, runErr, float64(duration.Milliseconds()))
			return
		}
		res.Duration = duration
		observability.LogSimulationComplete(r.logger, runID, float64(duration.Milliseconds()),
			res.Count(StatusSuccess)+res.Count(StatusError), res.Count(StatusSkipped))
	}()

	st := &run{
		Runner:   r,
		wf:       w,
		input:    input,
		steps:    make([]Step, len(w.Nodes)),
		index:    make(map[string]int, len(w.Nodes)),
		vars:     map[string]any{"input": input},
		onUpdate: onUpdate,
		conds:    make(map[string]expr.Condition),
	}
	for i, n := range w.Nodes {
		st.steps[i] = Step{NodeID: n.ID, NodeType: n.Type, Label: n.Label, Status: StatusPending}
		if _, dup := st.index[n.ID]; !dup {
			st.index[n.ID] = i
		}
	}

	if err := st.walk(ctx); err != nil {
		return nil, err
	}

	skipped := false
	for i := range st.steps {
		if st.steps[i].Status == StatusPending {
			st.steps[i].Status = StatusSkipped
			skipped = true
		}
	}
	if skipped {
		st.emit()
	}

	return &Result{
		RunID:      runID,
		WorkflowID: w.ID,
		Input:      input,
		Steps:      st.snapshot(),
	}, nil
}

func (st *run) walk(ctx context.Context) error {
	queue := st.wf.Roots()
	if len(queue) == 0 && len(st.wf.Nodes) > 0 {
		// Every node has an incoming edge; start from the first one.
		queue = []string{st.wf.Nodes[0].ID}
	}
	visited := make(map[string]bool, len(st.wf.Nodes))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		if err := ctx.Err(); err != nil {
			return &CancellationError{NodeID: id, Steps: st.snapshot(), Cause: err}
		}

		next, err := st.step(ctx, id)
		if err != nil {
			return err
		}
		for _, n := range next {
			if !visited[n] {
				queue = append(queue, n)
			}
		}
	}
	return nil
}

// step runs one node and returns the targets to visit next.
func (st *run) step(ctx context.Context, id string) ([]string, error) {
	i := st.index[id]
	node := st.wf.Nodes[i]
	nodeType := string(node.Type)

	st.steps[i].Status = StatusRunning
	st.emit()
	observability.LogStepStart(st.logger, id, nodeType)

	stepCtx, span := st.spans.StartStepSpan(ctx, id, nodeType)
	began := time.Now()

	finish := func(stepErr error) {
		d := time.Since(began)
		st.steps[i].Duration = d
		st.spans.EndSpanWithError(span, stepErr)
		st.metrics.RecordStep(stepCtx, nodeType, d, stepErr)
		if stepErr != nil {
			st.steps[i].Status = StatusError
			st.steps[i].Error = stepErr.Error()
			observability.LogStepError(st.logger, id, stepErr)
		} else {
			st.steps[i].Status = StatusSuccess
			observability.LogStepComplete(st.logger, id, float64(d.Milliseconds()))
		}
		st.emit()
	}

	cancelled := func(cause error) error {
		finish(cause)
		return &CancellationError{NodeID: id, Steps: st.snapshot(), Cause: cause, WasExecuting: true}
	}

	if st.delay > 0 {
		timer := time.NewTimer(st.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, cancelled(ctx.Err())
		}
	}

	resp, err := st.responder.Respond(stepCtx, node.Clone(), st.input, maps.Clone(st.vars))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, cancelled(ctxErr)
	}
	if err != nil {
		finish(err)
		return nil, nil
	}

	st.steps[i].Output = resp.Output
	st.steps[i].Reasoning = resp.Reasoning
	st.vars[id] = map[string]any{
		"output":    resp.Output,
		"reasoning": resp.Reasoning,
		"type":      nodeType,
	}
	maps.Copy(st.vars, resp.Vars)

	var next []string
	for _, e := range st.wf.OutgoingEdges(id) {
		if _, ok := st.index[e.Target]; !ok {
			continue
		}
		cond, err := st.condition(e)
		if err != nil {
			finish(err)
			return nil, nil
		}
		if cond.Eval(st.vars) {
			next = append(next, e.Target)
			continue
		}
		st.spans.AddSpanEvent(stepCtx, "edge.not_taken",
			attribute.String("edge.id", e.ID),
			attribute.String("edge.condition", e.Condition()),
		)
	}

	finish(nil)
	return next, nil
}

func (st *run) condition(e flowcanvas.Edge) (expr.Condition, error) {
	src := e.Condition()
	if c, ok := st.conds[src]; ok {
		return c, nil
	}
	c, err := st.evaluator.Parse(src)
	if err != nil {
		return nil, &ConditionError{EdgeID: e.ID, Condition: src, Err: err}
	}
	st.conds[src] = c
	return c, nil
}

func (st *run) snapshot() []Step {
	out := make([]Step, len(st.steps))
	copy(out, st.steps)
	return out
}

func (st *run) emit() {
	if st.onUpdate != nil {
		st.onUpdate(st.snapshot())
	}
}
