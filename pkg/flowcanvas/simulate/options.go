package simulate

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/expr"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/observability"
)

// Option configures a Runner.
type Option func(*Runner)

// WithStepDelay sets how long each node stays running. Zero disables
// the wait. Negative values are ignored.
func WithStepDelay(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.delay = d
		}
	}
}

// WithLogger sets the run logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Runner) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithSpans sets the span manager.
func WithSpans(s observability.SpanManager) Option {
	return func(r *Runner) {
		if s != nil {
			r.spans = s
		}
	}
}

// WithResponder replaces the mock responses.
func WithResponder(resp Responder) Option {
	return func(r *Runner) {
		if resp != nil {
			r.responder = resp
		}
	}
}

// WithEvaluator sets the evaluator used to parse edge conditions.
func WithEvaluator(e *expr.Evaluator) Option {
	return func(r *Runner) {
		if e != nil {
			r.evaluator = e
		}
	}
}
