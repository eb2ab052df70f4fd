// Package observability provides structured logging, metrics, and tracing
// for flowcanvas.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Every logging helper accepts a nil logger.
package observability

import (
	"log/slog"
	"time"
)

// LogMutation logs a store command and its outcome at debug level.
func LogMutation(logger *slog.Logger, op, subject, result string) {
	if logger == nil {
		return
	}
	logger.Debug("workflow mutation",
		slog.String("op", op),
		slog.String("subject", subject),
		slog.String("result", result),
	)
}

// LogConnectionRejected logs a connection the validator refused.
func LogConnectionRejected(logger *slog.Logger, sourceID, targetID, reason string) {
	if logger == nil {
		return
	}
	logger.Info("connection rejected",
		slog.String("source", sourceID),
		slog.String("target", targetID),
		slog.String("reason", reason),
	)
}

// LogHistory logs an undo/redo/checkpoint step.
func LogHistory(logger *slog.Logger, op string, index, length int) {
	if logger == nil {
		return
	}
	logger.Debug("history",
		slog.String("op", op),
		slog.Int("index", index),
		slog.Int("length", length),
	)
}

// LogPublishError logs a change event the bus refused (non-fatal).
func LogPublishError(logger *slog.Logger, eventType string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("change event not delivered",
		slog.String("event_type", eventType),
		slog.String("error", err.Error()),
	)
}

// LogSimulationStart logs the start of a mock run.
func LogSimulationStart(logger *slog.Logger, runID, workflowID string, nodes int) {
	if logger == nil {
		return
	}
	logger.Info("simulation starting",
		slog.String("run_id", runID),
		slog.String("workflow_id", workflowID),
		slog.Int("nodes", nodes),
	)
}

// LogSimulationComplete logs a finished mock run.
func LogSimulationComplete(logger *slog.Logger, runID string, durationMs float64, executed, skipped int) {
	if logger == nil {
		return
	}
	logger.Info("simulation completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("steps_executed", executed),
		slog.Int("steps_skipped", skipped),
	)
}

// LogSimulationError logs a failed or cancelled mock run.
func LogSimulationError(logger *slog.Logger, runID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("simulation failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStepStart logs a simulated node starting.
func LogStepStart(logger *slog.Logger, nodeID, nodeType string) {
	if logger == nil {
		return
	}
	logger.Debug("step starting",
		slog.String("node_id", nodeID),
		slog.String("node_type", nodeType),
	)
}

// LogStepComplete logs a simulated node finishing.
func LogStepComplete(logger *slog.Logger, nodeID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("step completed",
		slog.String("node_id", nodeID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStepError logs a simulated node failing.
func LogStepError(logger *slog.Logger, nodeID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("step failed",
		slog.String("node_id", nodeID),
		slog.String("error", err.Error()),
	)
}

// TimedOperation returns a function reporting elapsed milliseconds.
//
//	done := TimedOperation()
//	// ... work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
