package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTracingTest installs an in-memory span exporter.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("flowcanvas")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}
	return exporter, cleanup
}

func attrValue(attrs []attribute.KeyValue, key string) string {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value.AsString()
		}
	}
	return ""
}

func TestStartRunSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx, span := StartRunSpan(context.Background(), "Support Bot", "run-1")
	assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "flowcanvas.simulate", spans[0].Name)
	assert.Equal(t, "Support Bot", attrValue(spans[0].Attributes, "workflow.name"))
	assert.Equal(t, "run-1", attrValue(spans[0].Attributes, "run.id"))
}

func TestStartStepSpan_IsChildOfRun(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx, run := StartRunSpan(context.Background(), "wf", "run-2")
	_, step := StartStepSpan(ctx, "agent-1", "agent")
	step.End()
	run.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	stepSpan := spans[0]
	runSpan := spans[1]
	assert.Equal(t, "flowcanvas.step.agent", stepSpan.Name)
	assert.Equal(t, "agent-1", attrValue(stepSpan.Attributes, "node.id"))
	assert.Equal(t, runSpan.SpanContext.SpanID(), stepSpan.Parent.SpanID())
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	_, okSpan := StartStepSpan(context.Background(), "a", "agent")
	EndSpanWithError(okSpan, nil)
	_, badSpan := StartStepSpan(context.Background(), "b", "tool")
	EndSpanWithError(badSpan, errors.New("tool failed"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "tool failed", spans[1].Status.Description)
	require.NotEmpty(t, spans[1].Events)

	assert.NotPanics(t, func() { EndSpanWithError(nil, nil) })
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx, span := StartRunSpan(context.Background(), "wf", "run-3")
	AddSpanEvent(ctx, "edge.skipped", attribute.String("edge.id", "e1"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "edge.skipped", spans[0].Events[0].Name)

	assert.NotPanics(t, func() { AddSpanEvent(context.Background(), "no span") })
}

func TestSpanManagers(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	mgr := NewSpanManager()
	ctx, run := mgr.StartRunSpan(context.Background(), "wf", "run-4")
	_, step := mgr.StartStepSpan(ctx, "n", "output")
	mgr.AddSpanEvent(ctx, "note")
	mgr.EndSpanWithError(step, nil)
	mgr.EndSpanWithError(run, nil)
	assert.Len(t, exporter.GetSpans(), 2)

	exporter.Reset()
	var noop SpanManager = NoopSpanManager{}
	base := context.Background()
	got, span := noop.StartRunSpan(base, "wf", "run-5")
	assert.Equal(t, base, got)
	noop.EndSpanWithError(span, errors.New("ignored"))
	assert.Empty(t, exporter.GetSpans())
}
