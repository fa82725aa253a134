package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/chroma/internal/adapters/telemetry"
	"go.trai.ch/chroma/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRecordedTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return telemetry.NewOTelTracer(provider), recorder
}

func TestOTelTracer_Attributes(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	_, span := tracer.Start(context.Background(), "compute table")
	span.SetAttribute("chroma.key", "table-abc")
	span.SetAttribute("chroma.rows_in", 3)
	span.SetAttribute("chroma.rows_wide", int64(4))
	span.SetAttribute("chroma.ratio", 0.5)
	span.SetAttribute("chroma.stack", true)
	span.SetAttribute("chroma.columns", []string{"a", "b"})
	span.SetAttribute("chroma.other", struct{ N int }{7})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "compute table", ended[0].Name())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("chroma.key", "table-abc"),
		attribute.Int("chroma.rows_in", 3),
		attribute.Int64("chroma.rows_wide", 4),
		attribute.Float64("chroma.ratio", 0.5),
		attribute.Bool("chroma.stack", true),
		attribute.StringSlice("chroma.columns", []string{"a", "b"}),
		attribute.String("chroma.other", "{7}"),
	}, ended[0].Attributes())
}

func TestOTelTracer_RecordError(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	_, span := tracer.Start(context.Background(), "compute plot")
	span.RecordError(errors.New("unsupported"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "unsupported", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestOTelTracer_NestsSpans(t *testing.T) {
	tracer, recorder := newRecordedTracer(t)

	ctx, parent := tracer.Start(context.Background(), "view")
	_, child := tracer.Start(ctx, "compute table")
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestBridge_LogsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	tracer := telemetry.NewOTelTracer(provider)

	log.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "compute table took")
	})
	_, span := tracer.Start(context.Background(), "compute table")
	span.End()

	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "compute plot failed after")
		assert.Contains(t, msg, "boom")
	})
	_, span = tracer.Start(context.Background(), "compute plot")
	span.RecordError(errors.New("boom"))
	span.End()
}

func TestBridge_NilLogger(t *testing.T) {
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	_, span := telemetry.NewOTelTracer(provider).Start(context.Background(), "noop")
	assert.NotPanics(t, span.End)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "anything")
	assert.Equal(t, ctx, got)
	assert.NotPanics(t, func() {
		span.SetAttribute("k", 1)
		span.RecordError(errors.New("ignored"))
		span.End()
	})
}
