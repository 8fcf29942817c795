package otel_test

import (
	"errors"
	"staysync/infras/otel"
	"staysync/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(t.Context(), "sync")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func attr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestScope_TraceError(t *testing.T) {
	t.Run("server fault sets error status", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceError(errors.New("feed fetch timed out"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Len(t, span.Events(), 1)
	})

	t.Run("caller mistake stays unset", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceError(failure.NotFound("listing"))
		})

		assert.Equal(t, codes.Unset, span.Status().Code)

		code, ok := attr(span, "error.code")
		require.True(t, ok)
		assert.Equal(t, int64(404), code.AsInt64())
	})

	t.Run("nil is ignored", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Empty(t, span.Events())
	})
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"listing.id":      "listing-1",
			"sync.blocks":     4,
			"db.rows":         int64(2),
			"pricing.nightly": 129.5,
			"sync.full":       true,
			"sync.took":       1500 * time.Millisecond,
			"sync.at":         time.Date(2026, 7, 1, 8, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
		})
	})

	tests := map[string]attribute.Value{
		"listing.id":      attribute.StringValue("listing-1"),
		"sync.blocks":     attribute.IntValue(4),
		"db.rows":         attribute.Int64Value(2),
		"pricing.nightly": attribute.Float64Value(129.5),
		"sync.full":       attribute.BoolValue(true),
		"sync.took":       attribute.Int64Value(1500),
		"sync.at":         attribute.StringValue("2026-07-01T06:00:00Z"),
	}

	for key, want := range tests {
		got, ok := attr(span, key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}
