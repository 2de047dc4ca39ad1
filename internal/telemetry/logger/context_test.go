package logger

import (
	"context"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	ctx := WithLogger(context.Background(), l)
	FromContext(ctx).Info("test message")

	if buf.Len() == 0 {
		t.Error("logger from context should produce output")
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext should fall back to the default logger")
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-12345")

	if got := RequestIDFromContext(ctx); got != "req-12345" {
		t.Errorf("RequestIDFromContext() = %q, want %q", got, "req-12345")
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
}

func TestL_AddsRequestID(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	ctx := WithLogger(context.Background(), l)
	ctx = WithRequestID(ctx, "01HZX")
	L(ctx).Info("handled")

	entry := decodeEntry(t, buf)
	if entry["request_id"] != "01HZX" {
		t.Errorf("request_id = %v, want 01HZX", entry["request_id"])
	}
}

func TestL_NoRequestID(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	L(WithLogger(context.Background(), l)).Info("handled")

	entry := decodeEntry(t, buf)
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id should be absent")
	}
}
