package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level, format string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: format, Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"default config", DefaultConfig()},
		{"text format", Config{Level: "debug", Format: "text"}},
		{"console format", Config{Level: "info", Format: "console"}},
		{"unknown level", Config{Level: "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newBufferLogger(t, "debug", "json")

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("test message", "component", "keysvc")

			entry := decodeEntry(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["msg"] != "test message" {
				t.Errorf("msg = %v, want 'test message'", entry["msg"])
			}
			if entry["component"] != "keysvc" {
				t.Errorf("component = %v, want keysvc", entry["component"])
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, "warn", "json")

	l.Debug("debug")
	l.Info("info")
	if buf.Len() != 0 {
		t.Errorf("messages below warn were logged: %s", buf.String())
	}

	l.Warn("warn")
	if buf.Len() == 0 {
		t.Error("warn message was filtered")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "text")
	l.Info("hello", "component", "cli")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "component=cli") {
		t.Errorf("text output = %q", out)
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	l.With("service", "pak-server").Info("started")

	entry := decodeEntry(t, buf)
	if entry["service"] != "pak-server" {
		t.Errorf("service = %v, want pak-server", entry["service"])
	}
}

func TestLogger_WithContext(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.WithContext(ctx).Info("with context")

	if buf.Len() == 0 {
		t.Error("WithContext logger produced no output")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("goes nowhere")
	l.With("a", 1).Info("also nowhere")
}

func TestSetLevel(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	l, buf := newBufferLogger(t, "info", "json")
	SetDefault(l)

	child := Default().With("component", "watcher")
	child.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %s", buf.String())
	}

	SetLevel("debug")
	if GetLevel() != "debug" {
		t.Errorf("GetLevel() = %q, want debug", GetLevel())
	}

	child.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("derived logger did not pick up the new level")
	}

	SetLevel("error")
	if GetLevel() != "error" {
		t.Errorf("GetLevel() = %q, want error", GetLevel())
	}
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "error"} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false", level)
		}
	}
	for _, level := range []string{"", "trace", "fatal"} {
		if ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = true", level)
		}
	}
}

func TestPackageFunctions(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	l, buf := newBufferLogger(t, "info", "json")
	SetDefault(l)

	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	for _, msg := range []string{"info message", "warn message", "error message"} {
		if !strings.Contains(out, msg) {
			t.Errorf("output missing %q", msg)
		}
	}
}
