package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInit_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Init(Options{Env: "prod", Level: "info", Output: &buf})

	logger.Debug("hidden")
	logger.Info("chat completed", "model", "deepseek-chat")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", lines[0], err)
	}
	if entry["msg"] != "chat completed" {
		t.Errorf("expected msg 'chat completed', got %v", entry["msg"])
	}
	if entry["model"] != "deepseek-chat" {
		t.Errorf("expected model attr, got %v", entry["model"])
	}
	if entry["service"] != "deepseek" {
		t.Errorf("expected service attr, got %v", entry["service"])
	}
	if Get() != logger {
		t.Error("expected Get to return the initialized logger")
	}
}

func TestInit_DevWritesText(t *testing.T) {
	var buf bytes.Buffer
	logger := Init(Options{Env: "dev", Level: "debug", Output: &buf})

	logger.Debug("visible", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "visible") || !strings.Contains(out, "key") {
		t.Errorf("expected text log line with message and attr, got %q", out)
	}
	if json.Valid([]byte(strings.TrimSpace(out))) {
		t.Errorf("expected non-JSON output in dev, got %q", out)
	}
}

func TestEventContext(t *testing.T) {
	ctx := context.Background()
	if EventFromContext(ctx) != nil {
		t.Fatal("expected no event in a bare context")
	}

	AddToEvent(ctx, slog.String("ignored", "x"))

	ctx, event := NewEventContext(ctx)
	AddToEvent(ctx, slog.String("model", "deepseek-chat"), slog.Int("messages", 1))
	event.Add(slog.String("outcome", "success"))

	if EventFromContext(ctx) != event {
		t.Fatal("expected EventFromContext to return the created event")
	}

	attrs := event.Attrs()
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %d", len(attrs))
	}
	if a, ok := attrs[0].(slog.Attr); !ok || a.Key != "model" {
		t.Errorf("expected first attr to be model, got %v", attrs[0])
	}
}
